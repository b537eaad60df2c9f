package provisioning

import (
	"context"
	"testing"

	"github.com/imamik/dwhctl/internal/platform/aws"
)

func newClusterLifecycle(cloud aws.ControlPlane, store *memStore, observer *recordingObserver) *ClusterLifecycle {
	return NewClusterLifecycle(cloud, store, observer, testTimeouts(), testConfig())
}

func TestClusterEnsureRequiresRoleARN(t *testing.T) {
	var calls int
	cloud := &aws.MockClient{
		CreateClusterFunc: func(ctx context.Context, opts aws.ClusterCreateOpts) (*aws.Cluster, error) {
			calls++
			return &aws.Cluster{ID: opts.ID, Status: "creating"}, nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	err := lifecycle.Ensure(context.Background(), "")
	if err == nil {
		t.Fatal("Ensure() error = nil, want precondition failure")
	}
	if got := KindOf(err); got != KindPreconditionFailed {
		t.Errorf("KindOf(err) = %q, want %q", got, KindPreconditionFailed)
	}
	if calls != 0 {
		t.Errorf("CreateCluster calls = %d, want 0", calls)
	}
}

func TestClusterEnsureCreatesCluster(t *testing.T) {
	var got aws.ClusterCreateOpts
	cloud := &aws.MockClient{
		CreateClusterFunc: func(ctx context.Context, opts aws.ClusterCreateOpts) (*aws.Cluster, error) {
			got = opts
			return &aws.Cluster{ID: opts.ID, Status: "creating"}, nil
		},
	}
	observer := &recordingObserver{}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, observer)

	arn := "arn:aws:iam::000000000000:role/dwh-role"
	if err := lifecycle.Ensure(context.Background(), arn); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if got.ID != "dwh-cluster" {
		t.Errorf("cluster ID = %q, want dwh-cluster", got.ID)
	}
	if got.NodeType != "dc2.large" || got.NodeCount != 4 {
		t.Errorf("node config = %s x%d, want dc2.large x4", got.NodeType, got.NodeCount)
	}
	if got.DBName != "dwh" || got.MasterUsername != "dwhuser" || got.Port != 5439 {
		t.Errorf("database config = %+v", got)
	}
	if len(got.RoleARNs) != 1 || got.RoleARNs[0] != arn {
		t.Errorf("role ARNs = %v, want [%s]", got.RoleARNs, arn)
	}
	if !observer.hasEvent(EventResourceCreated) {
		t.Error("expected resource.created event")
	}
}

func TestClusterEnsureToleratesExisting(t *testing.T) {
	cloud := &aws.MockClient{
		CreateClusterFunc: func(ctx context.Context, opts aws.ClusterCreateOpts) (*aws.Cluster, error) {
			return nil, apiError("ClusterAlreadyExists")
		},
	}
	observer := &recordingObserver{}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, observer)

	if err := lifecycle.Ensure(context.Background(), "arn:aws:iam::000000000000:role/dwh-role"); err != nil {
		t.Fatalf("Ensure() error = %v, want nil for existing cluster", err)
	}
	if !observer.hasEvent(EventResourceExists) {
		t.Error("expected resource.exists event")
	}
}

func TestClusterWaitAvailable(t *testing.T) {
	var calls int
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			calls++
			if calls < 3 {
				return &aws.Cluster{ID: id, Status: "creating"}, nil
			}
			return &aws.Cluster{
				ID:       id,
				Status:   "available",
				Endpoint: &aws.Endpoint{Address: "dwh.example.com", Port: 5439},
			}, nil
		},
	}
	observer := &recordingObserver{}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, observer)

	cluster, err := lifecycle.WaitAvailable(context.Background())
	if err != nil {
		t.Fatalf("WaitAvailable() error = %v", err)
	}
	if cluster == nil || cluster.Status != "available" {
		t.Fatalf("WaitAvailable() cluster = %+v, want available", cluster)
	}
	if calls != 3 {
		t.Errorf("GetCluster calls = %d, want 3", calls)
	}
	if !observer.hasEvent(EventWaiting) {
		t.Error("expected wait.progress events while creating")
	}
}

func TestClusterWaitAvailableTimesOut(t *testing.T) {
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return &aws.Cluster{ID: id, Status: "creating"}, nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	_, err := lifecycle.WaitAvailable(context.Background())
	if err == nil {
		t.Fatal("WaitAvailable() error = nil, want timeout")
	}
	if got := KindOf(err); got != KindTimeout {
		t.Errorf("KindOf(err) = %q, want %q", got, KindTimeout)
	}
}

func TestClusterStatus(t *testing.T) {
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return &aws.Cluster{ID: id, Status: "paused"}, nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	state, err := lifecycle.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if state != StatePaused {
		t.Errorf("Status() = %q, want %q", state, StatePaused)
	}
}

func TestClusterRecordEndpoint(t *testing.T) {
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return &aws.Cluster{
				ID:       id,
				Status:   "available",
				Endpoint: &aws.Endpoint{Address: "dwh.abc123.us-west-2.redshift.amazonaws.com", Port: 5439},
			}, nil
		},
	}
	store := &memStore{}
	observer := &recordingObserver{}
	lifecycle := newClusterLifecycle(cloud, store, observer)

	endpoint, err := lifecycle.RecordEndpoint(context.Background())
	if err != nil {
		t.Fatalf("RecordEndpoint() error = %v", err)
	}
	want := "dwh.abc123.us-west-2.redshift.amazonaws.com"
	if endpoint.Address != want {
		t.Errorf("endpoint address = %q, want %q", endpoint.Address, want)
	}
	if store.host != want {
		t.Errorf("stored host = %q, want %q", store.host, want)
	}
	if !observer.hasEvent(EventRecorded) {
		t.Error("expected attribute.recorded event")
	}
}

func TestClusterRecordEndpointNotAssigned(t *testing.T) {
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return &aws.Cluster{ID: id, Status: "creating"}, nil
		},
	}
	store := &memStore{}
	lifecycle := newClusterLifecycle(cloud, store, &recordingObserver{})

	if _, err := lifecycle.RecordEndpoint(context.Background()); err == nil {
		t.Fatal("RecordEndpoint() error = nil, want error for missing endpoint")
	}
	if store.host != "" {
		t.Errorf("stored host = %q, want empty", store.host)
	}
}

func TestClusterOpenIngress(t *testing.T) {
	var vpcID string
	var port int32
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return &aws.Cluster{ID: id, Status: "available", VPCID: "vpc-0abc"}, nil
		},
		OpenIngressFunc: func(ctx context.Context, vpc string, p int32) error {
			vpcID, port = vpc, p
			return nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	if err := lifecycle.OpenIngress(context.Background()); err != nil {
		t.Fatalf("OpenIngress() error = %v", err)
	}
	if vpcID != "vpc-0abc" {
		t.Errorf("vpc = %q, want vpc-0abc", vpcID)
	}
	if port != 5439 {
		t.Errorf("port = %d, want 5439", port)
	}
}

func TestClusterOpenIngressToleratesDuplicate(t *testing.T) {
	cloud := &aws.MockClient{
		OpenIngressFunc: func(ctx context.Context, vpcID string, port int32) error {
			return apiError("InvalidPermission.Duplicate")
		},
	}
	observer := &recordingObserver{}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, observer)

	if err := lifecycle.OpenIngress(context.Background()); err != nil {
		t.Fatalf("OpenIngress() error = %v, want nil for duplicate rule", err)
	}
	if !observer.hasEvent(EventResourceExists) {
		t.Error("expected resource.exists event")
	}
}

func TestClusterPause(t *testing.T) {
	var pauseCalls, snapshotCalls int
	cloud := &aws.MockClient{
		PauseClusterFunc: func(ctx context.Context, id string) error {
			pauseCalls++
			return nil
		},
		CreateSnapshotFunc: func(ctx context.Context, snapshotID, clusterID string) (*aws.Snapshot, error) {
			snapshotCalls++
			return &aws.Snapshot{ID: snapshotID, ClusterID: clusterID, Status: "available"}, nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	if err := lifecycle.Pause(context.Background()); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if pauseCalls != 1 {
		t.Errorf("PauseCluster calls = %d, want 1", pauseCalls)
	}
	if snapshotCalls != 0 {
		t.Errorf("CreateSnapshot calls = %d, want 0", snapshotCalls)
	}
}

func TestClusterPauseSnapshotFallback(t *testing.T) {
	var pauseCalls, snapshotCalls int
	cloud := &aws.MockClient{
		PauseClusterFunc: func(ctx context.Context, id string) error {
			pauseCalls++
			if pauseCalls == 1 {
				return apiError("InvalidClusterState")
			}
			return nil
		},
		CreateSnapshotFunc: func(ctx context.Context, snapshotID, clusterID string) (*aws.Snapshot, error) {
			snapshotCalls++
			if snapshotID != PauseSnapshotID {
				t.Errorf("snapshot ID = %q, want %q", snapshotID, PauseSnapshotID)
			}
			return &aws.Snapshot{ID: snapshotID, ClusterID: clusterID, Status: "creating"}, nil
		},
		GetSnapshotFunc: func(ctx context.Context, snapshotID, clusterID string) (*aws.Snapshot, error) {
			return &aws.Snapshot{ID: snapshotID, ClusterID: clusterID, Status: "available"}, nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	if err := lifecycle.Pause(context.Background()); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if pauseCalls != 2 {
		t.Errorf("PauseCluster calls = %d, want 2", pauseCalls)
	}
	if snapshotCalls != 1 {
		t.Errorf("CreateSnapshot calls = %d, want 1", snapshotCalls)
	}
}

func TestClusterPauseRetriesExactlyOnce(t *testing.T) {
	var pauseCalls int
	cloud := &aws.MockClient{
		PauseClusterFunc: func(ctx context.Context, id string) error {
			pauseCalls++
			return apiError("InvalidClusterState")
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	err := lifecycle.Pause(context.Background())
	if err == nil {
		t.Fatal("Pause() error = nil, want backup_required failure")
	}
	if got := KindOf(err); got != KindBackupRequired {
		t.Errorf("KindOf(err) = %q, want %q", got, KindBackupRequired)
	}
	if pauseCalls != 2 {
		t.Errorf("PauseCluster calls = %d, want 2", pauseCalls)
	}
}

func TestClusterPauseOtherErrorSkipsSnapshot(t *testing.T) {
	var snapshotCalls int
	cloud := &aws.MockClient{
		PauseClusterFunc: func(ctx context.Context, id string) error {
			return apiError("ClusterNotFound")
		},
		CreateSnapshotFunc: func(ctx context.Context, snapshotID, clusterID string) (*aws.Snapshot, error) {
			snapshotCalls++
			return &aws.Snapshot{ID: snapshotID, Status: "available"}, nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	if err := lifecycle.Pause(context.Background()); err == nil {
		t.Fatal("Pause() error = nil, want error")
	}
	if snapshotCalls != 0 {
		t.Errorf("CreateSnapshot calls = %d, want 0", snapshotCalls)
	}
}

func TestClusterResume(t *testing.T) {
	var resumed string
	cloud := &aws.MockClient{
		ResumeClusterFunc: func(ctx context.Context, id string) error {
			resumed = id
			return nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	if err := lifecycle.Resume(context.Background()); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if resumed != "dwh-cluster" {
		t.Errorf("resumed cluster = %q, want dwh-cluster", resumed)
	}
}

func TestClusterTeardownAbsent(t *testing.T) {
	var deleteCalls int
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return nil, nil
		},
		DeleteClusterFunc: func(ctx context.Context, id string) error {
			deleteCalls++
			return nil
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	if err := lifecycle.Teardown(context.Background()); err != nil {
		t.Fatalf("Teardown() error = %v", err)
	}
	if deleteCalls != 0 {
		t.Errorf("DeleteCluster calls = %d, want 0", deleteCalls)
	}
}

func TestClusterTeardownRetriesTransientState(t *testing.T) {
	var getCalls, deleteCalls int
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			getCalls++
			if getCalls <= 2 {
				return &aws.Cluster{ID: id, Status: "deleting"}, nil
			}
			return nil, nil
		},
		DeleteClusterFunc: func(ctx context.Context, id string) error {
			deleteCalls++
			if deleteCalls == 1 {
				return apiError("InvalidClusterState")
			}
			return nil
		},
	}
	observer := &recordingObserver{}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, observer)

	if err := lifecycle.Teardown(context.Background()); err != nil {
		t.Fatalf("Teardown() error = %v", err)
	}
	if deleteCalls != 2 {
		t.Errorf("DeleteCluster calls = %d, want 2", deleteCalls)
	}
	if !observer.hasEvent(EventResourceDeleted) {
		t.Error("expected resource.deleted event")
	}
}

func TestClusterTeardownToleratesVanishedCluster(t *testing.T) {
	var getCalls int
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			getCalls++
			if getCalls == 1 {
				return &aws.Cluster{ID: id, Status: "available"}, nil
			}
			return nil, nil
		},
		DeleteClusterFunc: func(ctx context.Context, id string) error {
			return apiError("ClusterNotFound")
		},
	}
	lifecycle := newClusterLifecycle(cloud, &memStore{}, &recordingObserver{})

	if err := lifecycle.Teardown(context.Background()); err != nil {
		t.Fatalf("Teardown() error = %v, want nil when cluster vanished", err)
	}
}
