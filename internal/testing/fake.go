package testing

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/smithy-go"

	"github.com/imamik/dwhctl/internal/platform/aws"
)

// FakeControlPlane is a stateful in-memory control plane. It tracks roles,
// attached policies, clusters, and snapshots, and exposes knobs for staged
// visibility so the polling paths of the provisioning code get exercised.
//
// All mutating operations are recorded in Ops for order assertions.
type FakeControlPlane struct {
	mu sync.Mutex

	roles     map[string]*aws.Role
	policies  map[string]map[string]bool
	clusters  map[string]*aws.Cluster
	snapshots map[string]*aws.Snapshot

	// RoleVisibleAfter hides a created role from GetRole for that many
	// calls, imitating IAM propagation delay.
	RoleVisibleAfter int
	// ClusterAvailableAfter keeps a created cluster in "creating" for
	// that many GetCluster calls before it flips to "available".
	ClusterAvailableAfter int
	// DetachVisibleAfter keeps a detached policy listed for that many
	// ListAttachedRolePolicies calls.
	DetachVisibleAfter int
	// PauseRequiresSnapshot makes PauseCluster fail with an
	// InvalidClusterState error until a snapshot of the cluster exists.
	PauseRequiresSnapshot bool

	roleGets      map[string]int
	clusterGets   map[string]int
	detachPending map[string]map[string]int

	// Ops records mutating control-plane calls in order.
	Ops []string
}

// NewFakeControlPlane creates an empty fake control plane.
func NewFakeControlPlane() *FakeControlPlane {
	return &FakeControlPlane{
		roles:         make(map[string]*aws.Role),
		policies:      make(map[string]map[string]bool),
		clusters:      make(map[string]*aws.Cluster),
		snapshots:     make(map[string]*aws.Snapshot),
		roleGets:      make(map[string]int),
		clusterGets:   make(map[string]int),
		detachPending: make(map[string]map[string]int),
	}
}

// OpsSeen returns a copy of the recorded operations.
func (f *FakeControlPlane) OpsSeen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.Ops))
	copy(ops, f.Ops)
	return ops
}

// HasRole reports whether the role currently exists.
func (f *FakeControlPlane) HasRole(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.roles[name]
	return ok
}

// HasCluster reports whether the cluster currently exists.
func (f *FakeControlPlane) HasCluster(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.clusters[id]
	return ok
}

func (f *FakeControlPlane) record(op string) {
	f.Ops = append(f.Ops, op)
}

func apiFault(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}

// CreateRole implements aws.RoleManager.
func (f *FakeControlPlane) CreateRole(_ context.Context, name, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("role.create")
	if _, ok := f.roles[name]; ok {
		return "", apiFault("EntityAlreadyExists", fmt.Sprintf("role %s already exists", name))
	}

	role := &aws.Role{Name: name, ARN: fmt.Sprintf("arn:aws:iam::123456789012:role/%s", name)}
	f.roles[name] = role
	f.roleGets[name] = 0
	return role.ARN, nil
}

// GetRole implements aws.RoleManager. A freshly created role stays
// invisible for RoleVisibleAfter calls.
func (f *FakeControlPlane) GetRole(_ context.Context, name string) (*aws.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	role, ok := f.roles[name]
	if !ok {
		return nil, nil
	}

	f.roleGets[name]++
	if f.roleGets[name] <= f.RoleVisibleAfter {
		return nil, nil
	}

	copied := *role
	return &copied, nil
}

// AttachRolePolicy implements aws.RoleManager.
func (f *FakeControlPlane) AttachRolePolicy(_ context.Context, roleName, policyARN string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("policy.attach")
	if _, ok := f.roles[roleName]; !ok {
		return apiFault("NoSuchEntity", fmt.Sprintf("role %s not found", roleName))
	}

	if f.policies[roleName] == nil {
		f.policies[roleName] = make(map[string]bool)
	}
	f.policies[roleName][policyARN] = true
	return nil
}

// DetachRolePolicy implements aws.RoleManager. The policy stays listed
// for DetachVisibleAfter ListAttachedRolePolicies calls.
func (f *FakeControlPlane) DetachRolePolicy(_ context.Context, roleName, policyARN string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("policy.detach")
	if _, ok := f.roles[roleName]; !ok {
		return apiFault("NoSuchEntity", fmt.Sprintf("role %s not found", roleName))
	}
	if !f.policies[roleName][policyARN] {
		return apiFault("NoSuchEntity", fmt.Sprintf("policy %s not attached", policyARN))
	}

	delete(f.policies[roleName], policyARN)
	if f.DetachVisibleAfter > 0 {
		if f.detachPending[roleName] == nil {
			f.detachPending[roleName] = make(map[string]int)
		}
		f.detachPending[roleName][policyARN] = f.DetachVisibleAfter
	}
	return nil
}

// ListAttachedRolePolicies implements aws.RoleManager.
func (f *FakeControlPlane) ListAttachedRolePolicies(_ context.Context, roleName string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.roles[roleName]; !ok {
		return nil, apiFault("NoSuchEntity", fmt.Sprintf("role %s not found", roleName))
	}

	var arns []string
	for arn := range f.policies[roleName] {
		arns = append(arns, arn)
	}
	for arn, left := range f.detachPending[roleName] {
		if left > 0 {
			f.detachPending[roleName][arn] = left - 1
			arns = append(arns, arn)
		}
	}
	sort.Strings(arns)
	return arns, nil
}

// DeleteRole implements aws.RoleManager. Roles with attached policies
// cannot be deleted.
func (f *FakeControlPlane) DeleteRole(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("role.delete")
	if _, ok := f.roles[name]; !ok {
		return apiFault("NoSuchEntity", fmt.Sprintf("role %s not found", name))
	}
	if len(f.policies[name]) > 0 {
		return apiFault("DeleteConflict", fmt.Sprintf("role %s still has attached policies", name))
	}

	delete(f.roles, name)
	delete(f.policies, name)
	return nil
}

// CreateCluster implements aws.ClusterManager.
func (f *FakeControlPlane) CreateCluster(_ context.Context, opts aws.ClusterCreateOpts) (*aws.Cluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("cluster.create")
	if _, ok := f.clusters[opts.ID]; ok {
		return nil, apiFault("ClusterAlreadyExists", fmt.Sprintf("cluster %s already exists", opts.ID))
	}

	cluster := &aws.Cluster{
		ID:                 opts.ID,
		Status:             "creating",
		NodeType:           opts.NodeType,
		NodeCount:          int32(opts.NodeCount),
		DBName:             opts.DBName,
		MasterUsername:     opts.MasterUsername,
		VPCID:              "vpc-0abc",
		PubliclyAccessible: true,
		RoleARNs:           append([]string(nil), opts.RoleARNs...),
	}
	f.clusters[opts.ID] = cluster
	f.clusterGets[opts.ID] = 0

	copied := *cluster
	return &copied, nil
}

// GetCluster implements aws.ClusterManager and advances staged status
// transitions: creating->available, pausing->paused, resuming->available,
// deleting->gone.
func (f *FakeControlPlane) GetCluster(_ context.Context, id string) (*aws.Cluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cluster, ok := f.clusters[id]
	if !ok {
		return nil, nil
	}

	f.clusterGets[id]++
	switch cluster.Status {
	case "creating":
		if f.clusterGets[id] > f.ClusterAvailableAfter {
			cluster.Status = "available"
			cluster.Endpoint = &aws.Endpoint{
				Address: fmt.Sprintf("%s.abc123.us-west-2.redshift.amazonaws.com", id),
				Port:    5439,
			}
		}
	case "pausing":
		cluster.Status = "paused"
	case "resuming":
		cluster.Status = "available"
	case "deleting":
		delete(f.clusters, id)
		return nil, nil
	}

	copied := *cluster
	return &copied, nil
}

// PauseCluster implements aws.ClusterManager.
func (f *FakeControlPlane) PauseCluster(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("cluster.pause")
	cluster, ok := f.clusters[id]
	if !ok {
		return apiFault("ClusterNotFound", fmt.Sprintf("cluster %s not found", id))
	}
	if cluster.Status != "available" {
		return apiFault("InvalidClusterState", fmt.Sprintf("cluster %s is %s", id, cluster.Status))
	}
	if f.PauseRequiresSnapshot && !f.hasSnapshotLocked(id) {
		return apiFault("InvalidClusterState", fmt.Sprintf("cluster %s has no recent backup", id))
	}

	cluster.Status = "pausing"
	return nil
}

// ResumeCluster implements aws.ClusterManager.
func (f *FakeControlPlane) ResumeCluster(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("cluster.resume")
	cluster, ok := f.clusters[id]
	if !ok {
		return apiFault("ClusterNotFound", fmt.Sprintf("cluster %s not found", id))
	}
	if cluster.Status != "paused" {
		return apiFault("InvalidClusterState", fmt.Sprintf("cluster %s is %s", id, cluster.Status))
	}

	cluster.Status = "resuming"
	return nil
}

// DeleteCluster implements aws.ClusterManager. Transitional states
// reject the delete so callers retry.
func (f *FakeControlPlane) DeleteCluster(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("cluster.delete")
	cluster, ok := f.clusters[id]
	if !ok {
		return apiFault("ClusterNotFound", fmt.Sprintf("cluster %s not found", id))
	}
	switch cluster.Status {
	case "pausing", "resuming":
		return apiFault("InvalidClusterState", fmt.Sprintf("cluster %s is %s", id, cluster.Status))
	}

	cluster.Status = "deleting"
	return nil
}

// CreateSnapshot implements aws.SnapshotManager.
func (f *FakeControlPlane) CreateSnapshot(_ context.Context, snapshotID, clusterID string) (*aws.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("snapshot.create")
	if _, ok := f.clusters[clusterID]; !ok {
		return nil, apiFault("ClusterNotFound", fmt.Sprintf("cluster %s not found", clusterID))
	}
	if _, ok := f.snapshots[snapshotID]; ok {
		return nil, apiFault("ClusterSnapshotAlreadyExists", fmt.Sprintf("snapshot %s already exists", snapshotID))
	}

	snapshot := &aws.Snapshot{ID: snapshotID, ClusterID: clusterID, Status: "creating"}
	f.snapshots[snapshotID] = snapshot

	copied := *snapshot
	return &copied, nil
}

// GetSnapshot implements aws.SnapshotManager. Snapshots become available
// on the first poll after creation.
func (f *FakeControlPlane) GetSnapshot(_ context.Context, snapshotID, _ string) (*aws.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot, ok := f.snapshots[snapshotID]
	if !ok {
		return nil, nil
	}

	if snapshot.Status == "creating" {
		snapshot.Status = "available"
	}

	copied := *snapshot
	return &copied, nil
}

// OpenIngress implements aws.NetworkManager.
func (f *FakeControlPlane) OpenIngress(_ context.Context, vpcID string, port int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record(fmt.Sprintf("ingress.open %s:%d", vpcID, port))
	return nil
}

func (f *FakeControlPlane) hasSnapshotLocked(clusterID string) bool {
	for _, snapshot := range f.snapshots {
		if snapshot.ClusterID == clusterID {
			return true
		}
	}
	return false
}
