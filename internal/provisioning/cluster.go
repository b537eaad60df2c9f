package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/platform/aws"
	"github.com/imamik/dwhctl/internal/util/retry"
)

// PauseSnapshotID is the snapshot taken when a pause is rejected for a
// missing recent backup.
const PauseSnapshotID = "dwhctl-pause-snapshot"

// ClusterLifecycle manages the warehouse cluster: creation, state
// waits, pause and resume, endpoint write-back, ingress, and teardown.
type ClusterLifecycle struct {
	clusters  aws.ClusterManager
	snapshots aws.SnapshotManager
	network   aws.NetworkManager
	store     config.Store
	observer  Observer
	timeouts  *config.Timeouts
	cluster   config.Cluster
	db        config.Database
}

// NewClusterLifecycle creates a cluster lifecycle for the configured
// cluster and database.
func NewClusterLifecycle(cloud aws.ControlPlane, store config.Store, observer Observer, timeouts *config.Timeouts, cfg *config.Config) *ClusterLifecycle {
	return &ClusterLifecycle{
		clusters:  cloud,
		snapshots: cloud,
		network:   cloud,
		store:     store,
		observer:  observer,
		timeouts:  timeouts,
		cluster:   cfg.Cluster,
		db:        cfg.Database,
	}
}

// Ensure creates the cluster if it does not exist. The role ARN must
// already be known; without it the cluster would come up unable to read
// source data, so creation is refused before any control-plane call.
func (l *ClusterLifecycle) Ensure(ctx context.Context, roleARN string) error {
	if roleARN == "" {
		return &OpError{
			Op:   "cluster.create",
			Kind: KindPreconditionFailed,
			Err:  fmt.Errorf("role ARN is empty; provision the role first"),
		}
	}

	LogResourceCreating(l.observer, "warehouse", l.cluster.Identifier)
	_, err := l.clusters.CreateCluster(ctx, aws.ClusterCreateOpts{
		ID:             l.cluster.Identifier,
		NodeType:       l.cluster.NodeType,
		NodeCount:      l.cluster.NodeCount,
		DBName:         l.db.Name,
		MasterUsername: l.db.User,
		MasterPassword: l.db.Password,
		Port:           l.db.Port,
		RoleARNs:       []string{roleARN},
	})
	if err != nil {
		if aws.IsAlreadyExists(err) {
			LogResourceExists(l.observer, "warehouse", l.cluster.Identifier)
			return nil
		}
		return fmt.Errorf("create cluster %s: %w", l.cluster.Identifier, err)
	}
	LogResourceCreated(l.observer, "warehouse", l.cluster.Identifier)
	return nil
}

// WaitAvailable polls until the cluster reports available and returns
// the final observation.
func (l *ClusterLifecycle) WaitAvailable(ctx context.Context) (*aws.Cluster, error) {
	var last *aws.Cluster
	start := time.Now()
	err := retry.Poll(ctx, "cluster.wait", l.timeouts.ClusterPoll, l.timeouts.ClusterAvailable, func(ctx context.Context) (bool, error) {
		cluster, err := l.clusters.GetCluster(ctx, l.cluster.Identifier)
		if err != nil {
			return false, err
		}
		if cluster == nil {
			LogWaiting(l.observer, "warehouse", l.cluster.Identifier, "pending", time.Since(start))
			return false, nil
		}
		last = cluster
		if StateOf(cluster) == StateAvailable {
			return true, nil
		}
		LogWaiting(l.observer, "warehouse", l.cluster.Identifier, cluster.Status, time.Since(start))
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return last, nil
}

// Describe returns the current cluster, or nil when it does not exist.
func (l *ClusterLifecycle) Describe(ctx context.Context) (*aws.Cluster, error) {
	return l.clusters.GetCluster(ctx, l.cluster.Identifier)
}

// Status returns the normalized cluster state.
func (l *ClusterLifecycle) Status(ctx context.Context) (ClusterState, error) {
	cluster, err := l.clusters.GetCluster(ctx, l.cluster.Identifier)
	if err != nil {
		return StateUnknown, err
	}
	return StateOf(cluster), nil
}

// RecordEndpoint looks up the cluster endpoint and writes the host back
// to the configuration file for warehouse connections.
func (l *ClusterLifecycle) RecordEndpoint(ctx context.Context) (*aws.Endpoint, error) {
	cluster, err := l.clusters.GetCluster(ctx, l.cluster.Identifier)
	if err != nil {
		return nil, fmt.Errorf("look up cluster %s: %w", l.cluster.Identifier, err)
	}
	if cluster == nil {
		return nil, fmt.Errorf("cluster %s not found", l.cluster.Identifier)
	}
	if cluster.Endpoint == nil {
		return nil, fmt.Errorf("cluster %s has no endpoint yet (status %s)", l.cluster.Identifier, cluster.Status)
	}
	if err := l.store.SaveClusterHost(cluster.Endpoint.Address); err != nil {
		return nil, fmt.Errorf("record cluster host: %w", err)
	}
	LogRecorded(l.observer, "endpoint", "host", cluster.Endpoint.Address)
	return cluster.Endpoint, nil
}

// OpenIngress opens the database port on the default security group of
// the cluster's VPC. An already-open port is tolerated.
func (l *ClusterLifecycle) OpenIngress(ctx context.Context) error {
	cluster, err := l.clusters.GetCluster(ctx, l.cluster.Identifier)
	if err != nil {
		return fmt.Errorf("look up cluster %s: %w", l.cluster.Identifier, err)
	}
	if cluster == nil {
		return fmt.Errorf("cluster %s not found", l.cluster.Identifier)
	}
	if err := l.network.OpenIngress(ctx, cluster.VPCID, int32(l.db.Port)); err != nil {
		if aws.IsAlreadyExists(err) {
			LogResourceExists(l.observer, "ingress", fmt.Sprintf("port %d", l.db.Port))
			return nil
		}
		return fmt.Errorf("open ingress on port %d: %w", l.db.Port, err)
	}
	LogResourceCreated(l.observer, "ingress", fmt.Sprintf("port %d", l.db.Port))
	return nil
}

// Pause suspends the cluster. A pause rejected for a missing recent
// backup triggers one snapshot-then-retry: take a snapshot, wait for it
// to become available, and pause again. The second rejection is
// surfaced as a backup_required failure.
func (l *ClusterLifecycle) Pause(ctx context.Context) error {
	err := l.clusters.PauseCluster(ctx, l.cluster.Identifier)
	if err == nil {
		return nil
	}
	if !aws.IsInvalidClusterState(err) {
		return fmt.Errorf("pause cluster %s: %w", l.cluster.Identifier, err)
	}

	l.observer.Printf("[warehouse] pause rejected, taking snapshot %s first", PauseSnapshotID)
	if err := l.ensureSnapshot(ctx); err != nil {
		return fmt.Errorf("snapshot before pause: %w", err)
	}

	if err := l.clusters.PauseCluster(ctx, l.cluster.Identifier); err != nil {
		if aws.IsInvalidClusterState(err) {
			return &OpError{
				Op:   "cluster.pause",
				Kind: KindBackupRequired,
				Err:  fmt.Errorf("pause rejected again after snapshot %s: %w", PauseSnapshotID, err),
			}
		}
		return fmt.Errorf("pause cluster %s after snapshot: %w", l.cluster.Identifier, err)
	}
	return nil
}

func (l *ClusterLifecycle) ensureSnapshot(ctx context.Context) error {
	_, err := l.snapshots.CreateSnapshot(ctx, PauseSnapshotID, l.cluster.Identifier)
	if err != nil && !aws.IsAlreadyExists(err) {
		return fmt.Errorf("create snapshot %s: %w", PauseSnapshotID, err)
	}

	start := time.Now()
	return retry.Poll(ctx, "snapshot.wait", l.timeouts.SnapshotPoll, l.timeouts.SnapshotAvailable, func(ctx context.Context) (bool, error) {
		snapshot, err := l.snapshots.GetSnapshot(ctx, PauseSnapshotID, l.cluster.Identifier)
		if err != nil {
			return false, err
		}
		if snapshot == nil || snapshot.Status != "available" {
			status := "pending"
			if snapshot != nil {
				status = snapshot.Status
			}
			LogWaiting(l.observer, "warehouse", PauseSnapshotID, status, time.Since(start))
			return false, nil
		}
		return true, nil
	})
}

// Resume restarts a paused cluster.
func (l *ClusterLifecycle) Resume(ctx context.Context) error {
	if err := l.clusters.ResumeCluster(ctx, l.cluster.Identifier); err != nil {
		return fmt.Errorf("resume cluster %s: %w", l.cluster.Identifier, err)
	}
	return nil
}

// Teardown deletes the cluster without a final snapshot and waits until
// the identifier is gone. Deletion is retried while the cluster is in a
// transitional state.
func (l *ClusterLifecycle) Teardown(ctx context.Context) error {
	cluster, err := l.clusters.GetCluster(ctx, l.cluster.Identifier)
	if err != nil {
		return fmt.Errorf("look up cluster %s: %w", l.cluster.Identifier, err)
	}
	if cluster == nil {
		l.observer.Printf("[warehouse] cluster %s already absent", l.cluster.Identifier)
		return nil
	}

	LogResourceDeleting(l.observer, "warehouse", l.cluster.Identifier)
	err = retry.WithExponentialBackoff(ctx, func() error {
		err := l.clusters.DeleteCluster(ctx, l.cluster.Identifier)
		if err == nil || aws.IsNotFound(err) {
			return nil
		}
		if aws.IsInvalidClusterState(err) {
			return err
		}
		return retry.Fatal(err)
	}, retry.WithMaxRetries(l.timeouts.RetryMaxAttempts), retry.WithInitialDelay(l.timeouts.RetryInitialDelay))
	if err != nil {
		return fmt.Errorf("delete cluster %s: %w", l.cluster.Identifier, err)
	}

	start := time.Now()
	err = retry.Poll(ctx, "cluster.gone.wait", l.timeouts.ClusterPoll, l.timeouts.ClusterGone, func(ctx context.Context) (bool, error) {
		cluster, err := l.clusters.GetCluster(ctx, l.cluster.Identifier)
		if err != nil {
			return false, err
		}
		if cluster == nil {
			return true, nil
		}
		LogWaiting(l.observer, "warehouse", l.cluster.Identifier, cluster.Status, time.Since(start))
		return false, nil
	})
	if err != nil {
		return fmt.Errorf("wait for cluster %s deletion: %w", l.cluster.Identifier, err)
	}
	LogResourceDeleted(l.observer, "warehouse", l.cluster.Identifier)
	return nil
}
