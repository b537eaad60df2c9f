// Package aws provides a wrapper around the AWS control-plane APIs
// used to provision the warehouse: IAM for the data-access role,
// Redshift for the cluster and its snapshots, and EC2 for network
// ingress.
package aws

import "context"

// Role is the control-plane view of the warehouse data-access role.
type Role struct {
	Name string
	ARN  string
}

// Endpoint is the reachable address of an available cluster.
type Endpoint struct {
	Address string
	Port    int32
}

// Cluster is the control-plane view of a warehouse cluster.
type Cluster struct {
	ID                 string
	Status             string
	NodeType           string
	NodeCount          int32
	DBName             string
	MasterUsername     string
	VPCID              string
	PubliclyAccessible bool
	RoleARNs           []string

	// Endpoint is nil until the cluster is available.
	Endpoint *Endpoint
}

// Snapshot is the control-plane view of a cluster snapshot.
type Snapshot struct {
	ID        string
	ClusterID string
	Status    string
}

// ClusterCreateOpts holds all parameters for creating a cluster.
type ClusterCreateOpts struct {
	ID             string
	NodeType       string
	NodeCount      int
	DBName         string
	MasterUsername string
	MasterPassword string
	Port           int

	// RoleARNs are granted to the cluster at creation so COPY can
	// read source data.
	RoleARNs []string
}

// RoleManager defines the interface for managing the data-access role.
type RoleManager interface {
	// CreateRole creates the role with the given trust policy document
	// and returns its ARN.
	CreateRole(ctx context.Context, name, trustPolicy, description string) (string, error)
	// GetRole returns the role by name, or nil if it does not exist.
	GetRole(ctx context.Context, name string) (*Role, error)
	AttachRolePolicy(ctx context.Context, roleName, policyARN string) error
	DetachRolePolicy(ctx context.Context, roleName, policyARN string) error
	// ListAttachedRolePolicies returns the ARNs of all managed
	// policies attached to the role.
	ListAttachedRolePolicies(ctx context.Context, roleName string) ([]string, error)
	DeleteRole(ctx context.Context, name string) error
}

// ClusterManager defines the interface for managing the cluster.
type ClusterManager interface {
	CreateCluster(ctx context.Context, opts ClusterCreateOpts) (*Cluster, error)
	// GetCluster returns the cluster by identifier, or nil if it does
	// not exist.
	GetCluster(ctx context.Context, id string) (*Cluster, error)
	PauseCluster(ctx context.Context, id string) error
	ResumeCluster(ctx context.Context, id string) error
	// DeleteCluster deletes the cluster without taking a final
	// snapshot.
	DeleteCluster(ctx context.Context, id string) error
}

// SnapshotManager defines the interface for managing cluster snapshots.
type SnapshotManager interface {
	CreateSnapshot(ctx context.Context, snapshotID, clusterID string) (*Snapshot, error)
	// GetSnapshot returns the snapshot by identifier, or nil if it
	// does not exist.
	GetSnapshot(ctx context.Context, snapshotID, clusterID string) (*Snapshot, error)
}

// NetworkManager defines the interface for managing network access to
// the cluster.
type NetworkManager interface {
	// OpenIngress authorizes inbound TCP on the given port from
	// anywhere on the default security group of the VPC.
	OpenIngress(ctx context.Context, vpcID string, port int32) error
}

// ControlPlane combines all control-plane interfaces.
type ControlPlane interface {
	RoleManager
	ClusterManager
	SnapshotManager
	NetworkManager
}
