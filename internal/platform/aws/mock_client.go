package aws

import "context"

// MockClient is a mock implementation of ControlPlane.
type MockClient struct {
	// Role
	CreateRoleFunc               func(ctx context.Context, name, trustPolicy, description string) (string, error)
	GetRoleFunc                  func(ctx context.Context, name string) (*Role, error)
	AttachRolePolicyFunc         func(ctx context.Context, roleName, policyARN string) error
	DetachRolePolicyFunc         func(ctx context.Context, roleName, policyARN string) error
	ListAttachedRolePoliciesFunc func(ctx context.Context, roleName string) ([]string, error)
	DeleteRoleFunc               func(ctx context.Context, name string) error

	// Cluster
	CreateClusterFunc func(ctx context.Context, opts ClusterCreateOpts) (*Cluster, error)
	GetClusterFunc    func(ctx context.Context, id string) (*Cluster, error)
	PauseClusterFunc  func(ctx context.Context, id string) error
	ResumeClusterFunc func(ctx context.Context, id string) error
	DeleteClusterFunc func(ctx context.Context, id string) error

	// Snapshot
	CreateSnapshotFunc func(ctx context.Context, snapshotID, clusterID string) (*Snapshot, error)
	GetSnapshotFunc    func(ctx context.Context, snapshotID, clusterID string) (*Snapshot, error)

	// Network
	OpenIngressFunc func(ctx context.Context, vpcID string, port int32) error
}

// Ensure interface compliance
var _ ControlPlane = (*MockClient)(nil)

// CreateRole mocks role creation.
func (m *MockClient) CreateRole(ctx context.Context, name, trustPolicy, description string) (string, error) {
	if m.CreateRoleFunc != nil {
		return m.CreateRoleFunc(ctx, name, trustPolicy, description)
	}
	return "arn:aws:iam::000000000000:role/" + name, nil
}

// GetRole mocks role lookup.
func (m *MockClient) GetRole(ctx context.Context, name string) (*Role, error) {
	if m.GetRoleFunc != nil {
		return m.GetRoleFunc(ctx, name)
	}
	return &Role{Name: name, ARN: "arn:aws:iam::000000000000:role/" + name}, nil
}

// AttachRolePolicy mocks policy attachment.
func (m *MockClient) AttachRolePolicy(ctx context.Context, roleName, policyARN string) error {
	if m.AttachRolePolicyFunc != nil {
		return m.AttachRolePolicyFunc(ctx, roleName, policyARN)
	}
	return nil
}

// DetachRolePolicy mocks policy detachment.
func (m *MockClient) DetachRolePolicy(ctx context.Context, roleName, policyARN string) error {
	if m.DetachRolePolicyFunc != nil {
		return m.DetachRolePolicyFunc(ctx, roleName, policyARN)
	}
	return nil
}

// ListAttachedRolePolicies mocks policy enumeration.
func (m *MockClient) ListAttachedRolePolicies(ctx context.Context, roleName string) ([]string, error) {
	if m.ListAttachedRolePoliciesFunc != nil {
		return m.ListAttachedRolePoliciesFunc(ctx, roleName)
	}
	return nil, nil
}

// DeleteRole mocks role deletion.
func (m *MockClient) DeleteRole(ctx context.Context, name string) error {
	if m.DeleteRoleFunc != nil {
		return m.DeleteRoleFunc(ctx, name)
	}
	return nil
}

// CreateCluster mocks cluster creation.
func (m *MockClient) CreateCluster(ctx context.Context, opts ClusterCreateOpts) (*Cluster, error) {
	if m.CreateClusterFunc != nil {
		return m.CreateClusterFunc(ctx, opts)
	}
	return &Cluster{ID: opts.ID, Status: "creating"}, nil
}

// GetCluster mocks cluster lookup.
func (m *MockClient) GetCluster(ctx context.Context, id string) (*Cluster, error) {
	if m.GetClusterFunc != nil {
		return m.GetClusterFunc(ctx, id)
	}
	return &Cluster{ID: id, Status: "available"}, nil
}

// PauseCluster mocks a pause request.
func (m *MockClient) PauseCluster(ctx context.Context, id string) error {
	if m.PauseClusterFunc != nil {
		return m.PauseClusterFunc(ctx, id)
	}
	return nil
}

// ResumeCluster mocks a resume request.
func (m *MockClient) ResumeCluster(ctx context.Context, id string) error {
	if m.ResumeClusterFunc != nil {
		return m.ResumeClusterFunc(ctx, id)
	}
	return nil
}

// DeleteCluster mocks cluster deletion.
func (m *MockClient) DeleteCluster(ctx context.Context, id string) error {
	if m.DeleteClusterFunc != nil {
		return m.DeleteClusterFunc(ctx, id)
	}
	return nil
}

// CreateSnapshot mocks snapshot creation.
func (m *MockClient) CreateSnapshot(ctx context.Context, snapshotID, clusterID string) (*Snapshot, error) {
	if m.CreateSnapshotFunc != nil {
		return m.CreateSnapshotFunc(ctx, snapshotID, clusterID)
	}
	return &Snapshot{ID: snapshotID, ClusterID: clusterID, Status: "available"}, nil
}

// GetSnapshot mocks snapshot lookup.
func (m *MockClient) GetSnapshot(ctx context.Context, snapshotID, clusterID string) (*Snapshot, error) {
	if m.GetSnapshotFunc != nil {
		return m.GetSnapshotFunc(ctx, snapshotID, clusterID)
	}
	return &Snapshot{ID: snapshotID, ClusterID: clusterID, Status: "available"}, nil
}

// OpenIngress mocks ingress authorization.
func (m *MockClient) OpenIngress(ctx context.Context, vpcID string, port int32) error {
	if m.OpenIngressFunc != nil {
		return m.OpenIngressFunc(ctx, vpcID, port)
	}
	return nil
}
