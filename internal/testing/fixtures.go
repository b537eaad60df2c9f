package testing

import (
	"context"

	"github.com/imamik/dwhctl/internal/platform/aws"
)

// CloudFixture provides a pre-configured control-plane mock for common test scenarios.
type CloudFixture struct {
	mock *aws.MockClient
}

// NewCloudFixture creates a new control-plane fixture.
func NewCloudFixture() *CloudFixture {
	return &CloudFixture{
		mock: &aws.MockClient{},
	}
}

// Mock returns the underlying MockClient for custom configuration.
func (f *CloudFixture) Mock() *aws.MockClient {
	return f.mock
}

// SuccessfulProvisioning configures the mock for a successful provisioning run.
// Returns the same mock for chaining.
func (f *CloudFixture) SuccessfulProvisioning() *aws.MockClient {
	roleARN := "arn:aws:iam::123456789012:role/test-role"

	f.mock.CreateRoleFunc = func(_ context.Context, name, _, _ string) (string, error) {
		return roleARN, nil
	}
	f.mock.GetRoleFunc = func(_ context.Context, name string) (*aws.Role, error) {
		return &aws.Role{Name: name, ARN: roleARN}, nil
	}
	f.mock.ListAttachedRolePoliciesFunc = func(_ context.Context, _ string) ([]string, error) {
		return []string{"arn:aws:iam::aws:policy/AmazonS3ReadOnlyAccess"}, nil
	}
	f.mock.CreateClusterFunc = func(_ context.Context, opts aws.ClusterCreateOpts) (*aws.Cluster, error) {
		return &aws.Cluster{ID: opts.ID, Status: "creating"}, nil
	}
	f.mock.GetClusterFunc = func(_ context.Context, id string) (*aws.Cluster, error) {
		return &aws.Cluster{
			ID:       id,
			Status:   "available",
			NodeType: "dc2.large",
			VPCID:    "vpc-0abc",
			Endpoint: &aws.Endpoint{Address: "test-cluster.abc123.us-west-2.redshift.amazonaws.com", Port: 5439},
		}, nil
	}

	return f.mock
}

// SuccessfulTeardown configures the mock for a successful teardown run. The
// cluster stays visible until DeleteCluster is called, then vanishes so
// deletion waits can complete.
func (f *CloudFixture) SuccessfulTeardown() *aws.MockClient {
	deleted := false

	f.mock.GetClusterFunc = func(_ context.Context, id string) (*aws.Cluster, error) {
		if deleted {
			return nil, nil
		}
		return &aws.Cluster{ID: id, Status: "available"}, nil
	}
	f.mock.DeleteClusterFunc = func(_ context.Context, _ string) error {
		deleted = true
		return nil
	}
	f.mock.GetRoleFunc = func(_ context.Context, name string) (*aws.Role, error) {
		return &aws.Role{Name: name, ARN: "arn:aws:iam::123456789012:role/test-role"}, nil
	}
	f.mock.ListAttachedRolePoliciesFunc = func(_ context.Context, _ string) ([]string, error) {
		return nil, nil
	}

	return f.mock
}

// WithRoleError configures the mock to fail on role creation.
func (f *CloudFixture) WithRoleError(err error) *aws.MockClient {
	f.mock.CreateRoleFunc = func(_ context.Context, _, _, _ string) (string, error) {
		return "", err
	}
	return f.mock
}

// WithClusterError configures the mock to fail on cluster creation.
func (f *CloudFixture) WithClusterError(err error) *aws.MockClient {
	f.SuccessfulProvisioning()
	f.mock.CreateClusterFunc = func(_ context.Context, _ aws.ClusterCreateOpts) (*aws.Cluster, error) {
		return nil, err
	}
	return f.mock
}
