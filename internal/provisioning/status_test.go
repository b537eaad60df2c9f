package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/imamik/dwhctl/internal/platform/aws"
)

func TestBuildSummary(t *testing.T) {
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return &aws.Cluster{
				ID:             id,
				Status:         "available",
				NodeType:       "dc2.large",
				NodeCount:      4,
				DBName:         "dwh",
				MasterUsername: "dwhuser",
				VPCID:          "vpc-0abc",
				Endpoint:       &aws.Endpoint{Address: "dwh.example.com", Port: 5439},
			}, nil
		},
		ListAttachedRolePoliciesFunc: func(ctx context.Context, roleName string) ([]string, error) {
			return []string{ReadAccessPolicyARN}, nil
		},
	}
	cfg := testConfig()
	cfg.IAMRole.ARN = "arn:aws:iam::000000000000:role/dwh-role"

	summary, err := BuildSummary(context.Background(), cloud, cfg)
	if err != nil {
		t.Fatalf("BuildSummary() error = %v", err)
	}
	if summary.State != StateAvailable {
		t.Errorf("state = %q, want %q", summary.State, StateAvailable)
	}
	if summary.NodeType != "dc2.large" || summary.NodeCount != 4 {
		t.Errorf("nodes = %s x%d", summary.NodeType, summary.NodeCount)
	}
	if summary.Endpoint == nil || summary.Endpoint.Address != "dwh.example.com" {
		t.Errorf("endpoint = %+v", summary.Endpoint)
	}
	if summary.RoleARN == "" {
		t.Error("role ARN missing")
	}
	if summary.RecordedARN != cfg.IAMRole.ARN {
		t.Errorf("recorded ARN = %q", summary.RecordedARN)
	}
	if !summary.PolicyAttached {
		t.Error("policy reported as detached")
	}
}

func TestBuildSummaryAbsentResources(t *testing.T) {
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return nil, nil
		},
		GetRoleFunc: func(ctx context.Context, name string) (*aws.Role, error) {
			return nil, nil
		},
	}

	summary, err := BuildSummary(context.Background(), cloud, testConfig())
	if err != nil {
		t.Fatalf("BuildSummary() error = %v", err)
	}
	if summary.State != StateAbsent {
		t.Errorf("state = %q, want %q", summary.State, StateAbsent)
	}
	if summary.RoleARN != "" {
		t.Errorf("role ARN = %q, want empty", summary.RoleARN)
	}
	if summary.PolicyAttached {
		t.Error("policy reported attached for missing role")
	}
}

func TestBuildSummaryReportsBothLookupFailures(t *testing.T) {
	clusterErr := errors.New("redshift unreachable")
	roleErr := errors.New("iam unreachable")
	cloud := &aws.MockClient{
		GetClusterFunc: func(ctx context.Context, id string) (*aws.Cluster, error) {
			return nil, clusterErr
		},
		GetRoleFunc: func(ctx context.Context, name string) (*aws.Role, error) {
			return nil, roleErr
		},
	}

	_, err := BuildSummary(context.Background(), cloud, testConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, clusterErr) {
		t.Errorf("cluster failure missing from %v", err)
	}
	if !errors.Is(err, roleErr) {
		t.Errorf("role failure missing from %v", err)
	}
}

func TestBuildSummaryPolicyDetached(t *testing.T) {
	cloud := &aws.MockClient{
		ListAttachedRolePoliciesFunc: func(ctx context.Context, roleName string) ([]string, error) {
			return []string{"arn:aws:iam::aws:policy/SomethingElse"}, nil
		},
	}

	summary, err := BuildSummary(context.Background(), cloud, testConfig())
	if err != nil {
		t.Fatalf("BuildSummary() error = %v", err)
	}
	if summary.PolicyAttached {
		t.Error("policy reported attached")
	}
}
