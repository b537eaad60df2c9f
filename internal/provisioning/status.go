package provisioning

import (
	"context"
	"fmt"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/platform/aws"
	"github.com/imamik/dwhctl/internal/util/async"
)

// Summary is a read-only snapshot of the provisioned resources.
type Summary struct {
	ClusterID  string
	State      ClusterState
	NodeType   string
	NodeCount  int32
	Database   string
	MasterUser string
	Endpoint   *aws.Endpoint
	VPCID      string

	RoleName       string
	RoleARN        string
	RecordedARN    string
	PolicyAttached bool
}

// BuildSummary collects the current state of the cluster and role
// without mutating anything. The two lookups are independent and run
// concurrently. Absent resources are reported, not treated as errors.
func BuildSummary(ctx context.Context, cloud aws.ControlPlane, cfg *config.Config) (*Summary, error) {
	summary := &Summary{
		ClusterID:   cfg.Cluster.Identifier,
		RoleName:    cfg.IAMRole.Name,
		RecordedARN: cfg.IAMRole.ARN,
	}
	err := async.Run(ctx, []async.Task{
		{Name: fmt.Sprintf("look up cluster %s", cfg.Cluster.Identifier), Func: func(ctx context.Context) error {
			return summary.fillCluster(ctx, cloud, cfg.Cluster.Identifier)
		}},
		{Name: fmt.Sprintf("look up role %s", cfg.IAMRole.Name), Func: func(ctx context.Context) error {
			return summary.fillRole(ctx, cloud, cfg.IAMRole.Name)
		}},
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Summary) fillCluster(ctx context.Context, cloud aws.ControlPlane, id string) error {
	cluster, err := cloud.GetCluster(ctx, id)
	if err != nil {
		return err
	}
	s.State = StateOf(cluster)
	if cluster == nil {
		return nil
	}
	s.NodeType = cluster.NodeType
	s.NodeCount = cluster.NodeCount
	s.Database = cluster.DBName
	s.MasterUser = cluster.MasterUsername
	s.Endpoint = cluster.Endpoint
	s.VPCID = cluster.VPCID
	return nil
}

func (s *Summary) fillRole(ctx context.Context, cloud aws.ControlPlane, name string) error {
	role, err := cloud.GetRole(ctx, name)
	if err != nil {
		return err
	}
	if role == nil {
		return nil
	}
	s.RoleARN = role.ARN
	arns, err := cloud.ListAttachedRolePolicies(ctx, name)
	if err != nil {
		return fmt.Errorf("list attached policies: %w", err)
	}
	for _, arn := range arns {
		if arn == ReadAccessPolicyARN {
			s.PolicyAttached = true
			break
		}
	}
	return nil
}
