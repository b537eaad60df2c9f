package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	redshifttypes "github.com/aws/aws-sdk-go-v2/service/redshift/types"
)

// ClientOptions holds the connection settings for the control plane.
// When AccessKeyID and SecretAccessKey are empty the ambient SDK
// credential chain is used.
type ClientOptions struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// RealClient implements ControlPlane against the live AWS APIs.
type RealClient struct {
	iam      *iam.Client
	redshift *redshift.Client
	ec2      *ec2.Client
}

var _ ControlPlane = (*RealClient)(nil)

// NewRealClient creates a control-plane client for the given region.
func NewRealClient(ctx context.Context, opts ClientOptions) (*RealClient, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &RealClient{
		iam:      iam.NewFromConfig(cfg),
		redshift: redshift.NewFromConfig(cfg),
		ec2:      ec2.NewFromConfig(cfg),
	}, nil
}

// CreateRole creates the data-access role and returns its ARN.
func (c *RealClient) CreateRole(ctx context.Context, name, trustPolicy, description string) (string, error) {
	out, err := c.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(trustPolicy),
		Description:              aws.String(description),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create role %s: %w", name, err)
	}
	return aws.ToString(out.Role.Arn), nil
}

// GetRole returns the role by name, or nil if it does not exist.
func (c *RealClient) GetRole(ctx context.Context, name string) (*Role, error) {
	out, err := c.iam.GetRole(ctx, &iam.GetRoleInput{
		RoleName: aws.String(name),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role %s: %w", name, err)
	}
	return roleFromAPI(out.Role), nil
}

// AttachRolePolicy attaches a managed policy to the role.
func (c *RealClient) AttachRolePolicy(ctx context.Context, roleName, policyARN string) error {
	_, err := c.iam.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to attach policy to role %s: %w", roleName, err)
	}
	return nil
}

// DetachRolePolicy detaches a managed policy from the role.
func (c *RealClient) DetachRolePolicy(ctx context.Context, roleName, policyARN string) error {
	_, err := c.iam.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to detach policy from role %s: %w", roleName, err)
	}
	return nil
}

// ListAttachedRolePolicies returns the ARNs of all managed policies
// attached to the role.
func (c *RealClient) ListAttachedRolePolicies(ctx context.Context, roleName string) ([]string, error) {
	out, err := c.iam.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list policies for role %s: %w", roleName, err)
	}

	arns := make([]string, 0, len(out.AttachedPolicies))
	for _, p := range out.AttachedPolicies {
		arns = append(arns, aws.ToString(p.PolicyArn))
	}
	return arns, nil
}

// DeleteRole deletes the role. Attached policies must be detached
// first.
func (c *RealClient) DeleteRole(ctx context.Context, name string) error {
	_, err := c.iam.DeleteRole(ctx, &iam.DeleteRoleInput{
		RoleName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete role %s: %w", name, err)
	}
	return nil
}

// CreateCluster creates the warehouse cluster.
func (c *RealClient) CreateCluster(ctx context.Context, opts ClusterCreateOpts) (*Cluster, error) {
	input := &redshift.CreateClusterInput{
		ClusterIdentifier:  aws.String(opts.ID),
		NodeType:           aws.String(opts.NodeType),
		DBName:             aws.String(opts.DBName),
		MasterUsername:     aws.String(opts.MasterUsername),
		MasterUserPassword: aws.String(opts.MasterPassword),
		Port:               aws.Int32(int32(opts.Port)),
		IamRoles:           opts.RoleARNs,
		PubliclyAccessible: aws.Bool(true),
	}
	if opts.NodeCount > 1 {
		input.ClusterType = aws.String("multi-node")
		input.NumberOfNodes = aws.Int32(int32(opts.NodeCount))
	} else {
		input.ClusterType = aws.String("single-node")
	}

	out, err := c.redshift.CreateCluster(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster %s: %w", opts.ID, err)
	}
	return clusterFromAPI(out.Cluster), nil
}

// GetCluster returns the cluster by identifier, or nil if it does not
// exist.
func (c *RealClient) GetCluster(ctx context.Context, id string) (*Cluster, error) {
	out, err := c.redshift.DescribeClusters(ctx, &redshift.DescribeClustersInput{
		ClusterIdentifier: aws.String(id),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe cluster %s: %w", id, err)
	}
	if len(out.Clusters) == 0 {
		return nil, nil
	}
	return clusterFromAPI(&out.Clusters[0]), nil
}

// PauseCluster requests a pause of the cluster.
func (c *RealClient) PauseCluster(ctx context.Context, id string) error {
	_, err := c.redshift.PauseCluster(ctx, &redshift.PauseClusterInput{
		ClusterIdentifier: aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to pause cluster %s: %w", id, err)
	}
	return nil
}

// ResumeCluster requests a resume of a paused cluster.
func (c *RealClient) ResumeCluster(ctx context.Context, id string) error {
	_, err := c.redshift.ResumeCluster(ctx, &redshift.ResumeClusterInput{
		ClusterIdentifier: aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to resume cluster %s: %w", id, err)
	}
	return nil
}

// DeleteCluster deletes the cluster without taking a final snapshot.
func (c *RealClient) DeleteCluster(ctx context.Context, id string) error {
	_, err := c.redshift.DeleteCluster(ctx, &redshift.DeleteClusterInput{
		ClusterIdentifier:        aws.String(id),
		SkipFinalClusterSnapshot: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete cluster %s: %w", id, err)
	}
	return nil
}

// CreateSnapshot creates a manual snapshot of the cluster.
func (c *RealClient) CreateSnapshot(ctx context.Context, snapshotID, clusterID string) (*Snapshot, error) {
	out, err := c.redshift.CreateClusterSnapshot(ctx, &redshift.CreateClusterSnapshotInput{
		SnapshotIdentifier: aws.String(snapshotID),
		ClusterIdentifier:  aws.String(clusterID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot %s: %w", snapshotID, err)
	}
	return snapshotFromAPI(out.Snapshot), nil
}

// GetSnapshot returns the snapshot by identifier, or nil if it does
// not exist.
func (c *RealClient) GetSnapshot(ctx context.Context, snapshotID, clusterID string) (*Snapshot, error) {
	out, err := c.redshift.DescribeClusterSnapshots(ctx, &redshift.DescribeClusterSnapshotsInput{
		SnapshotIdentifier: aws.String(snapshotID),
		ClusterIdentifier:  aws.String(clusterID),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe snapshot %s: %w", snapshotID, err)
	}
	if len(out.Snapshots) == 0 {
		return nil, nil
	}
	return snapshotFromAPI(&out.Snapshots[0]), nil
}

// OpenIngress authorizes inbound TCP on the given port from anywhere
// on the default security group of the VPC.
func (c *RealClient) OpenIngress(ctx context.Context, vpcID string, port int32) error {
	groups, err := c.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			{Name: aws.String("group-name"), Values: []string{"default"}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to find default security group for VPC %s: %w", vpcID, err)
	}
	if len(groups.SecurityGroups) == 0 {
		return fmt.Errorf("no default security group in VPC %s", vpcID)
	}

	groupID := aws.ToString(groups.SecurityGroups[0].GroupId)
	_, err = c.ec2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId: aws.String(groupID),
		IpPermissions: []ec2types.IpPermission{
			{
				IpProtocol: aws.String("tcp"),
				FromPort:   aws.Int32(port),
				ToPort:     aws.Int32(port),
				IpRanges: []ec2types.IpRange{
					{CidrIp: aws.String("0.0.0.0/0"), Description: aws.String("warehouse ingress")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to authorize ingress on %s: %w", groupID, err)
	}
	return nil
}

func roleFromAPI(r *iamtypes.Role) *Role {
	if r == nil {
		return nil
	}
	return &Role{
		Name: aws.ToString(r.RoleName),
		ARN:  aws.ToString(r.Arn),
	}
}

func clusterFromAPI(c *redshifttypes.Cluster) *Cluster {
	if c == nil {
		return nil
	}

	cluster := &Cluster{
		ID:                 aws.ToString(c.ClusterIdentifier),
		Status:             aws.ToString(c.ClusterStatus),
		NodeType:           aws.ToString(c.NodeType),
		NodeCount:          aws.ToInt32(c.NumberOfNodes),
		DBName:             aws.ToString(c.DBName),
		MasterUsername:     aws.ToString(c.MasterUsername),
		VPCID:              aws.ToString(c.VpcId),
		PubliclyAccessible: aws.ToBool(c.PubliclyAccessible),
	}
	for _, role := range c.IamRoles {
		cluster.RoleARNs = append(cluster.RoleARNs, aws.ToString(role.IamRoleArn))
	}
	if c.Endpoint != nil {
		cluster.Endpoint = &Endpoint{
			Address: aws.ToString(c.Endpoint.Address),
			Port:    aws.ToInt32(c.Endpoint.Port),
		}
	}
	return cluster
}

func snapshotFromAPI(s *redshifttypes.Snapshot) *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		ID:        aws.ToString(s.SnapshotIdentifier),
		ClusterID: aws.ToString(s.ClusterIdentifier),
		Status:    aws.ToString(s.Status),
	}
}
