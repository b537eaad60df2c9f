package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imamik/dwhctl/internal/provisioning"
)

// buildSummary collects resource state (for testing injection).
var buildSummary = provisioning.BuildSummary

// StatusReport is the JSON shape of the status output.
type StatusReport struct {
	ClusterID      string `json:"cluster_id"`
	State          string `json:"state"`
	NodeType       string `json:"node_type,omitempty"`
	NodeCount      int32  `json:"node_count,omitempty"`
	Database       string `json:"database,omitempty"`
	MasterUser     string `json:"master_user,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"`
	VPCID          string `json:"vpc_id,omitempty"`
	RoleName       string `json:"role_name"`
	RoleARN        string `json:"role_arn,omitempty"`
	RecordedARN    string `json:"recorded_arn,omitempty"`
	PolicyAttached bool   `json:"policy_attached"`
}

// Status reports the current state of the warehouse resources without
// changing anything.
func Status(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	cloud, err := newControlPlane(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	summary, err := buildSummary(ctx, cloud, cfg)
	if err != nil {
		return fmt.Errorf("failed to collect status: %w", err)
	}

	if jsonOutput {
		return printStatusJSON(summary)
	}
	if isInteractiveTTY() {
		fmt.Print(renderStatusSummary(summary))
		return nil
	}
	printStatusPlain(summary)
	return nil
}

// reportFrom projects the summary into the JSON shape.
func reportFrom(summary *provisioning.Summary) StatusReport {
	report := StatusReport{
		ClusterID:      summary.ClusterID,
		State:          string(summary.State),
		NodeType:       summary.NodeType,
		NodeCount:      summary.NodeCount,
		Database:       summary.Database,
		MasterUser:     summary.MasterUser,
		VPCID:          summary.VPCID,
		RoleName:       summary.RoleName,
		RoleARN:        summary.RoleARN,
		RecordedARN:    summary.RecordedARN,
		PolicyAttached: summary.PolicyAttached,
	}
	if summary.Endpoint != nil {
		report.Endpoint = fmt.Sprintf("%s:%d", summary.Endpoint.Address, summary.Endpoint.Port)
	}
	return report
}

// printStatusJSON prints the machine-readable status.
func printStatusJSON(summary *provisioning.Summary) error {
	data, err := json.MarshalIndent(reportFrom(summary), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printStatusPlain prints unstyled key-value lines for pipes.
func printStatusPlain(summary *provisioning.Summary) {
	report := reportFrom(summary)
	fmt.Printf("cluster: %s\n", report.ClusterID)
	fmt.Printf("state: %s\n", report.State)
	if report.NodeType != "" {
		fmt.Printf("nodes: %d x %s\n", report.NodeCount, report.NodeType)
	}
	if report.Database != "" {
		fmt.Printf("database: %s (user %s)\n", report.Database, report.MasterUser)
	}
	if report.Endpoint != "" {
		fmt.Printf("endpoint: %s\n", report.Endpoint)
	}
	if report.VPCID != "" {
		fmt.Printf("vpc: %s\n", report.VPCID)
	}
	fmt.Printf("role: %s\n", report.RoleName)
	if report.RoleARN != "" {
		fmt.Printf("role arn: %s\n", report.RoleARN)
	}
	fmt.Printf("s3 read grant: %t\n", report.PolicyAttached)
	if report.RecordedARN != "" && report.RecordedARN != report.RoleARN {
		fmt.Printf("recorded arn (stale): %s\n", report.RecordedARN)
	}
}
