package handlers

import (
	"fmt"
	"strings"

	"github.com/imamik/dwhctl/internal/provisioning"
)

// renderStatusSummary produces a lipgloss-styled status summary string.
func renderStatusSummary(summary *provisioning.Summary) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderTitleStyle.Render(fmt.Sprintf("  dwhctl status: %s", summary.ClusterID)))
	b.WriteString("\n")
	b.WriteString(renderDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(renderSectionStyle.Render("  Cluster"))
	b.WriteString("\n")
	b.WriteString(renderDimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    %-12s %s\n", "State", renderState(summary.State))
	if summary.NodeType != "" {
		fmt.Fprintf(&b, "    %-12s %d x %s\n", "Nodes", summary.NodeCount, summary.NodeType)
	}
	if summary.Database != "" {
		fmt.Fprintf(&b, "    %-12s %s (user %s)\n", "Database", summary.Database, summary.MasterUser)
	}
	if summary.Endpoint != nil {
		fmt.Fprintf(&b, "    %-12s %s:%d\n", "Endpoint", summary.Endpoint.Address, summary.Endpoint.Port)
	}
	if summary.VPCID != "" {
		fmt.Fprintf(&b, "    %-12s %s\n", "VPC", summary.VPCID)
	}

	b.WriteString("\n")
	b.WriteString(renderSectionStyle.Render("  Access Role"))
	b.WriteString("\n")
	b.WriteString(renderDimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    %-12s %s\n", "Name", summary.RoleName)
	if summary.RoleARN != "" {
		fmt.Fprintf(&b, "    %-12s %s\n", "ARN", summary.RoleARN)
	} else {
		fmt.Fprintf(&b, "    %-12s %s\n", "ARN", renderRedStyle.Render("absent"))
	}
	grant := renderRedStyle.Render("not attached")
	if summary.PolicyAttached {
		grant = renderGreenStyle.Render("attached")
	}
	fmt.Fprintf(&b, "    %-12s %s\n", "S3 read", grant)
	if summary.RecordedARN != "" && summary.RecordedARN != summary.RoleARN {
		fmt.Fprintf(&b, "    %-12s %s\n", "Recorded", renderYellowStyle.Render(summary.RecordedARN+" (stale)"))
	}

	b.WriteString("\n")
	return b.String()
}

// renderState colors the lifecycle state.
func renderState(state provisioning.ClusterState) string {
	switch state {
	case provisioning.StateAvailable:
		return renderGreenStyle.Render(string(state))
	case provisioning.StateCreating, provisioning.StatePausing,
		provisioning.StatePaused, provisioning.StateResuming:
		return renderYellowStyle.Render(string(state))
	case provisioning.StateAbsent, provisioning.StateDeleting:
		return renderRedStyle.Render(string(state))
	default:
		return renderDimStyle.Render(string(state))
	}
}
