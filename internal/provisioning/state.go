package provisioning

import (
	"strings"

	"github.com/imamik/dwhctl/internal/platform/aws"
)

// ClusterState is the normalized lifecycle state of a cluster.
type ClusterState string

const (
	StateAbsent    ClusterState = "absent"
	StateCreating  ClusterState = "creating"
	StateAvailable ClusterState = "available"
	StatePausing   ClusterState = "pausing"
	StatePaused    ClusterState = "paused"
	StateResuming  ClusterState = "resuming"
	StateDeleting  ClusterState = "deleting"
	StateUnknown   ClusterState = "unknown"
)

// StateOf maps an observed cluster to its normalized state. A nil
// cluster means the control plane does not know the identifier.
func StateOf(c *aws.Cluster) ClusterState {
	if c == nil {
		return StateAbsent
	}
	switch strings.ToLower(c.Status) {
	case "creating":
		return StateCreating
	case "available":
		return StateAvailable
	case "pausing":
		return StatePausing
	case "paused":
		return StatePaused
	case "resuming":
		return StateResuming
	case "deleting", "final-snapshot":
		return StateDeleting
	default:
		return StateUnknown
	}
}
