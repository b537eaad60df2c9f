package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable wait budgets and poll intervals.
// These values can be customized via environment variables.
type Timeouts struct {
	RoleAvailable     time.Duration // Budget for the role to become readable
	PolicyAttached    time.Duration // Budget for the policy grant to be enumerable
	PolicyDetached    time.Duration // Budget for the policy grant to disappear on teardown
	ClusterAvailable  time.Duration // Budget for the cluster to reach available
	ClusterGone       time.Duration // Budget for the cluster to disappear on teardown
	SnapshotAvailable time.Duration // Budget for a pause snapshot to complete

	RolePoll     time.Duration // Interval between role and policy checks
	ClusterPoll  time.Duration // Interval between cluster state checks
	SnapshotPoll time.Duration // Interval between snapshot state checks
	DetachPoll   time.Duration // Interval between detach visibility checks

	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is
// used.
//
// Environment Variables:
//   - DWHCTL_TIMEOUT_ROLE_AVAILABLE (default: 1m)
//   - DWHCTL_TIMEOUT_POLICY_ATTACHED (default: 1m)
//   - DWHCTL_TIMEOUT_POLICY_DETACHED (default: 15m)
//   - DWHCTL_TIMEOUT_CLUSTER_AVAILABLE (default: 45m)
//   - DWHCTL_TIMEOUT_CLUSTER_GONE (default: 30m)
//   - DWHCTL_TIMEOUT_SNAPSHOT_AVAILABLE (default: 15m)
//   - DWHCTL_POLL_ROLE (default: 2s)
//   - DWHCTL_POLL_CLUSTER (default: 30s)
//   - DWHCTL_POLL_SNAPSHOT (default: 15s)
//   - DWHCTL_POLL_DETACH (default: 30s)
//   - DWHCTL_RETRY_MAX_ATTEMPTS (default: 5)
//   - DWHCTL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		RoleAvailable:     parseDuration("DWHCTL_TIMEOUT_ROLE_AVAILABLE", 1*time.Minute),
		PolicyAttached:    parseDuration("DWHCTL_TIMEOUT_POLICY_ATTACHED", 1*time.Minute),
		PolicyDetached:    parseDuration("DWHCTL_TIMEOUT_POLICY_DETACHED", 15*time.Minute),
		ClusterAvailable:  parseDuration("DWHCTL_TIMEOUT_CLUSTER_AVAILABLE", 45*time.Minute),
		ClusterGone:       parseDuration("DWHCTL_TIMEOUT_CLUSTER_GONE", 30*time.Minute),
		SnapshotAvailable: parseDuration("DWHCTL_TIMEOUT_SNAPSHOT_AVAILABLE", 15*time.Minute),
		RolePoll:          parseDuration("DWHCTL_POLL_ROLE", 2*time.Second),
		ClusterPoll:       parseDuration("DWHCTL_POLL_CLUSTER", 30*time.Second),
		SnapshotPoll:      parseDuration("DWHCTL_POLL_SNAPSHOT", 15*time.Second),
		DetachPoll:        parseDuration("DWHCTL_POLL_DETACH", 30*time.Second),
		RetryMaxAttempts:  parseInt("DWHCTL_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("DWHCTL_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is
// returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is
// returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
