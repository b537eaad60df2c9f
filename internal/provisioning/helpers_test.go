package provisioning

import (
	"fmt"
	"sync"
	"time"

	"github.com/imamik/dwhctl/internal/config"
)

// recordingObserver captures events and log lines without printing.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
	lines  []string
}

func (o *recordingObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, fmt.Sprintf(format, v...))
}

func (o *recordingObserver) Event(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) Progress(phase string, current, total int) {}

func (o *recordingObserver) eventTypes() []EventType {
	o.mu.Lock()
	defer o.mu.Unlock()
	types := make([]EventType, len(o.events))
	for i, e := range o.events {
		types[i] = e.Type
	}
	return types
}

func (o *recordingObserver) hasEvent(t EventType) bool {
	for _, et := range o.eventTypes() {
		if et == t {
			return true
		}
	}
	return false
}

// memStore records write-backs in memory.
type memStore struct {
	arn     string
	host    string
	arnErr  error
	hostErr error
}

func (s *memStore) SaveRoleARN(arn string) error {
	if s.arnErr != nil {
		return s.arnErr
	}
	s.arn = arn
	return nil
}

func (s *memStore) SaveClusterHost(host string) error {
	if s.hostErr != nil {
		return s.hostErr
	}
	s.host = host
	return nil
}

// testTimeouts returns budgets small enough for fast unit tests.
func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		RoleAvailable:     500 * time.Millisecond,
		PolicyAttached:    500 * time.Millisecond,
		PolicyDetached:    200 * time.Millisecond,
		ClusterAvailable:  500 * time.Millisecond,
		ClusterGone:       500 * time.Millisecond,
		SnapshotAvailable: 500 * time.Millisecond,
		RolePoll:          5 * time.Millisecond,
		ClusterPoll:       5 * time.Millisecond,
		SnapshotPoll:      5 * time.Millisecond,
		DetachPoll:        5 * time.Millisecond,
		RetryMaxAttempts:  2,
		RetryInitialDelay: time.Millisecond,
	}
}

// testConfig returns a minimal valid configuration for lifecycle tests.
func testConfig() *config.Config {
	return &config.Config{
		AWS: config.AWS{Region: "us-west-2"},
		Cluster: config.Cluster{
			Identifier: "dwh-cluster",
			NodeType:   "dc2.large",
			NodeCount:  4,
		},
		Database: config.Database{
			Name:     "dwh",
			User:     "dwhuser",
			Password: "Passw0rd",
			Port:     5439,
		},
		IAMRole: config.IAMRole{Name: "dwh-role"},
	}
}
