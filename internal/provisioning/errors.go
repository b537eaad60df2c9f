package provisioning

import (
	"errors"
	"fmt"

	"github.com/imamik/dwhctl/internal/util/retry"
)

// Kind classifies a provisioning failure so callers can branch on it
// without inspecting provider error types.
type Kind string

const (
	// KindPreconditionFailed marks an operation refused before any
	// control-plane call because a required input was missing.
	KindPreconditionFailed Kind = "precondition_failed"

	// KindTimeout marks an operation that gave up waiting for a
	// control-plane transition.
	KindTimeout Kind = "timeout"

	// KindBackupRequired marks a pause rejected twice for a missing
	// recent backup even after taking a snapshot.
	KindBackupRequired Kind = "backup_required"

	// KindProvider marks any other control-plane failure.
	KindProvider Kind = "provider"
)

// OpError wraps a provisioning failure with the operation name and a
// failure kind.
type OpError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// KindOf classifies err. OpError wins over inference; poll timeouts map
// to KindTimeout; anything else is a provider failure.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	if retry.IsTimeout(err) {
		return KindTimeout
	}
	return KindProvider
}
