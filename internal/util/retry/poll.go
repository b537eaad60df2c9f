package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ConditionFunc reports whether the awaited state has been reached.
// Returning an error aborts the poll immediately.
type ConditionFunc func(ctx context.Context) (bool, error)

// TimeoutError reports that a polled condition did not hold within its budget.
type TimeoutError struct {
	Op      string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: condition not met after %s", e.Op, e.Elapsed.Round(time.Second))
}

// IsTimeout checks if an error is (or wraps) a poll timeout.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// Poll evaluates cond every interval until it holds, the timeout budget is
// spent, or ctx is cancelled. The first evaluation happens immediately.
// A condition error ends the poll and is returned as-is.
func Poll(ctx context.Context, op string, interval, timeout time.Duration, cond ConditionFunc) error {
	start := time.Now()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done, err := cond(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-deadline.C:
			return &TimeoutError{Op: op, Elapsed: time.Since(start)}
		case <-ticker.C:
		}
	}
}
