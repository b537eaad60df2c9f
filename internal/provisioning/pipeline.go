package provisioning

import (
	"fmt"
	"time"
)

// Phase is a single step of an orchestration run.
type Phase interface {
	// Name returns the phase name used in logs and events.
	Name() string

	// Provision executes the phase.
	Provision(ctx *Context) error
}

// RunPhases executes phases in order, aborting on the first failure.
// There is no rollback: resources created by earlier phases are left in
// place for a later retry or an explicit teardown.
func RunPhases(ctx *Context, phases []Phase) error {
	total := len(phases)
	for i, phase := range phases {
		name := phase.Name()
		ctx.Observer.Printf("[%s (%d/%d)] starting", name, i+1, total)
		LogPhaseStart(ctx.Observer, name)
		ctx.Observer.Progress(name, i+1, total)

		start := time.Now()
		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			ctx.Observer.Printf("[%s (%d/%d)] failed: %v", name, i+1, total, err)
			return fmt.Errorf("%s phase failed: %w", name, err)
		}

		elapsed := time.Since(start)
		LogPhaseComplete(ctx.Observer, name, elapsed)
		ctx.Observer.Printf("[%s (%d/%d)] completed in %s", name, i+1, total, elapsed.Round(time.Second))
	}
	return nil
}
