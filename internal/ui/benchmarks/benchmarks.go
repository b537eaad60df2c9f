// Package benchmarks provides timing estimates for warehouse provisioning phases.
package benchmarks

import "time"

// DefaultTimings are median phase durations from provisioning runs (seconds).
var DefaultTimings = map[string]int{
	"identity":  35,
	"warehouse": 300,
	"endpoint":  5,
	"ingress":   10,

	"teardown:warehouse": 180,
	"teardown:identity":  20,
}

// ProvisionOrder defines the sequence of provisioning phases for ETA calculation.
var ProvisionOrder = []string{
	"identity",
	"warehouse",
	"endpoint",
	"ingress",
}

// TeardownOrder defines the sequence of teardown phases for ETA calculation.
var TeardownOrder = []string{
	"teardown:warehouse",
	"teardown:identity",
}

// EstimateRemaining calculates the estimated time remaining based on the
// current phase, its elapsed time, and the durations of completed phases.
func EstimateRemaining(order []string, currentPhase string, phaseElapsed time.Duration, completed map[string]time.Duration) time.Duration {
	return EstimateRemainingWithScale(order, currentPhase, phaseElapsed, completed, PerformanceScale(currentPhase, phaseElapsed, completed))
}

// EstimateRemainingWithScale calculates ETA while applying a performance scale factor.
func EstimateRemainingWithScale(
	order []string,
	currentPhase string,
	phaseElapsed time.Duration,
	completed map[string]time.Duration,
	scale float64,
) time.Duration {
	var remaining time.Duration

	// Find the index of the current phase
	currentIdx := -1
	for i, p := range order {
		if p == currentPhase {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return 0
	}

	// For the current phase: max(0, expected - elapsed)
	if expected, ok := DefaultTimings[currentPhase]; ok {
		expectedDur := time.Duration(expected) * time.Second
		expectedDur = time.Duration(float64(expectedDur) * scale)
		if expectedDur > phaseElapsed {
			remaining += expectedDur - phaseElapsed
		}
	}

	// For future phases: use DefaultTimings unless already completed
	for i := currentIdx + 1; i < len(order); i++ {
		phase := order[i]
		if _, done := completed[phase]; done {
			continue
		}
		if expected, ok := DefaultTimings[phase]; ok {
			expectedDur := time.Duration(expected) * time.Second
			remaining += time.Duration(float64(expectedDur) * scale)
		}
	}

	return remaining
}

// PerformanceScale derives a speed multiplier from observed-vs-expected durations.
// Example: expected 3m, observed 4m30s => scale=1.5 (future ETAs are stretched by 50%).
func PerformanceScale(currentPhase string, phaseElapsed time.Duration, completed map[string]time.Duration) float64 {
	var expectedTotal time.Duration
	var actualTotal time.Duration

	for phase, actual := range completed {
		expectedSecs, ok := DefaultTimings[phase]
		if !ok {
			continue
		}
		expectedTotal += time.Duration(expectedSecs) * time.Second
		actualTotal += actual
	}

	// If current phase is overrunning, fold it in immediately so ETA adapts quickly.
	if expectedSecs, ok := DefaultTimings[currentPhase]; ok && phaseElapsed > 0 {
		expectedCurrent := time.Duration(expectedSecs) * time.Second
		if phaseElapsed > expectedCurrent {
			expectedTotal += expectedCurrent
			actualTotal += phaseElapsed
		}
	}

	if expectedTotal == 0 || actualTotal == 0 {
		return 1.0
	}

	scale := float64(actualTotal) / float64(expectedTotal)
	if scale < 0.6 {
		return 0.6
	}
	if scale > 3.0 {
		return 3.0
	}
	return scale
}

// ExpectedDuration returns the benchmark duration for a phase.
func ExpectedDuration(phase string) (time.Duration, bool) {
	secs, ok := DefaultTimings[phase]
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// TotalEstimate returns the total estimated duration for a phase sequence.
func TotalEstimate(order []string) time.Duration {
	var total time.Duration
	for _, phase := range order {
		if secs, ok := DefaultTimings[phase]; ok {
			total += time.Duration(secs) * time.Second
		}
	}
	return total
}
