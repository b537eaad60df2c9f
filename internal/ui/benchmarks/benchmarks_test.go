package benchmarks

import (
	"testing"
	"time"
)

func TestEstimateRemaining_NoHistory(t *testing.T) {
	// At identity phase, 10s elapsed, nothing completed
	remaining := EstimateRemaining(ProvisionOrder, "identity", 10*time.Second, nil)

	// Should be: (35-10) + 300 + 5 + 10 = 340s
	expected := 340 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_MidwayPhase(t *testing.T) {
	// At warehouse phase, 60s elapsed, identity took 3x its estimate
	completed := map[string]time.Duration{
		"identity": 105 * time.Second,
	}

	remaining := EstimateRemaining(ProvisionOrder, "warehouse", 60*time.Second, completed)

	// Scale is 105/35 = 3x:
	// (300*3 - 60) + 5*3 + 10*3 = 885s
	expected := 885 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_ElapsedExceedsExpected(t *testing.T) {
	// At identity phase, but already spent 70s (over the 35s estimate)
	remaining := EstimateRemaining(ProvisionOrder, "identity", 70*time.Second, nil)

	// Overrun scales future predictions: 70s/35s = 2x
	// Should be: max(0, 35*2-70)=0 + (300 + 5 + 10) * 2 = 630s
	expected := 630 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_LastPhase(t *testing.T) {
	// At ingress phase, 4s elapsed
	remaining := EstimateRemaining(ProvisionOrder, "ingress", 4*time.Second, nil)

	// Should be: max(0, 10-4) = 6s (no future phases)
	expected := 6 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_UnknownPhase(t *testing.T) {
	remaining := EstimateRemaining(ProvisionOrder, "unknown", 0, nil)
	if remaining != 0 {
		t.Errorf("expected 0 for unknown phase, got %v", remaining)
	}
}

func TestEstimateRemaining_Teardown(t *testing.T) {
	remaining := EstimateRemaining(TeardownOrder, "teardown:warehouse", 60*time.Second, nil)

	// Should be: (180-60) + 20 = 140s
	expected := 140 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestPerformanceScale(t *testing.T) {
	completed := map[string]time.Duration{
		"endpoint": 10 * time.Second,
	}

	scale := PerformanceScale("ingress", 0, completed)
	if scale < 1.99 || scale > 2.01 {
		t.Fatalf("expected ~2.0 scale, got %f", scale)
	}
}

func TestPerformanceScale_Clamped(t *testing.T) {
	slow := map[string]time.Duration{
		"endpoint": 60 * time.Second,
	}
	if scale := PerformanceScale("ingress", 0, slow); scale != 3.0 {
		t.Errorf("expected slow scale clamped to 3.0, got %f", scale)
	}

	fast := map[string]time.Duration{
		"warehouse": 90 * time.Second,
	}
	if scale := PerformanceScale("endpoint", 0, fast); scale != 0.6 {
		t.Errorf("expected fast scale clamped to 0.6, got %f", scale)
	}
}

func TestPerformanceScale_NoData(t *testing.T) {
	if scale := PerformanceScale("identity", 0, nil); scale != 1.0 {
		t.Errorf("expected neutral scale, got %f", scale)
	}
}

func TestExpectedDuration(t *testing.T) {
	d, ok := ExpectedDuration("warehouse")
	if !ok || d != 300*time.Second {
		t.Fatalf("expected warehouse default 300s, got %v (ok=%v)", d, ok)
	}
	_, ok = ExpectedDuration("unknown")
	if ok {
		t.Fatal("expected unknown phase duration to be absent")
	}
}

func TestTotalEstimate(t *testing.T) {
	total := TotalEstimate(ProvisionOrder)

	// Sum of all phase timings: 35 + 300 + 5 + 10 = 350s
	expected := 350 * time.Second
	if total != expected {
		t.Errorf("expected %v, got %v", expected, total)
	}

	if teardown := TotalEstimate(TeardownOrder); teardown != 200*time.Second {
		t.Errorf("expected teardown total 200s, got %v", teardown)
	}
}
