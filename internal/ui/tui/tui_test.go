package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/dwhctl/internal/provisioning"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
		{3600 * time.Second, "1h0m"},
		{3661 * time.Second, "1h1m"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		msg  StatusMsg
		want string
	}{
		{StatusMsg{}, ""},
		{StatusMsg{Status: "creating"}, "creating"},
		{StatusMsg{Resource: "dwh-cluster", Status: "creating"}, "dwh-cluster: creating"},
		{StatusMsg{Resource: "dwh-cluster", Status: "creating", Elapsed: 90 * time.Second}, "dwh-cluster: creating (1m30s)"},
	}
	for _, tt := range tests {
		got := formatStatus(tt.msg)
		if got != tt.want {
			t.Errorf("formatStatus(%+v) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestCalculateProgress_Done(t *testing.T) {
	m := Model{Done: true}
	p := calculateProgress(m)
	if p != 1.0 {
		t.Errorf("expected 1.0, got %v", p)
	}
}

func TestCalculateProgress_WeightedPhases(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")
	// identity (35s) and warehouse (300s) of 350s total are done
	m.Phases[0].Done = true
	m.Phases[1].Done = true

	p := calculateProgress(m)
	expected := 335.0 / 350.0
	if p < expected-0.01 || p > expected+0.01 {
		t.Errorf("expected ~%v, got %v", expected, p)
	}
}

func TestModelUpdatePhase(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")

	// Start identity phase
	m.updatePhase(PhaseMsg{Phase: "identity"})
	if !m.Phases[0].Active {
		t.Error("expected identity phase to be active")
	}

	// Complete identity phase
	m.updatePhase(PhaseMsg{Phase: "identity", Done: true})
	if !m.Phases[0].Done {
		t.Error("expected identity phase to be done")
	}
	if m.Phases[0].Active {
		t.Error("expected identity phase to not be active after done")
	}
	if _, ok := m.completed["identity"]; !ok {
		t.Error("expected identity duration to be recorded")
	}

	// Start warehouse
	m.updatePhase(PhaseMsg{Phase: "warehouse"})
	if !m.Phases[1].Active {
		t.Error("expected warehouse to be active")
	}
}

func TestModelUpdatePhase_MarksPreviousDone(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")

	m.updatePhase(PhaseMsg{Phase: "endpoint"})
	if !m.Phases[0].Done || !m.Phases[1].Done {
		t.Error("expected earlier phases to be marked done")
	}
	if !m.Phases[2].Active {
		t.Error("expected endpoint to be active")
	}
}

func TestModelUpdatePhase_Error(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")

	m.updatePhase(PhaseMsg{Phase: "warehouse", Err: errors.New("boom")})
	if m.Phases[1].Err == nil {
		t.Error("expected warehouse phase error to be set")
	}
}

func TestModelUpdatePhase_UnknownKey(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")

	m.updatePhase(PhaseMsg{Phase: "nonsense"})
	for i, phase := range m.Phases {
		if phase.Active || phase.Done {
			t.Errorf("expected phase %d untouched", i)
		}
	}
}

func TestModelRecord(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")

	m.record(RecordedMsg{Key: "role_arn", Value: "arn:aws:iam::123456789012:role/dwh-role"})
	m.record(RecordedMsg{Key: "host", Value: "dwh.example.com"})
	m.record(RecordedMsg{Key: "host", Value: "dwh2.example.com"})

	if len(m.Recorded) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(m.Recorded))
	}
	if m.Recorded[1].Value != "dwh2.example.com" {
		t.Errorf("expected host to be updated, got %q", m.Recorded[1].Value)
	}
}

func TestBenchmarkKey(t *testing.T) {
	provision := NewProvisionModel("dwh-cluster", "us-west-2")
	if got := provision.benchmarkKey("warehouse"); got != "warehouse" {
		t.Errorf("provision key = %q, want %q", got, "warehouse")
	}

	destroy := NewDestroyModel("dwh-cluster", "us-west-2")
	if got := destroy.benchmarkKey("warehouse"); got != "teardown:warehouse" {
		t.Errorf("destroy key = %q, want %q", got, "teardown:warehouse")
	}
}

func TestModelUpdate_QuitOnError(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")

	updated, cmd := m.Update(ErrMsg{Err: errors.New("boom")})
	if updated.(Model).Err == nil {
		t.Error("expected model error to be set")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModelUpdate_Done(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")

	updated, cmd := m.Update(DoneMsg{})
	if !updated.(Model).Done {
		t.Error("expected model to be done")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestRenderView_Provision(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")
	m.updatePhase(PhaseMsg{Phase: "identity", Done: true})
	m.updatePhase(PhaseMsg{Phase: "warehouse"})
	m.LastStatus = "dwh-cluster: creating (30s)"
	m.record(RecordedMsg{Key: "role_arn", Value: "arn:aws:iam::123456789012:role/dwh-role"})

	out := renderView(m)

	for _, want := range []string{
		"dwhctl: dwh-cluster",
		"(us-west-2)",
		"Access Role",
		"Warehouse Cluster",
		checkMark,
		"dwh-cluster: creating (30s)",
		"Recorded",
		"role_arn",
		"q: quit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q\n%s", want, out)
		}
	}
}

func TestRenderView_Error(t *testing.T) {
	m := NewProvisionModel("dwh-cluster", "us-west-2")
	m.Err = errors.New("role ARN is empty")

	out := renderView(m)
	if !strings.Contains(out, "Error: role ARN is empty") {
		t.Errorf("expected view to contain error\n%s", out)
	}
}

func TestRenderView_Destroy(t *testing.T) {
	m := NewDestroyModel("dwh-cluster", "us-west-2")
	m.Done = true

	out := renderView(m)
	if !strings.Contains(out, "Destroyed") {
		t.Errorf("expected view to contain Destroyed\n%s", out)
	}
	if !strings.Contains(out, "Teardown") {
		t.Errorf("expected view to contain Teardown section\n%s", out)
	}
}

type fakeSender struct {
	msgs []tea.Msg
}

func (f *fakeSender) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestProgramObserverEvents(t *testing.T) {
	sender := &fakeSender{}
	observer := &ProgramObserver{program: sender}

	provisioning.LogPhaseStart(observer, "identity")
	provisioning.LogPhaseComplete(observer, "identity", 3*time.Second)
	provisioning.LogWaiting(observer, "warehouse", "dwh-cluster", "creating", 42*time.Second)
	provisioning.LogRecorded(observer, "endpoint", "host", "dwh.example.com")
	provisioning.LogPhaseFailed(observer, "warehouse", errors.New("boom"))

	if len(sender.msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(sender.msgs))
	}

	if msg, ok := sender.msgs[0].(PhaseMsg); !ok || msg.Phase != "identity" || msg.Done {
		t.Errorf("unexpected start message %+v", sender.msgs[0])
	}
	if msg, ok := sender.msgs[1].(PhaseMsg); !ok || !msg.Done {
		t.Errorf("unexpected completion message %+v", sender.msgs[1])
	}
	status, ok := sender.msgs[2].(StatusMsg)
	if !ok || status.Resource != "dwh-cluster" || status.Status != "creating" || status.Elapsed != 42*time.Second {
		t.Errorf("unexpected status message %+v", sender.msgs[2])
	}
	recorded, ok := sender.msgs[3].(RecordedMsg)
	if !ok || recorded.Key != "host" || recorded.Value != "dwh.example.com" {
		t.Errorf("unexpected recorded message %+v", sender.msgs[3])
	}
	failed, ok := sender.msgs[4].(PhaseMsg)
	if !ok || failed.Err == nil || failed.Err.Error() != "boom" {
		t.Errorf("unexpected failure message %+v", sender.msgs[4])
	}
}

func TestProgramObserverResourceEvents(t *testing.T) {
	sender := &fakeSender{}
	observer := &ProgramObserver{program: sender}

	provisioning.LogResourceCreating(observer, "warehouse", "dwh-cluster")

	if len(sender.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.msgs))
	}
	status, ok := sender.msgs[0].(StatusMsg)
	if !ok || status.Resource != "dwh-cluster" || status.Status != "creating" {
		t.Errorf("unexpected message %+v", sender.msgs[0])
	}
}
