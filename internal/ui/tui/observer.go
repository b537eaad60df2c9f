package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/dwhctl/internal/provisioning"
)

// sender is the subset of tea.Program needed to deliver messages.
type sender interface {
	Send(tea.Msg)
}

// ProgramObserver forwards provisioning events to a running Bubble Tea program.
type ProgramObserver struct {
	program sender
}

// NewProgramObserver creates an observer that sends events to p.
func NewProgramObserver(p *tea.Program) *ProgramObserver {
	return &ProgramObserver{program: p}
}

// Printf drops plain log lines; the dashboard renders structured events only.
func (o *ProgramObserver) Printf(string, ...interface{}) {}

// Progress is a no-op; phase events already carry ordering.
func (o *ProgramObserver) Progress(string, int, int) {}

// Event translates a provisioning event into a Bubble Tea message.
func (o *ProgramObserver) Event(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventPhaseStarted:
		o.program.Send(PhaseMsg{Phase: event.Phase})

	case provisioning.EventPhaseCompleted:
		o.program.Send(PhaseMsg{Phase: event.Phase, Done: true})

	case provisioning.EventPhaseFailed:
		o.program.Send(PhaseMsg{Phase: event.Phase, Err: eventError(event)})

	case provisioning.EventWaiting:
		msg := StatusMsg{Phase: event.Phase, Resource: event.Resource}
		if status, ok := event.Fields["status"].(string); ok {
			msg.Status = status
		}
		if elapsed, ok := event.Fields["elapsed"].(time.Duration); ok {
			msg.Elapsed = elapsed
		}
		o.program.Send(msg)

	case provisioning.EventRecorded:
		value, _ := event.Fields[event.Resource].(string)
		o.program.Send(RecordedMsg{Key: event.Resource, Value: value})

	default:
		o.program.Send(StatusMsg{
			Phase:    event.Phase,
			Resource: event.Resource,
			Status:   event.Message,
		})
	}
}

func eventError(event provisioning.Event) error {
	if err, ok := event.Fields["error"].(error); ok {
		return err
	}
	return errors.New(event.Message)
}
