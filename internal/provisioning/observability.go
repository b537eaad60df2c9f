package provisioning

import (
	"fmt"
	"log"
	"time"
)

// Logger is the minimal logging interface used by provisioning code.
type Logger interface {
	Printf(format string, v ...interface{})
}

// EventType categorizes provisioning events.
type EventType string

const (
	// Phase lifecycle events
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	// Resource lifecycle events
	EventResourceCreating EventType = "resource.creating"
	EventResourceCreated  EventType = "resource.created"
	EventResourceExists   EventType = "resource.exists"
	EventResourceFailed   EventType = "resource.failed"
	EventResourceDeleting EventType = "resource.deleting"
	EventResourceDeleted  EventType = "resource.deleted"

	// Wait events, emitted while polling a slow control-plane transition
	EventWaiting EventType = "wait.progress"

	// Recorded attribute events, emitted when a value is written back
	// to the configuration file
	EventRecorded EventType = "attribute.recorded"
)

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     string
	Resource  string
	Message   string
	Timestamp time.Time
	Fields    map[string]interface{}
}

// Observer receives logs and structured events during provisioning.
type Observer interface {
	Logger

	// Event records a structured provisioning event.
	Event(event Event)

	// Progress reports phase progress.
	Progress(phase string, current, total int)
}

// ConsoleObserver writes logs and events to the standard logger.
type ConsoleObserver struct{}

// NewConsoleObserver creates an observer that logs to the console.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf logs a formatted message.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event logs a structured event in a human-readable form.
func (o *ConsoleObserver) Event(event Event) {
	log.Print(formatEvent(event))
}

// Progress logs phase progress.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	log.Printf("[%s] progress %d/%d", phase, current, total)
}

func formatEvent(event Event) string {
	msg := event.Message
	if msg == "" {
		msg = string(event.Type)
	}
	if event.Resource != "" {
		msg = fmt.Sprintf("%s: %s", event.Resource, msg)
	}
	if event.Phase != "" {
		msg = fmt.Sprintf("[%s] %s", event.Phase, msg)
	}
	return msg
}

// LogPhaseStart emits a phase.started event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:      EventPhaseStarted,
		Phase:     phase,
		Message:   "starting",
		Timestamp: time.Now(),
	})
}

// LogPhaseComplete emits a phase.completed event.
func LogPhaseComplete(observer Observer, phase string, elapsed time.Duration) {
	observer.Event(Event{
		Type:      EventPhaseCompleted,
		Phase:     phase,
		Message:   fmt.Sprintf("completed in %s", elapsed.Round(time.Second)),
		Timestamp: time.Now(),
	})
}

// LogPhaseFailed emits a phase.failed event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:      EventPhaseFailed,
		Phase:     phase,
		Message:   err.Error(),
		Timestamp: time.Now(),
		Fields:    map[string]interface{}{"error": err},
	})
}

// LogResourceCreating emits a resource.creating event.
func LogResourceCreating(observer Observer, phase, resource string) {
	observer.Event(Event{
		Type:      EventResourceCreating,
		Phase:     phase,
		Resource:  resource,
		Message:   "creating",
		Timestamp: time.Now(),
	})
}

// LogResourceCreated emits a resource.created event.
func LogResourceCreated(observer Observer, phase, resource string) {
	observer.Event(Event{
		Type:      EventResourceCreated,
		Phase:     phase,
		Resource:  resource,
		Message:   "created",
		Timestamp: time.Now(),
	})
}

// LogResourceExists emits a resource.exists event.
func LogResourceExists(observer Observer, phase, resource string) {
	observer.Event(Event{
		Type:      EventResourceExists,
		Phase:     phase,
		Resource:  resource,
		Message:   "already exists",
		Timestamp: time.Now(),
	})
}

// LogResourceDeleting emits a resource.deleting event.
func LogResourceDeleting(observer Observer, phase, resource string) {
	observer.Event(Event{
		Type:      EventResourceDeleting,
		Phase:     phase,
		Resource:  resource,
		Message:   "deleting",
		Timestamp: time.Now(),
	})
}

// LogResourceDeleted emits a resource.deleted event.
func LogResourceDeleted(observer Observer, phase, resource string) {
	observer.Event(Event{
		Type:      EventResourceDeleted,
		Phase:     phase,
		Resource:  resource,
		Message:   "deleted",
		Timestamp: time.Now(),
	})
}

// LogWaiting emits a wait.progress event with the last observed status.
func LogWaiting(observer Observer, phase, resource, status string, elapsed time.Duration) {
	observer.Event(Event{
		Type:      EventWaiting,
		Phase:     phase,
		Resource:  resource,
		Message:   fmt.Sprintf("status %q after %s", status, elapsed.Round(time.Second)),
		Timestamp: time.Now(),
		Fields:    map[string]interface{}{"status": status, "elapsed": elapsed},
	})
}

// LogRecorded emits an attribute.recorded event after a write-back.
func LogRecorded(observer Observer, phase, key, value string) {
	observer.Event(Event{
		Type:      EventRecorded,
		Phase:     phase,
		Resource:  key,
		Message:   fmt.Sprintf("recorded %s", value),
		Timestamp: time.Now(),
		Fields:    map[string]interface{}{key: value},
	})
}
