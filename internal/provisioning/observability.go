package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives structured events as the orchestrator works through its
// stages. Credential values never pass through an Observer; events carry
// resource names only.
type Observer interface {
	// Event emits a structured event.
	Event(event Event)
}

// Event represents a single provisioning event.
type Event struct {
	Type      EventType
	Stage     Stage
	Resource  string
	Message   string
	Timestamp time.Time
}

// EventType classifies provisioning events.
type EventType string

const (
	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates the resource already exists on the store.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates resource creation failed.
	EventResourceFailed EventType = "resource.failed"

	// EventRunCompleted indicates the whole run finished successfully.
	EventRunCompleted EventType = "run.completed"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	var parts []string
	parts = append(parts, string(event.Type))
	if event.Stage != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Stage))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}
	log.Print(strings.Join(parts, " "))
}

// NopObserver discards all events.
type NopObserver struct{}

// Event implements Observer.
func (NopObserver) Event(Event) {}
