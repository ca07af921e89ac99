// Package observe provides structured observability for long-running
// provisioning operations: lease submission, server boot, container start.
package observe

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during
// resource provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a named operation
	Progress(operation string, percent int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Operation string            // Operation name (e.g., "lease.submit", "server.wait")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already existed and was adopted.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates resource creation failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"

	// EventWaiting indicates a bounded wait for a remote state transition.
	EventWaiting EventType = "resource.waiting"
	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(o.formatEvent(event))
}

// Progress implements the Observer interface.
func (o *ConsoleObserver) Progress(operation string, percent int) {
	log.Printf("[%s] Progress: %d%%", operation, percent)
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string)
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		contextFields: newFields,
	}
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Operation != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Operation))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// NopObserver discards all events. Useful as a default dependency in tests.
type NopObserver struct{}

// Printf implements the Logger interface.
func (NopObserver) Printf(string, ...interface{}) {}

// Event implements the Observer interface.
func (NopObserver) Event(Event) {}

// Progress implements the Observer interface.
func (NopObserver) Progress(string, int) {}

// WithFields implements the Observer interface.
func (n NopObserver) WithFields(map[string]string) Observer { return n }

// ResourceCreating logs a resource creation start event.
func ResourceCreating(observer Observer, operation, resourceType, resourceName string) {
	observer.Event(Event{
		Type:      EventResourceCreating,
		Operation: operation,
		Resource:  resourceName,
		Message:   fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// ResourceCreated logs a successful resource creation event.
func ResourceCreated(observer Observer, operation, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:      EventResourceCreated,
		Operation: operation,
		Resource:  resourceName,
		Message:   fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// ResourceExists logs when a resource already exists and was adopted.
func ResourceExists(observer Observer, operation, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:      EventResourceExists,
		Operation: operation,
		Resource:  resourceName,
		Message:   fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// ResourceFailed logs a resource creation failure.
func ResourceFailed(observer Observer, operation, resourceType, resourceName string, err error) {
	observer.Event(Event{
		Type:      EventResourceFailed,
		Operation: operation,
		Resource:  resourceName,
		Message:   fmt.Sprintf("%s failed: %v", resourceType, err),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// ResourceDeleted logs a successful resource deletion event.
func ResourceDeleted(observer Observer, operation, resourceType, resourceName string) {
	observer.Event(Event{
		Type:      EventResourceDeleted,
		Operation: operation,
		Resource:  resourceName,
		Message:   fmt.Sprintf("%s deleted", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// Waiting logs the start of a bounded wait for a state transition.
func Waiting(observer Observer, operation, resourceName, targetStatus string, timeout time.Duration) {
	observer.Event(Event{
		Type:      EventWaiting,
		Operation: operation,
		Resource:  resourceName,
		Message:   fmt.Sprintf("waiting up to %v for status %s", timeout, targetStatus),
		Fields: map[string]string{
			"target": targetStatus,
		},
	})
}
