package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples services from the UI collaborator
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for notifying whichever collaborator is
// rendering the outline. The app layer provides the real implementation;
// services receive the interface so they stay independently testable with
// a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}
