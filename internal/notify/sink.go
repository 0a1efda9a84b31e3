package notify

import "log"

// Kind classifies a user-facing notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Sink receives fire-and-forget user feedback. Implementations must never
// block the caller and no return value is consumed by the core.
type Sink interface {
	Notify(kind Kind, message string)
}

// LogSink writes notifications to the process log.
type LogSink struct{}

func (LogSink) Notify(kind Kind, message string) {
	log.Printf("[%s] %s", kind, message)
}

// NopSink discards notifications.
type NopSink struct{}

func (NopSink) Notify(Kind, string) {}
