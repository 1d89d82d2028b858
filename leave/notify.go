package leave

import (
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// NOTIFICATION SINK - Informed out-of-band after each transition
// =============================================================================

type EventAction string

const (
	EventSubmitted EventAction = "submitted"
	EventApproved  EventAction = "approved"
	EventRejected  EventAction = "rejected"
	EventCanceled  EventAction = "canceled"
)

// Event describes a completed transition. Events are emitted after the
// ledger write succeeds and are not part of the transactional boundary:
// a failed notification never rolls back a decision.
type Event struct {
	Action      EventAction
	Application Application
	Actor       string
	At          time.Time
}

// Notifier receives transition events. Implementations must not block the
// caller; the engine already dispatches on a separate goroutine, but slow
// sinks should still buffer or drop internally.
type Notifier interface {
	Notify(event Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}

// LogNotifier writes transition events to a structured log. Stands in for
// a real delivery channel (email, chat) in development.
type LogNotifier struct {
	Log *zap.Logger
}

func (n *LogNotifier) Notify(event Event) {
	n.Log.Info("leave transition",
		zap.String("action", string(event.Action)),
		zap.String("application_id", event.Application.ID),
		zap.String("employee_id", event.Application.EmployeeID),
		zap.String("type", string(event.Application.Type)),
		zap.Int("days", event.Application.Days),
		zap.String("actor", event.Actor),
	)
}
