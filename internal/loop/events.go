package loop

import "time"

// EventKind names the structured event categories spec.md §7 requires
// recorded for every tick outcome.
type EventKind string

const (
	EventSuccess  EventKind = "success"
	EventRetry    EventKind = "retry"
	EventFailure  EventKind = "failure"
	EventSnapshot EventKind = "snapshot"
	EventRollback EventKind = "rollback"
	EventPaused   EventKind = "paused"
)

// Event is one structured, user-visible record of a tick's outcome
// (spec.md §7: "every outcome... is recorded in a structured event").
type Event struct {
	Tick      int64
	Timestamp time.Time
	Kind      EventKind
	Detail    string
}

// EventLog is an append-only record of Events; the loop controller
// keeps one per run so a final report (or a crash-time dump) can
// reconstruct exactly what happened.
type EventLog struct {
	events []Event
}

// Record appends a new structured event.
func (l *EventLog) Record(e Event) { l.events = append(l.events, e) }

// Events returns every recorded event in order.
func (l *EventLog) Events() []Event { return l.events }

// Last returns the most recently recorded event, or the zero Event if
// none has been recorded yet.
func (l *EventLog) Last() (Event, bool) {
	if len(l.events) == 0 {
		return Event{}, false
	}
	return l.events[len(l.events)-1], true
}
