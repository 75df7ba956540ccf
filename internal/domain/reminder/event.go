package reminder

import (
	"time"

	"github.com/mazzel/portal/internal/domain/shared"
)

// EventStatus represents the lifecycle state of a reminder event
type EventStatus string

const (
	EventStatusPending    EventStatus = "pending"
	EventStatusPrompted   EventStatus = "prompted"
	EventStatusEntered    EventStatus = "entered"
	EventStatusSkipped    EventStatus = "skipped_month"
	EventStatusDismissed  EventStatus = "dismissed"
)

// IsValid checks if the status is a valid EventStatus
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPending, EventStatusPrompted, EventStatusEntered,
		EventStatusSkipped, EventStatusDismissed:
		return true
	}
	return false
}

// String returns the string representation of EventStatus
func (s EventStatus) String() string {
	return string(s)
}

// Action is a user response to a reminder event
type Action string

const (
	ActionAddNow      Action = "add_now"
	ActionSnooze3d    Action = "snooze_3d"
	ActionSkipMonth   Action = "skip_month"
	ActionDisableRule Action = "disable_rule"
)

// IsValid checks if the action keyword is recognized
func (a Action) IsValid() bool {
	switch a {
	case ActionAddNow, ActionSnooze3d, ActionSkipMonth, ActionDisableRule:
		return true
	}
	return false
}

// SnoozeDays is how far snooze_3d pushes a rule's snooze_until
const SnoozeDays = 3

// Event is one month's instantiation of a rule's reminder lifecycle.
// At most one event exists per (rule, month); the event is cascade-deleted
// with its rule, while LinkedRecordID is a soft reference that is cleared,
// not cascaded, when the expense record goes away.
type Event struct {
	shared.BaseEntity
	RuleID         uint        `json:"rule_id"`
	Month          string      `json:"month"` // YYYY-MM
	Status         EventStatus `json:"status"`
	PromptedAt     *time.Time  `json:"prompted_at,omitempty"`
	AnsweredAt     *time.Time  `json:"answered_at,omitempty"`
	LinkedRecordID *uint       `json:"linked_record_id,omitempty"`
}

// NewPendingEvent creates a pending event for the rule and month
func NewPendingEvent(ruleID uint, month string) *Event {
	return &Event{
		BaseEntity: shared.NewBaseEntity(),
		RuleID:     ruleID,
		Month:      month,
		Status:     EventStatusPending,
	}
}

// MarkPrompted records that the user was shown the record-entry form
func (e *Event) MarkPrompted(now time.Time) {
	e.Status = EventStatusPrompted
	e.PromptedAt = &now
	e.UpdatedAt = now
}

// SkipMonth closes the event for this month. The (rule, month) unique
// constraint keeps the due check from ever recreating it.
func (e *Event) SkipMonth(now time.Time) {
	e.Status = EventStatusSkipped
	e.AnsweredAt = &now
	e.UpdatedAt = now
}

// Dismiss closes the event after its rule was disabled
func (e *Event) Dismiss(now time.Time) {
	e.Status = EventStatusDismissed
	e.AnsweredAt = &now
	e.UpdatedAt = now
}

// LinkRecord attaches the expense record the user entered from the prompt
func (e *Event) LinkRecord(recordID uint, now time.Time) {
	e.LinkedRecordID = &recordID
	e.Status = EventStatusEntered
	e.AnsweredAt = &now
	e.UpdatedAt = now
}
