package reminder

import (
	"time"

	"github.com/mazzel/portal/internal/domain/shared"
)

// Day-of-month and lead-time bounds for reminder rules. Windows stop at 28
// so every month can contain them.
const (
	MinWindowDay = 1
	MaxWindowDay = 28
	MinLeadDays  = 0
	MaxLeadDays  = 14

	// DefaultLeadDays is applied when a rule is created without one
	DefaultLeadDays = 3
)

// Rule is a per-user, per-provider configuration describing when a
// recurring bill is expected and how reminders should behave. At most one
// rule exists per (user, provider key); rules are disabled, never deleted,
// when the user opts out.
type Rule struct {
	shared.BaseEntity
	User              string `json:"user"`
	ProviderKey       string `json:"provider_key"`
	DisplayName       string `json:"display_name"`
	Enabled           bool   `json:"enabled"`
	ExpectedStartDay  int    `json:"expected_start_day"`
	ExpectedEndDay    int    `json:"expected_end_day"`
	LeadDays          int    `json:"lead_days"`
	LastPromptedMonth string `json:"last_prompted_month,omitempty"`
	SnoozeUntil       string `json:"snooze_until,omitempty"` // ISO date, suppresses matching until passed
}

// NewRule creates a rule for the given display name. The provider key is
// derived by normalization; window and lead values outside their bounds are
// rejected.
func NewRule(user, displayName string, startDay, endDay, leadDays int) (*Rule, error) {
	if user == "" {
		return nil, shared.NewDomainError("INVALID_USER", "Rule owner cannot be empty")
	}
	key := NormalizeProviderKey(displayName)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Geçersiz kurum adı")
	}
	if startDay < MinWindowDay || startDay > MaxWindowDay {
		return nil, shared.NewDomainError("INVALID_WINDOW", "expected_start_day must be between 1 and 28")
	}
	if endDay < MinWindowDay || endDay > MaxWindowDay {
		return nil, shared.NewDomainError("INVALID_WINDOW", "expected_end_day must be between 1 and 28")
	}
	if leadDays < MinLeadDays || leadDays > MaxLeadDays {
		return nil, shared.NewDomainError("INVALID_LEAD", "lead_days must be between 0 and 14")
	}

	return &Rule{
		BaseEntity:       shared.NewBaseEntity(),
		User:             user,
		ProviderKey:      key,
		DisplayName:      displayName,
		Enabled:          true,
		ExpectedStartDay: startDay,
		ExpectedEndDay:   endDay,
		LeadDays:         leadDays,
	}, nil
}

// Rename updates the display name and recomputes the provider key
func (r *Rule) Rename(displayName string) error {
	key := NormalizeProviderKey(displayName)
	if key == "" {
		return shared.NewDomainError("INVALID_PROVIDER", "Geçersiz kurum adı")
	}
	r.DisplayName = displayName
	r.ProviderKey = key
	r.UpdatedAt = time.Now()
	return nil
}

// SetWindow updates the expected day window, rejecting out-of-range days
func (r *Rule) SetWindow(startDay, endDay int) error {
	if startDay < MinWindowDay || startDay > MaxWindowDay {
		return shared.NewDomainError("INVALID_WINDOW", "expected_start_day must be between 1 and 28")
	}
	if endDay < MinWindowDay || endDay > MaxWindowDay {
		return shared.NewDomainError("INVALID_WINDOW", "expected_end_day must be between 1 and 28")
	}
	r.ExpectedStartDay = startDay
	r.ExpectedEndDay = endDay
	r.UpdatedAt = time.Now()
	return nil
}

// SetLeadDays updates the lead time, rejecting out-of-range values
func (r *Rule) SetLeadDays(leadDays int) error {
	if leadDays < MinLeadDays || leadDays > MaxLeadDays {
		return shared.NewDomainError("INVALID_LEAD", "lead_days must be between 0 and 14")
	}
	r.LeadDays = leadDays
	r.UpdatedAt = time.Now()
	return nil
}

// Disable turns the rule off without deleting it
func (r *Rule) Disable() {
	r.Enabled = false
	r.UpdatedAt = time.Now()
}

// SnoozeFor suppresses the rule until today plus the given number of days
func (r *Rule) SnoozeFor(today time.Time, days int) {
	r.SnoozeUntil = today.AddDate(0, 0, days).Format("2006-01-02")
	r.UpdatedAt = time.Now()
}

// WindowOpen reports whether the given day of month falls inside the
// rule's reminder window, lead days included. The lower bound is clamped
// to the first of the month.
func (r *Rule) WindowOpen(dayOfMonth int) bool {
	start := r.ExpectedStartDay - r.LeadDays
	if start < MinWindowDay {
		start = MinWindowDay
	}
	return dayOfMonth >= start && dayOfMonth <= r.ExpectedEndDay
}

// Snoozed reports whether the rule is snoozed past the given ISO date.
// Lexical comparison is correct because both sides are YYYY-MM-DD.
func (r *Rule) Snoozed(todayISO string) bool {
	return r.SnoozeUntil != "" && r.SnoozeUntil > todayISO
}
