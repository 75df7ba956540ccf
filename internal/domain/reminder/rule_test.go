package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRule(t *testing.T) {
	t.Run("valid rule", func(t *testing.T) {
		rule, err := NewRule("demo", "Türk Telekom", 5, 12, 2)

		require.NoError(t, err)
		assert.Equal(t, "demo", rule.User)
		assert.Equal(t, "turk telekom", rule.ProviderKey)
		assert.Equal(t, "Türk Telekom", rule.DisplayName)
		assert.True(t, rule.Enabled)
		assert.Equal(t, 5, rule.ExpectedStartDay)
		assert.Equal(t, 12, rule.ExpectedEndDay)
		assert.Equal(t, 2, rule.LeadDays)
	})

	t.Run("empty user", func(t *testing.T) {
		_, err := NewRule("", "Elektrik", 5, 12, 2)
		assert.Error(t, err)
	})

	t.Run("name normalizing to empty", func(t *testing.T) {
		_, err := NewRule("demo", "   ", 5, 12, 2)
		assert.Error(t, err)
	})

	t.Run("start day out of bounds", func(t *testing.T) {
		_, err := NewRule("demo", "Elektrik", 0, 12, 2)
		assert.Error(t, err)

		_, err = NewRule("demo", "Elektrik", 29, 12, 2)
		assert.Error(t, err)
	})

	t.Run("end day out of bounds", func(t *testing.T) {
		_, err := NewRule("demo", "Elektrik", 5, 31, 2)
		assert.Error(t, err)
	})

	t.Run("lead days out of bounds", func(t *testing.T) {
		_, err := NewRule("demo", "Elektrik", 5, 12, -1)
		assert.Error(t, err)

		_, err = NewRule("demo", "Elektrik", 5, 12, 15)
		assert.Error(t, err)
	})
}

func TestRuleRename(t *testing.T) {
	rule, err := NewRule("demo", "Elektrik", 5, 12, 2)
	require.NoError(t, err)

	require.NoError(t, rule.Rename("İGDAŞ Doğalgaz"))
	assert.Equal(t, "İGDAŞ Doğalgaz", rule.DisplayName)
	assert.Equal(t, "igdas dogalgaz", rule.ProviderKey)

	assert.Error(t, rule.Rename(""))
}

func TestRuleWindowOpen(t *testing.T) {
	rule, err := NewRule("demo", "Elektrik", 5, 12, 3)
	require.NoError(t, err)

	tests := []struct {
		name string
		day  int
		open bool
	}{
		{"before lead window", 1, false},
		{"lead window start", 2, true},
		{"expected start", 5, true},
		{"mid window", 8, true},
		{"window end", 12, true},
		{"after window", 13, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, rule.WindowOpen(tt.day))
		})
	}

	t.Run("lead window clamps to first of month", func(t *testing.T) {
		early, err := NewRule("demo", "Su", 2, 6, 5)
		require.NoError(t, err)
		assert.True(t, early.WindowOpen(1))
	})
}

func TestRuleSnooze(t *testing.T) {
	rule, err := NewRule("demo", "Elektrik", 5, 12, 2)
	require.NoError(t, err)

	assert.False(t, rule.Snoozed("2026-03-05"))

	today := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	rule.SnoozeFor(today, SnoozeDays)
	assert.Equal(t, "2026-03-08", rule.SnoozeUntil)

	assert.True(t, rule.Snoozed("2026-03-05"))
	assert.True(t, rule.Snoozed("2026-03-07"))
	assert.False(t, rule.Snoozed("2026-03-08"))
	assert.False(t, rule.Snoozed("2026-03-09"))
}

func TestEventTransitions(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	t.Run("prompt", func(t *testing.T) {
		event := NewPendingEvent(1, "2026-03")
		assert.Equal(t, EventStatusPending, event.Status)

		event.MarkPrompted(now)
		assert.Equal(t, EventStatusPrompted, event.Status)
		require.NotNil(t, event.PromptedAt)
		assert.Equal(t, now, *event.PromptedAt)
	})

	t.Run("link record", func(t *testing.T) {
		event := NewPendingEvent(1, "2026-03")
		event.LinkRecord(42, now)
		assert.Equal(t, EventStatusEntered, event.Status)
		require.NotNil(t, event.LinkedRecordID)
		assert.Equal(t, uint(42), *event.LinkedRecordID)
		require.NotNil(t, event.AnsweredAt)
	})

	t.Run("skip month", func(t *testing.T) {
		event := NewPendingEvent(1, "2026-03")
		event.SkipMonth(now)
		assert.Equal(t, EventStatusSkipped, event.Status)
		require.NotNil(t, event.AnsweredAt)
	})

	t.Run("dismiss", func(t *testing.T) {
		event := NewPendingEvent(1, "2026-03")
		event.Dismiss(now)
		assert.Equal(t, EventStatusDismissed, event.Status)
	})
}
