package masrafci_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mazzel/portal/internal/application/masrafci"
	"github.com/mazzel/portal/internal/domain/expense"
	"github.com/mazzel/portal/internal/domain/reminder"
	"github.com/mazzel/portal/internal/infrastructure/config"
	"github.com/mazzel/portal/internal/infrastructure/persistence"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

// fixedClock pins the due check to a known date
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type fixture struct {
	db         *gorm.DB
	clock      *fixedClock
	records    *masrafci.RecordService
	reminders  *masrafci.ReminderService
	recordRepo expense.RecordRepository
	ruleRepo   reminder.RuleRepository
	eventRepo  reminder.EventRepository
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.AutoMigrate(
		&models.RecordModel{},
		&models.RuleModel{},
		&models.EventModel{},
	))

	clock := &fixedClock{now: now}
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	ruleRepo := persistence.NewGormRuleRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	return &fixture{
		db:         db.DB,
		clock:      clock,
		records:    masrafci.NewRecordService(recordRepo, txScope, clock),
		reminders:  masrafci.NewReminderService(ruleRepo, eventRepo, txScope, clock),
		recordRepo: recordRepo,
		ruleRepo:   ruleRepo,
		eventRepo:  eventRepo,
	}
}

func (f *fixture) seedRule(t *testing.T, user, displayName string, startDay, endDay, leadDays int) *reminder.Rule {
	t.Helper()
	rule, err := reminder.NewRule(user, displayName, startDay, endDay, leadDays)
	require.NoError(t, err)
	require.NoError(t, f.ruleRepo.Save(context.Background(), rule))
	return rule
}

func (f *fixture) seedPendingEvent(t *testing.T, ruleID uint, month string) *reminder.Event {
	t.Helper()
	event := reminder.NewPendingEvent(ruleID, month)
	require.NoError(t, f.eventRepo.CreatePending(context.Background(), event))
	return event
}
