package reminder

import "context"

// EventWithRule pairs an event with its rule for list views
type EventWithRule struct {
	Event *Event
	Rule  *Rule
}

// RuleRepository defines the interface for reminder rule persistence
type RuleRepository interface {
	FindByID(ctx context.Context, id uint) (*Rule, error)
	FindByUser(ctx context.Context, user string) ([]*Rule, error)
	FindEnabledByUser(ctx context.Context, user string) ([]*Rule, error)
	FindByProviderKey(ctx context.Context, user, providerKey string) (*Rule, error)
	Save(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id uint) error
}

// EventRepository defines the interface for reminder event persistence
type EventRepository interface {
	FindByID(ctx context.Context, id uint) (*Event, error)
	FindByUserAndMonth(ctx context.Context, user, month string) ([]*EventWithRule, error)
	FindPendingByUserAndMonth(ctx context.Context, user, month string) ([]*EventWithRule, error)
	CountPending(ctx context.Context, user, month string) (int64, error)
	// CreatePending inserts a pending event for the rule and month.
	// A (rule_id, month) unique-constraint violation is swallowed: a
	// concurrent due check already created the row, which is fine.
	CreatePending(ctx context.Context, event *Event) error
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uint) error
	UnlinkRecord(ctx context.Context, recordID uint) error
}
