package masrafci

import (
	"context"

	"github.com/mazzel/portal/internal/domain/expense"
	"github.com/mazzel/portal/internal/domain/reminder"
)

// TransactionScope provides transactional access to the masrafçı repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the masrafçı repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// RecordRepo returns the expense record repository scoped to the current transaction
	RecordRepo() expense.RecordRepository
	// RuleRepo returns the reminder rule repository scoped to the current transaction
	RuleRepo() reminder.RuleRepository
	// EventRepo returns the reminder event repository scoped to the current transaction
	EventRepo() reminder.EventRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	recordRepo expense.RecordRepository
	ruleRepo   reminder.RuleRepository
	eventRepo  reminder.EventRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	recordRepo expense.RecordRepository,
	ruleRepo reminder.RuleRepository,
	eventRepo reminder.EventRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		recordRepo: recordRepo,
		ruleRepo:   ruleRepo,
		eventRepo:  eventRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RecordRepo returns the expense record repository.
func (s *NoOpTransactionScope) RecordRepo() expense.RecordRepository {
	return s.recordRepo
}

// RuleRepo returns the reminder rule repository.
func (s *NoOpTransactionScope) RuleRepo() reminder.RuleRepository {
	return s.ruleRepo
}

// EventRepo returns the reminder event repository.
func (s *NoOpTransactionScope) EventRepo() reminder.EventRepository {
	return s.eventRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
