package persistence

import (
	"context"

	"gorm.io/gorm"

	appmasrafci "github.com/mazzel/portal/internal/application/masrafci"
	"github.com/mazzel/portal/internal/domain/expense"
	"github.com/mazzel/portal/internal/domain/reminder"
)

// GormTransactionScope implements masrafci.TransactionScope using GORM
// transactions. It provides atomic execution of multiple repository
// operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appmasrafci.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to the masrafçı
// repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// RecordRepo returns the expense record repository scoped to the current transaction
func (r *gormTransactionalRepositories) RecordRepo() expense.RecordRepository {
	return NewGormRecordRepository(r.tx)
}

// RuleRepo returns the reminder rule repository scoped to the current transaction
func (r *gormTransactionalRepositories) RuleRepo() reminder.RuleRepository {
	return NewGormRuleRepository(r.tx)
}

// EventRepo returns the reminder event repository scoped to the current transaction
func (r *gormTransactionalRepositories) EventRepo() reminder.EventRepository {
	return NewGormEventRepository(r.tx)
}

var _ appmasrafci.TransactionScope = (*GormTransactionScope)(nil)
var _ appmasrafci.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
