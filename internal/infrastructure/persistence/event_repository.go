package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mazzel/portal/internal/domain/reminder"
	"github.com/mazzel/portal/internal/domain/shared"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

// GormEventRepository implements reminder.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by its ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uint) (*reminder.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserAndMonth returns all of the user's events for a month with
// their rules, any status
func (r *GormEventRepository) FindByUserAndMonth(ctx context.Context, user, month string) ([]*reminder.EventWithRule, error) {
	return r.findWithRules(ctx, r.db.WithContext(ctx).
		Where(`bill_reminder_rules."user" = ? AND bill_reminder_events.month = ?`, user, month))
}

// FindPendingByUserAndMonth returns the user's pending events for a month
// with their rules
func (r *GormEventRepository) FindPendingByUserAndMonth(ctx context.Context, user, month string) ([]*reminder.EventWithRule, error) {
	return r.findWithRules(ctx, r.db.WithContext(ctx).
		Where(`bill_reminder_rules."user" = ? AND bill_reminder_events.month = ? AND bill_reminder_events.status = ?`,
			user, month, reminder.EventStatusPending))
}

// CountPending counts the user's pending events for a month
func (r *GormEventRepository) CountPending(ctx context.Context, user, month string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventModel{}).
		Joins("JOIN bill_reminder_rules ON bill_reminder_rules.id = bill_reminder_events.rule_id").
		Where(`bill_reminder_rules."user" = ? AND bill_reminder_events.month = ? AND bill_reminder_events.status = ?`,
			user, month, reminder.EventStatusPending).
		Count(&count).Error
	return count, err
}

func (r *GormEventRepository) findWithRules(ctx context.Context, query *gorm.DB) ([]*reminder.EventWithRule, error) {
	var eventModels []models.EventModel
	err := query.Model(&models.EventModel{}).
		Joins("JOIN bill_reminder_rules ON bill_reminder_rules.id = bill_reminder_events.rule_id").
		Order("bill_reminder_rules.expected_start_day ASC, bill_reminder_events.id ASC").
		Find(&eventModels).Error
	if err != nil {
		return nil, err
	}

	// Fetch the rules in one query keyed by ID; the handful of rows per
	// user does not justify scanning a joined projection.
	ruleIDs := make([]uint, 0, len(eventModels))
	seen := make(map[uint]bool, len(eventModels))
	for _, model := range eventModels {
		if !seen[model.RuleID] {
			seen[model.RuleID] = true
			ruleIDs = append(ruleIDs, model.RuleID)
		}
	}

	var ruleModels []models.RuleModel
	if len(ruleIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", ruleIDs).Find(&ruleModels).Error; err != nil {
			return nil, err
		}
	}
	rulesByID := make(map[uint]*reminder.Rule, len(ruleModels))
	for i := range ruleModels {
		rulesByID[ruleModels[i].ID] = ruleModels[i].ToDomain()
	}

	result := make([]*reminder.EventWithRule, 0, len(eventModels))
	for _, model := range eventModels {
		result = append(result, &reminder.EventWithRule{
			Event: model.ToDomain(),
			Rule:  rulesByID[model.RuleID],
		})
	}
	return result, nil
}

// CreatePending inserts a pending event. A concurrent due check may have
// inserted the same (rule_id, month) already; that conflict is swallowed.
func (r *GormEventRepository) CreatePending(ctx context.Context, event *reminder.Event) error {
	model := models.EventModelFromDomain(event)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rule_id"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(model).Error
	if err != nil {
		return err
	}
	event.ID = model.ID
	return nil
}

// Save updates an event
func (r *GormEventRepository) Save(ctx context.Context, event *reminder.Event) error {
	model := models.EventModelFromDomain(event)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	event.ID = model.ID
	return nil
}

// Delete removes an event by ID
func (r *GormEventRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.EventModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UnlinkRecord clears linked_record_id on any event pointing at the record
func (r *GormEventRepository) UnlinkRecord(ctx context.Context, recordID uint) error {
	return r.db.WithContext(ctx).Model(&models.EventModel{}).
		Where("linked_record_id = ?", recordID).
		Update("linked_record_id", nil).Error
}
