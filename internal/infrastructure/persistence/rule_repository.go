package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mazzel/portal/internal/domain/reminder"
	"github.com/mazzel/portal/internal/domain/shared"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

// GormRuleRepository implements reminder.RuleRepository using GORM
type GormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GormRuleRepository
func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

// FindByID finds a rule by its ID
func (r *GormRuleRepository) FindByID(ctx context.Context, id uint) (*reminder.Rule, error) {
	var model models.RuleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns all of a user's rules ordered by display name
func (r *GormRuleRepository) FindByUser(ctx context.Context, user string) ([]*reminder.Rule, error) {
	var ruleModels []models.RuleModel
	if err := r.db.WithContext(ctx).
		Where(`"user" = ?`, user).
		Order("display_name ASC").
		Find(&ruleModels).Error; err != nil {
		return nil, err
	}
	return toDomainRules(ruleModels), nil
}

// FindEnabledByUser returns the user's enabled rules
func (r *GormRuleRepository) FindEnabledByUser(ctx context.Context, user string) ([]*reminder.Rule, error) {
	var ruleModels []models.RuleModel
	if err := r.db.WithContext(ctx).
		Where(`"user" = ? AND enabled = ?`, user, true).
		Order("expected_start_day ASC").
		Find(&ruleModels).Error; err != nil {
		return nil, err
	}
	return toDomainRules(ruleModels), nil
}

// FindByProviderKey finds the user's rule for a normalized provider key
func (r *GormRuleRepository) FindByProviderKey(ctx context.Context, user, providerKey string) (*reminder.Rule, error) {
	var model models.RuleModel
	if err := r.db.WithContext(ctx).
		Where(`"user" = ? AND provider_key = ?`, user, providerKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts or updates a rule. A unique-index violation on
// (user, provider_key) surfaces as ErrAlreadyExists.
func (r *GormRuleRepository) Save(ctx context.Context, rule *reminder.Rule) error {
	model := models.RuleModelFromDomain(rule)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	rule.ID = model.ID
	return nil
}

// Delete removes a rule; its events go with it via the cascade
func (r *GormRuleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.RuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainRules(ruleModels []models.RuleModel) []*reminder.Rule {
	rules := make([]*reminder.Rule, len(ruleModels))
	for i, model := range ruleModels {
		rules[i] = model.ToDomain()
	}
	return rules
}

// isUniqueViolation matches unique-constraint errors from both sqlite
// ("UNIQUE constraint failed") and postgres (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "23505")
}
