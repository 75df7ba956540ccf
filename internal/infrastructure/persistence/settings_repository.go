package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mazzel/portal/internal/domain/settings"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

// GormSettingsRepository implements settings.Repository using GORM. The
// whole document lives in one row keyed by models.SettingsDocumentKey.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load returns the stored settings document, empty if none was saved yet
func (r *GormSettingsRepository) Load(ctx context.Context) (settings.Document, error) {
	var model models.SettingsModel
	err := r.db.WithContext(ctx).
		Where("key = ?", models.SettingsDocumentKey).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.Document{}, nil
		}
		return nil, err
	}

	doc := settings.Document{}
	if err := json.Unmarshal([]byte(model.Document), &doc); err != nil {
		// A corrupt row should not take the settings page down; the
		// defaults still apply.
		return settings.Document{}, nil
	}
	return doc, nil
}

// Save upserts the settings document
func (r *GormSettingsRepository) Save(ctx context.Context, doc settings.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	now := time.Now()
	model := models.SettingsModel{
		Key:      models.SettingsDocumentKey,
		Document: string(raw),
	}
	model.CreatedAt = now
	model.UpdatedAt = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).
		Create(&model).Error
}
