package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazzel/portal/internal/domain/settings"
	"github.com/mazzel/portal/internal/infrastructure/config"
	"github.com/mazzel/portal/internal/infrastructure/persistence"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

func newSettingsRepo(t *testing.T) (*persistence.GormSettingsRepository, *persistence.Database) {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.DB.AutoMigrate(&models.SettingsModel{}))

	return persistence.NewGormSettingsRepository(db.DB), db
}

func TestSettingsRepositoryRoundTrip(t *testing.T) {
	repo, database := newSettingsRepo(t)
	ctx := context.Background()

	doc, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc)

	require.NoError(t, repo.Save(ctx, settings.Document{
		"theme":        "dark",
		"weather_city": "İstanbul",
	}))

	doc, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", doc["theme"])
	assert.Equal(t, "İstanbul", doc["weather_city"])

	// Saving again replaces the single row instead of adding one
	require.NoError(t, repo.Save(ctx, settings.Document{"theme": "light"}))

	var count int64
	require.NoError(t, database.DB.Model(&models.SettingsModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	doc, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", doc["theme"])
	assert.NotContains(t, doc, "weather_city")
}

func TestSettingsRepositoryCorruptDocument(t *testing.T) {
	repo, database := newSettingsRepo(t)
	ctx := context.Background()

	now := time.Now()
	row := models.SettingsModel{
		Key:      models.SettingsDocumentKey,
		Document: "{truncated",
	}
	row.CreatedAt = now
	row.UpdatedAt = now
	require.NoError(t, database.DB.Create(&row).Error)

	// A corrupt row degrades to an empty document instead of an error
	doc, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc)

	// And a save heals it
	require.NoError(t, repo.Save(ctx, settings.Document{"theme": "dark"}))
	doc, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", doc["theme"])
}
