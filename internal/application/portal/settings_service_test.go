package portal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazzel/portal/internal/application/portal"
	"github.com/mazzel/portal/internal/domain/settings"
	"github.com/mazzel/portal/internal/infrastructure/config"
	"github.com/mazzel/portal/internal/infrastructure/persistence"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

func newSettingsService(t *testing.T) *portal.SettingsService {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.AutoMigrate(&models.SettingsModel{}))
	return portal.NewSettingsService(persistence.NewGormSettingsRepository(db.DB))
}

func TestSettingsServiceGet(t *testing.T) {
	ctx := context.Background()
	svc := newSettingsService(t)

	doc, err := svc.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, "dark", doc["theme"])
	assert.Equal(t, "Mazzel Works Portal", doc["site_title"])
	assert.NotEmpty(t, doc["modules"])
	assert.Empty(t, doc["notifications"])
}

func TestSettingsServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newSettingsService(t)

	require.NoError(t, svc.Update(ctx, settings.Document{
		"theme":        "light",
		"weather_city": "Ankara",
	}))

	doc, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", doc["theme"])
	assert.Equal(t, "Ankara", doc["weather_city"])
	// Untouched keys still come from the defaults
	assert.Equal(t, "Mazzel Works Portal", doc["site_title"])

	// A later patch leaves earlier saved keys alone
	require.NoError(t, svc.Update(ctx, settings.Document{"show_news": false}))

	doc, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", doc["theme"])
	assert.Equal(t, false, doc["show_news"])
}

func TestSettingsServiceAddNotification(t *testing.T) {
	ctx := context.Background()
	svc := newSettingsService(t)

	require.NoError(t, svc.AddNotification(ctx, portal.NotificationRequest{
		Message: "Bakım penceresi: Cumartesi 03:00",
	}))
	require.NoError(t, svc.AddNotification(ctx, portal.NotificationRequest{
		Message: "Yeni teklif modülü yayında",
		Type:    "success",
	}))

	doc, err := svc.Get(ctx)
	require.NoError(t, err)

	list, ok := doc["notifications"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)

	first, ok := list[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Bakım penceresi: Cumartesi 03:00", first["message"])
	assert.Equal(t, "info", first["type"])

	second, ok := list[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "success", second["type"])
}
