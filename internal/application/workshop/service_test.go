package workshop_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appworkshop "github.com/mazzel/portal/internal/application/workshop"
	"github.com/mazzel/portal/internal/infrastructure/config"
	"github.com/mazzel/portal/internal/infrastructure/persistence"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

func newService(t *testing.T) *appworkshop.Service {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.AutoMigrate(
		&models.CustomerModel{},
		&models.MaterialModel{},
		&models.NestingProjectModel{},
	))

	return appworkshop.NewService(
		persistence.NewGormCustomerRepository(db.DB),
		persistence.NewGormMaterialRepository(db.DB),
		persistence.NewGormNestingProjectRepository(db.DB),
	)
}

func TestCustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	id, err := svc.CreateCustomer(ctx, appworkshop.Payload{
		"name":  "Demir Çelik A.Ş.",
		"phone": "0212 555 0001",
		"city":  "İstanbul",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	t.Run("get returns a flat document", func(t *testing.T) {
		got, err := svc.GetCustomer(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got["id"])
		assert.Equal(t, "Demir Çelik A.Ş.", got["name"])
		assert.Equal(t, "active", got["status"])
		assert.Equal(t, "0212 555 0001", got["phone"])
		assert.NotEmpty(t, got["created_at"])
	})

	t.Run("update replaces the document", func(t *testing.T) {
		err := svc.UpdateCustomer(ctx, id, appworkshop.Payload{
			"name":  "Demir Çelik A.Ş.",
			"email": "info@demircelik.example",
		})
		require.NoError(t, err)

		got, err := svc.GetCustomer(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "info@demircelik.example", got["email"])
		// The old free-form field was not carried over
		assert.NotContains(t, got, "phone")
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := svc.CreateCustomer(ctx, appworkshop.Payload{"phone": "0212 555 0002"})
		assert.Error(t, err)
	})

	t.Run("delete tolerates missing", func(t *testing.T) {
		require.NoError(t, svc.DeleteCustomer(ctx, id))
		assert.NoError(t, svc.DeleteCustomer(ctx, id))

		customers, err := svc.ListCustomers(ctx)
		require.NoError(t, err)
		assert.Empty(t, customers)
	})
}

func TestMaterialCategories(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	seed := []appworkshop.Payload{
		{"name": "DKP Sac 2mm", "category": "sac", "thickness": 2.0},
		{"name": "DKP Sac 3mm", "category": "sac", "thickness": 3.0},
		{"name": "Profil 40x40", "category": "profil"},
	}
	for _, payload := range seed {
		_, err := svc.CreateMaterial(ctx, payload)
		require.NoError(t, err)
	}

	t.Run("list filters by category", func(t *testing.T) {
		all, err := svc.ListMaterials(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		sac, err := svc.ListMaterials(ctx, "sac")
		require.NoError(t, err)
		assert.Len(t, sac, 2)
	})

	t.Run("distinct categories", func(t *testing.T) {
		categories, err := svc.Categories(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"sac", "profil"}, categories)
	})

	t.Run("update keeps category when absent", func(t *testing.T) {
		materials, err := svc.ListMaterials(ctx, "profil")
		require.NoError(t, err)
		require.Len(t, materials, 1)
		id := materials[0]["id"].(uint)

		require.NoError(t, svc.UpdateMaterial(ctx, id, appworkshop.Payload{
			"name":  "Profil 40x40x2",
			"stock": 12,
		}))

		materials, err = svc.ListMaterials(ctx, "profil")
		require.NoError(t, err)
		require.Len(t, materials, 1)
		assert.Equal(t, "Profil 40x40x2", materials[0]["name"])
	})
}

func TestNestingProjectSave(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	customerID, err := svc.CreateCustomer(ctx, appworkshop.Payload{"name": "Demir Çelik A.Ş."})
	require.NoError(t, err)

	t.Run("create on unknown id falls through", func(t *testing.T) {
		id, err := svc.SaveProject(ctx, appworkshop.Payload{
			"id":   float64(999),
			"name": "Kapı panelleri",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uint(999), id)
	})

	t.Run("save with known id updates in place", func(t *testing.T) {
		id, err := svc.SaveProject(ctx, appworkshop.Payload{
			"name":        "Merdiven korkuluğu",
			"customer_id": float64(customerID),
			"sheets":      []interface{}{"2mm", "3mm"},
		})
		require.NoError(t, err)

		updatedID, err := svc.SaveProject(ctx, appworkshop.Payload{
			"id":     float64(id),
			"name":   "Merdiven korkuluğu v2",
			"sheets": []interface{}{"3mm"},
		})
		require.NoError(t, err)
		assert.Equal(t, id, updatedID)

		got, err := svc.GetProject(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Merdiven korkuluğu v2", got["name"])
	})

	t.Run("string ids are accepted", func(t *testing.T) {
		id, err := svc.SaveProject(ctx, appworkshop.Payload{"name": "Pano kasası"})
		require.NoError(t, err)

		updatedID, err := svc.SaveProject(ctx, appworkshop.Payload{
			"id":   strconv.FormatUint(uint64(id), 10),
			"name": "Pano kasası rev",
		})
		require.NoError(t, err)
		assert.Equal(t, id, updatedID)
	})

	t.Run("delete tolerates missing", func(t *testing.T) {
		id, err := svc.SaveProject(ctx, appworkshop.Payload{"name": "Geçici"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteProject(ctx, id))
		assert.NoError(t, svc.DeleteProject(ctx, id))
	})
}
