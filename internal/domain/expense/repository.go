package expense

import (
	"context"

	"github.com/shopspring/decimal"
)

// RecordFilter defines filtering options for record list queries
type RecordFilter struct {
	Type  RecordType
	Month string
}

// CategoryTotal is one row of a per-category spend aggregation
type CategoryTotal struct {
	Kategori string          `json:"kategori"`
	Toplam   decimal.Decimal `json:"toplam"`
	Adet     int64           `json:"adet"`
}

// RecordRepository persists masrafçı records
type RecordRepository interface {
	FindByID(ctx context.Context, id uint) (*Record, error)
	FindAllForUser(ctx context.Context, user string, filter RecordFilter) ([]Record, error)
	Save(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id uint) error

	// BillProviders returns the raw kurum values of all bill-type records
	// for the user in the given month. The reminder engine normalizes them
	// into provider keys.
	BillProviders(ctx context.Context, user, month string) ([]string, error)

	// Summary queries
	SumForUser(ctx context.Context, user, month string) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, user, month string) ([]CategoryTotal, error)
	FindUnpaidBills(ctx context.Context, user, month string, limit int) ([]Record, error)
	FindActiveInstalments(ctx context.Context, user, month string, limit int) ([]Record, error)
	FindRecent(ctx context.Context, user, month string, limit int) ([]Record, error)
}
