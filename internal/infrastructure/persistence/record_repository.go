package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mazzel/portal/internal/domain/expense"
	"github.com/mazzel/portal/internal/domain/shared"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

// GormRecordRepository implements expense.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds a record by its ID
func (r *GormRecordRepository) FindByID(ctx context.Context, id uint) (*expense.Record, error) {
	var model models.RecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all records for a user with optional filtering,
// newest first
func (r *GormRecordRepository) FindAllForUser(ctx context.Context, user string, filter expense.RecordFilter) ([]expense.Record, error) {
	var recordModels []models.RecordModel
	query := r.db.WithContext(ctx).Model(&models.RecordModel{}).
		Where(`"user" = ?`, user)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Month != "" {
		query = query.Where("ay = ?", filter.Month)
	}

	if err := query.Order("id DESC").Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// Save inserts or updates a record
func (r *GormRecordRepository) Save(ctx context.Context, record *expense.Record) error {
	model := models.RecordModelFromDomain(record)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	record.ID = model.ID
	return nil
}

// Delete removes a record by ID
func (r *GormRecordRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.RecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// BillProviders returns the kurum values of the user's bill records in the
// given month
func (r *GormRecordRepository) BillProviders(ctx context.Context, user, month string) ([]string, error) {
	var providers []string
	err := r.db.WithContext(ctx).Model(&models.RecordModel{}).
		Where(`"user" = ? AND type = ? AND ay = ? AND kurum <> ''`, user, expense.RecordTypeFatura, month).
		Pluck("kurum", &providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

// SumForUser returns the user's total spend, scoped to a month when given
func (r *GormRecordRepository) SumForUser(ctx context.Context, user, month string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	query := r.db.WithContext(ctx).Model(&models.RecordModel{}).
		Select("SUM(tutar)").
		Where(`"user" = ?`, user)
	if month != "" {
		query = query.Where("ay = ?", month)
	}
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumByCategory returns the user's per-category totals
func (r *GormRecordRepository) SumByCategory(ctx context.Context, user, month string) ([]expense.CategoryTotal, error) {
	var totals []expense.CategoryTotal
	query := r.db.WithContext(ctx).Model(&models.RecordModel{}).
		Select("kategori, SUM(tutar) AS toplam, COUNT(*) AS adet").
		Where(`"user" = ?`, user)
	if month != "" {
		query = query.Where("ay = ?", month)
	}
	err := query.Group("kategori").
		Order("toplam DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// FindUnpaidBills returns up to limit unpaid bill records, earliest due
// date first
func (r *GormRecordRepository) FindUnpaidBills(ctx context.Context, user, month string, limit int) ([]expense.Record, error) {
	var recordModels []models.RecordModel
	query := r.db.WithContext(ctx).Model(&models.RecordModel{}).
		Where(`"user" = ? AND type = ? AND durum <> ?`,
			user, expense.RecordTypeFatura, expense.PaymentStatePaid)
	if month != "" {
		query = query.Where("ay = ?", month)
	}
	err := query.Order("son_odeme ASC").
		Limit(limit).
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindActiveInstalments returns up to limit credit card records carrying
// an instalment plan
func (r *GormRecordRepository) FindActiveInstalments(ctx context.Context, user, month string, limit int) ([]expense.Record, error) {
	var recordModels []models.RecordModel
	query := r.db.WithContext(ctx).Model(&models.RecordModel{}).
		Where(`"user" = ? AND type = ? AND taksit_sayisi > 0`,
			user, expense.RecordTypeKrediKarti)
	if month != "" {
		query = query.Where("ay = ?", month)
	}
	err := query.Order("id DESC").
		Limit(limit).
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindRecent returns the user's most recent records for the month
func (r *GormRecordRepository) FindRecent(ctx context.Context, user, month string, limit int) ([]expense.Record, error) {
	var recordModels []models.RecordModel
	query := r.db.WithContext(ctx).Model(&models.RecordModel{}).
		Where(`"user" = ?`, user)
	if month != "" {
		query = query.Where("ay = ?", month)
	}
	err := query.Order("id DESC").Limit(limit).Find(&recordModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

func toDomainRecords(recordModels []models.RecordModel) []expense.Record {
	records := make([]expense.Record, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records
}
