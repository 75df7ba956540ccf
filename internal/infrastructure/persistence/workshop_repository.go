package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mazzel/portal/internal/domain/shared"
	"github.com/mazzel/portal/internal/domain/workshop"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements workshop.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uint) (*workshop.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all customers ordered by name
func (r *GormCustomerRepository) FindAll(ctx context.Context) ([]*workshop.Customer, error) {
	var customerModels []models.CustomerModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&customerModels).Error; err != nil {
		return nil, err
	}
	customers := make([]*workshop.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers, nil
}

// Save inserts or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *workshop.Customer) error {
	model := &models.CustomerModel{}
	model.FromDomain(customer)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	customer.ID = model.ID
	return nil
}

// Delete removes a customer by ID
func (r *GormCustomerRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormMaterialRepository implements workshop.MaterialRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// FindByID finds a material by ID
func (r *GormMaterialRepository) FindByID(ctx context.Context, id uint) (*workshop.Material, error) {
	var model models.MaterialModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all materials, optionally filtered by category
func (r *GormMaterialRepository) FindAll(ctx context.Context, category string) ([]*workshop.Material, error) {
	var materialModels []models.MaterialModel
	query := r.db.WithContext(ctx).Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&materialModels).Error; err != nil {
		return nil, err
	}
	materials := make([]*workshop.Material, len(materialModels))
	for i := range materialModels {
		materials[i] = materialModels[i].ToDomain()
	}
	return materials, nil
}

// Categories returns the distinct non-empty material categories
func (r *GormMaterialRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.MaterialModel{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Save inserts or updates a material
func (r *GormMaterialRepository) Save(ctx context.Context, material *workshop.Material) error {
	model := &models.MaterialModel{}
	model.FromDomain(material)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	material.ID = model.ID
	return nil
}

// Delete removes a material by ID
func (r *GormMaterialRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.MaterialModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormNestingProjectRepository implements workshop.NestingProjectRepository using GORM
type GormNestingProjectRepository struct {
	db *gorm.DB
}

// NewGormNestingProjectRepository creates a new GormNestingProjectRepository
func NewGormNestingProjectRepository(db *gorm.DB) *GormNestingProjectRepository {
	return &GormNestingProjectRepository{db: db}
}

// FindByID finds a nesting project by ID
func (r *GormNestingProjectRepository) FindByID(ctx context.Context, id uint) (*workshop.NestingProject, error) {
	var model models.NestingProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all nesting projects, newest first
func (r *GormNestingProjectRepository) FindAll(ctx context.Context) ([]*workshop.NestingProject, error) {
	var projectModels []models.NestingProjectModel
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&projectModels).Error; err != nil {
		return nil, err
	}
	projects := make([]*workshop.NestingProject, len(projectModels))
	for i := range projectModels {
		projects[i] = projectModels[i].ToDomain()
	}
	return projects, nil
}

// Save inserts or updates a nesting project
func (r *GormNestingProjectRepository) Save(ctx context.Context, project *workshop.NestingProject) error {
	model := &models.NestingProjectModel{}
	model.FromDomain(project)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	project.ID = model.ID
	return nil
}

// Delete removes a nesting project by ID
func (r *GormNestingProjectRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.NestingProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
