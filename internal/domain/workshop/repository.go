package workshop

import "context"

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindAll(ctx context.Context) ([]*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uint) error
}

// MaterialRepository defines the interface for material persistence
type MaterialRepository interface {
	FindByID(ctx context.Context, id uint) (*Material, error)
	FindAll(ctx context.Context, category string) ([]*Material, error)
	Categories(ctx context.Context) ([]string, error)
	Save(ctx context.Context, material *Material) error
	Delete(ctx context.Context, id uint) error
}

// NestingProjectRepository defines the interface for nesting project persistence
type NestingProjectRepository interface {
	FindByID(ctx context.Context, id uint) (*NestingProject, error)
	FindAll(ctx context.Context) ([]*NestingProject, error)
	Save(ctx context.Context, project *NestingProject) error
	Delete(ctx context.Context, id uint) error
}
