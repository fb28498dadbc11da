package repository

import (
	"context"

	"github.com/google/uuid"

	"orderpad-service/internal/models"
)

// VarietyRepositoryInterface defines the variety registry operations
type VarietyRepositoryInterface interface {
	List(ctx context.Context) ([]models.Variety, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Variety, error)
	Save(ctx context.Context, variety *models.Variety) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemRepositoryInterface defines the item registry operations
type ItemRepositoryInterface interface {
	List(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Save(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerRepositoryInterface defines the customer registry operations
type CustomerRepositoryInterface interface {
	List(ctx context.Context) ([]models.Customer, error)
	Search(ctx context.Context, query string) ([]models.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Save(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ColorRepositoryInterface defines the color palette operations
type ColorRepositoryInterface interface {
	List(ctx context.Context) ([]models.Color, error)
	Save(ctx context.Context, color *models.Color) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepositoryInterface defines the order batch operations
type OrderRepositoryInterface interface {
	CreateBatch(ctx context.Context, order *models.Order) error
	GetBatch(ctx context.Context, batchID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, int64, error)
}

// Compile-time interface checks
var (
	_ VarietyRepositoryInterface  = (*VarietyRepository)(nil)
	_ ItemRepositoryInterface     = (*ItemRepository)(nil)
	_ CustomerRepositoryInterface = (*CustomerRepository)(nil)
	_ ColorRepositoryInterface    = (*ColorRepository)(nil)
	_ OrderRepositoryInterface    = (*OrderRepository)(nil)
)
