package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderpad-service/internal/models"
)

// ErrDuplicateBatch is returned when a batch with the same ID was already stored
var ErrDuplicateBatch = errors.New("order batch already submitted")

// OrderRepository handles order batch persistence
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateBatch stores an order batch together with its rows in a single
// transaction. A batch ID that already exists returns ErrDuplicateBatch
// without touching the stored rows, which makes retried submissions safe.
func (r *OrderRepository) CreateBatch(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for existing batch: %w", err)
		}
		if count > 0 {
			return ErrDuplicateBatch
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order batch: %w", err)
		}
		return nil
	})
}

// GetBatch retrieves an order batch with its rows in entry order
func (r *OrderRepository) GetBatch(ctx context.Context, batchID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", batchID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListFilter represents filter options for listing order batches
type ListFilter struct {
	Customer string // exact customer name
	Date     string // order date as entered (YYYY-MM-DD)
	Market   string
	Limit    int
	Offset   int
}

// List retrieves order batches with filters and pagination, newest first
func (r *OrderRepository) List(ctx context.Context, filter ListFilter) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	if filter.Customer != "" {
		query = query.Where("customer = ?", filter.Customer)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.Market != "" {
		query = query.Where("market = ?", filter.Market)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
