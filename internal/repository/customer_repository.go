package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"orderpad-service/internal/models"
)

// CustomerRepository handles customer data operations
type CustomerRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewCustomerRepository creates a new customer repository with optional Redis caching
func NewCustomerRepository(db *gorm.DB, redisClient *redis.Client) *CustomerRepository {
	return &CustomerRepository{db: db, redis: redisClient}
}

func customerListCacheKey() string {
	return cacheKeyPrefix + "customers:list"
}

func (r *CustomerRepository) invalidateCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, customerListCacheKey()).Err()
}

// List retrieves all customers ordered by name (with caching)
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	if r.redis != nil {
		val, err := r.redis.Get(ctx, customerListCacheKey()).Result()
		if err == nil {
			var customers []models.Customer
			if err := json.Unmarshal([]byte(val), &customers); err == nil {
				return customers, nil
			}
		}
	}

	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(customers); err == nil {
			r.redis.Set(ctx, customerListCacheKey(), data, MasterDataCacheTTL)
		}
	}

	return customers, nil
}

// Search retrieves customers whose name matches the given fragment
func (r *CustomerRepository) Search(ctx context.Context, query string) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// Save creates a customer or updates an existing one
func (r *CustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	err := r.db.WithContext(ctx).Save(customer).Error
	if err == nil {
		r.invalidateCache(ctx)
	}
	return err
}

// Delete soft deletes a customer
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateCache(ctx)
	return nil
}
