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

// ItemRepository handles item data operations
type ItemRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewItemRepository creates a new item repository with optional Redis caching
func NewItemRepository(db *gorm.DB, redisClient *redis.Client) *ItemRepository {
	return &ItemRepository{db: db, redis: redisClient}
}

func itemListCacheKey() string {
	return cacheKeyPrefix + "items:list"
}

func (r *ItemRepository) invalidateCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, itemListCacheKey()).Err()
}

// List retrieves all items in insertion order (with caching).
// Insertion order drives the row order of the entry grid, so it is
// deliberately created_at and not name.
func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	if r.redis != nil {
		val, err := r.redis.Get(ctx, itemListCacheKey()).Result()
		if err == nil {
			var items []models.Item
			if err := json.Unmarshal([]byte(val), &items); err == nil {
				return items, nil
			}
		}
	}

	var items []models.Item
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(items); err == nil {
			r.redis.Set(ctx, itemListCacheKey(), data, MasterDataCacheTTL)
		}
	}

	return items, nil
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates an item or updates an existing one
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	err := r.db.WithContext(ctx).Save(item).Error
	if err == nil {
		r.invalidateCache(ctx)
	}
	return err
}

// Delete soft deletes an item
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateCache(ctx)
	return nil
}
