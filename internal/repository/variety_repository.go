package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"orderpad-service/internal/models"
)

// Cache TTL constants for master data
const (
	MasterDataCacheTTL = 15 * time.Minute // registries change rarely

	cacheKeyPrefix = "orderpad:"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// VarietyRepository handles variety data operations
type VarietyRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewVarietyRepository creates a new variety repository with optional Redis caching
func NewVarietyRepository(db *gorm.DB, redisClient *redis.Client) *VarietyRepository {
	return &VarietyRepository{db: db, redis: redisClient}
}

func varietyListCacheKey() string {
	return cacheKeyPrefix + "varieties:list"
}

func (r *VarietyRepository) invalidateCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, varietyListCacheKey()).Err()
}

// List retrieves all varieties ordered by name (with caching)
func (r *VarietyRepository) List(ctx context.Context) ([]models.Variety, error) {
	if r.redis != nil {
		val, err := r.redis.Get(ctx, varietyListCacheKey()).Result()
		if err == nil {
			var varieties []models.Variety
			if err := json.Unmarshal([]byte(val), &varieties); err == nil {
				return varieties, nil
			}
		}
	}

	var varieties []models.Variety
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&varieties).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(varieties); err == nil {
			r.redis.Set(ctx, varietyListCacheKey(), data, MasterDataCacheTTL)
		}
	}

	return varieties, nil
}

// GetByID retrieves a variety by ID
func (r *VarietyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Variety, error) {
	var variety models.Variety
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&variety).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &variety, nil
}

// Save creates a variety or updates an existing one
func (r *VarietyRepository) Save(ctx context.Context, variety *models.Variety) error {
	err := r.db.WithContext(ctx).Save(variety).Error
	if err == nil {
		r.invalidateCache(ctx)
	}
	return err
}

// Delete soft deletes a variety
func (r *VarietyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Variety{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateCache(ctx)
	return nil
}

// RedisHealth returns the health status of the Redis connection
func (r *VarietyRepository) RedisHealth(ctx context.Context) error {
	if r.redis == nil {
		return fmt.Errorf("redis not configured")
	}
	return r.redis.Ping(ctx).Err()
}
