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

// ColorRepository handles the global color palette
type ColorRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewColorRepository creates a new color repository with optional Redis caching
func NewColorRepository(db *gorm.DB, redisClient *redis.Client) *ColorRepository {
	return &ColorRepository{db: db, redis: redisClient}
}

func colorListCacheKey() string {
	return cacheKeyPrefix + "colors:list"
}

func (r *ColorRepository) invalidateCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, colorListCacheKey()).Err()
}

// List retrieves all colors ordered by name (with caching)
func (r *ColorRepository) List(ctx context.Context) ([]models.Color, error) {
	if r.redis != nil {
		val, err := r.redis.Get(ctx, colorListCacheKey()).Result()
		if err == nil {
			var colors []models.Color
			if err := json.Unmarshal([]byte(val), &colors); err == nil {
				return colors, nil
			}
		}
	}

	var colors []models.Color
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(colors); err == nil {
			r.redis.Set(ctx, colorListCacheKey(), data, MasterDataCacheTTL)
		}
	}

	return colors, nil
}

// Save creates a color or updates an existing one. Duplicate names are
// rejected by the unique index on name.
func (r *ColorRepository) Save(ctx context.Context, color *models.Color) error {
	err := r.db.WithContext(ctx).Save(color).Error
	if err == nil {
		r.invalidateCache(ctx)
	}
	return err
}

// Delete removes a color from the palette. The row is gone for good, so the
// same name can be added again later.
func (r *ColorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Color{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateCache(ctx)
	return nil
}

// ErrDuplicateColor reports whether the given error is a unique index violation
func ErrDuplicateColor(err error) bool {
	return err != nil && errors.Is(err, gorm.ErrDuplicatedKey)
}
