package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/orderentry"
)

// DraftKeyPrefix namespaces draft documents in redis. One draft per device.
const DraftKeyPrefix = "orderpad:draft:"

// DraftService persists in-progress grid state per device. Drafting is
// best-effort: save errors are logged and swallowed, corrupt stored
// documents are discarded and reported as absent. Losing a draft must never
// block entering or submitting an order.
type DraftService struct {
	redis  *redis.Client
	logger *logrus.Logger
}

// NewDraftService creates a new draft service. A nil client disables
// persistence; every operation becomes a no-op.
func NewDraftService(redisClient *redis.Client, logger *logrus.Logger) *DraftService {
	return &DraftService{redis: redisClient, logger: logger}
}

// Enabled reports whether a draft backend is configured.
func (s *DraftService) Enabled() bool {
	return s.redis != nil
}

func draftKey(deviceID string) string {
	return DraftKeyPrefix + deviceID
}

// Save stores the draft document for a device, stamping SavedAt.
func (s *DraftService) Save(ctx context.Context, deviceID string, draft *orderentry.Draft) {
	if s.redis == nil || draft == nil {
		return
	}
	draft.SavedAt = time.Now().UTC()
	data, err := orderentry.EncodeDraft(draft)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode draft")
		return
	}
	if err := s.redis.Set(ctx, draftKey(deviceID), data, 0).Err(); err != nil {
		s.logger.WithError(err).WithField("device_id", deviceID).Warn("Failed to save draft")
	}
}

// Restore loads the draft for a device. Absent and corrupt documents both
// come back as nil; corrupt ones are deleted on the way.
func (s *DraftService) Restore(ctx context.Context, deviceID string) *orderentry.Draft {
	if s.redis == nil {
		return nil
	}
	val, err := s.redis.Get(ctx, draftKey(deviceID)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.WithError(err).WithField("device_id", deviceID).Warn("Failed to read draft")
		}
		return nil
	}
	draft, err := orderentry.DecodeDraft([]byte(val))
	if err != nil {
		s.logger.WithError(err).WithField("device_id", deviceID).Warn("Discarding corrupt draft")
		s.Clear(ctx, deviceID)
		return nil
	}
	return draft
}

// Clear removes the draft for a device.
func (s *DraftService) Clear(ctx context.Context, deviceID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, draftKey(deviceID)).Err(); err != nil {
		s.logger.WithError(err).WithField("device_id", deviceID).Warn("Failed to clear draft")
	}
}
