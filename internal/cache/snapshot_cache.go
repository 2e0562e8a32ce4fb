package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"trip-roster-api/internal/domain"
)

// SnapshotCache keeps the full participant snapshot of a trip in Redis.
// Every Invalidate bumps a per-trip version, and Set only writes when the
// version it was given is still current, so a load that read the database
// before an invalidation cannot put its rows back.
// A nil client turns every call into a miss.
type SnapshotCache interface {
	Get(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, bool)
	Version(ctx context.Context, tripID uuid.UUID) int64
	Set(ctx context.Context, tripID uuid.UUID, version int64, participants []*domain.Participant)
	Invalidate(ctx context.Context, tripID uuid.UUID)
}

// versionTTL outlives any in-flight load; an expired version reads as 0,
// which only ever rejects a pending Set
const versionTTL = 24 * time.Hour

var errStaleSnapshot = errors.New("snapshot version changed")

type redisSnapshotCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache creates a Redis backed SnapshotCache
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) SnapshotCache {
	return &redisSnapshotCache{redis: client, ttl: ttl, logger: logger}
}

func snapshotKey(tripID uuid.UUID) string {
	return fmt.Sprintf("trip:snapshot:%s", tripID.String())
}

func versionKey(tripID uuid.UUID) string {
	return fmt.Sprintf("trip:snapshot:version:%s", tripID.String())
}

func (c *redisSnapshotCache) Get(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, bool) {
	if c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, snapshotKey(tripID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to read snapshot cache", zap.String("trip_id", tripID.String()), zap.Error(err))
		}
		return nil, false
	}

	var participants []*domain.Participant
	if err := json.Unmarshal(data, &participants); err != nil {
		c.logger.Warn("discarding unreadable snapshot cache entry", zap.String("trip_id", tripID.String()), zap.Error(err))
		c.Invalidate(ctx, tripID)
		return nil, false
	}
	return participants, true
}

// Version returns the trip's invalidation counter. Read it before loading
// from the database and hand it to Set.
func (c *redisSnapshotCache) Version(ctx context.Context, tripID uuid.UUID) int64 {
	if c.redis == nil {
		return 0
	}
	version, err := c.redis.Get(ctx, versionKey(tripID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("failed to read snapshot version", zap.String("trip_id", tripID.String()), zap.Error(err))
	}
	return version
}

func (c *redisSnapshotCache) Set(ctx context.Context, tripID uuid.UUID, version int64, participants []*domain.Participant) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(participants)
	if err != nil {
		c.logger.Error("failed to encode snapshot", zap.String("trip_id", tripID.String()), zap.Error(err))
		return
	}

	vKey := versionKey(tripID)
	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleSnapshot
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, snapshotKey(tripID), data, c.ttl)
			return nil
		})
		return err
	}, vKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleSnapshot), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("skipping stale snapshot write", zap.String("trip_id", tripID.String()), zap.Int64("version", version))
	default:
		c.logger.Warn("failed to write snapshot cache", zap.String("trip_id", tripID.String()), zap.Error(err))
	}
}

func (c *redisSnapshotCache) Invalidate(ctx context.Context, tripID uuid.UUID) {
	if c.redis == nil {
		return
	}
	vKey := versionKey(tripID)
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vKey)
		pipe.Expire(ctx, vKey, versionTTL)
		pipe.Del(ctx, snapshotKey(tripID))
		return nil
	})
	if err != nil {
		c.logger.Error("failed to invalidate snapshot cache", zap.String("trip_id", tripID.String()), zap.Error(err))
	}
}
