package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/config"
	"github.com/imon025/quizi-backend/internal/model"
)

// PoolCache caches a quiz's full question pool so attempt starts under load
// do not hammer the database. A miss or decode failure reports ok=false and
// the caller falls back to the repository.
type PoolCache interface {
	Get(ctx context.Context, quizID uuid.UUID) ([]model.Question, bool)
	Set(ctx context.Context, quizID uuid.UUID, pool []model.Question)
	Invalidate(ctx context.Context, quizID uuid.UUID)
}

// RedisPoolCache stores pools as JSON blobs keyed per quiz. Entries have no
// TTL; question mutations invalidate them explicitly.
type RedisPoolCache struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisPoolCache creates a Redis-backed question pool cache.
func NewRedisPoolCache(rdb *redis.Client, log zerolog.Logger) *RedisPoolCache {
	return &RedisPoolCache{
		rdb: rdb,
		log: log.With().Str("component", "pool_cache").Logger(),
	}
}

func (c *RedisPoolCache) Get(ctx context.Context, quizID uuid.UUID) ([]model.Question, bool) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.QuizPoolKey(quizID.String())).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("quiz_id", quizID.String()).Msg("pool cache read failed")
		}
		return nil, false
	}
	var pool []model.Question
	if err := json.Unmarshal(raw, &pool); err != nil {
		c.log.Warn().Err(err).Str("quiz_id", quizID.String()).Msg("pool cache entry corrupt, dropping")
		c.Invalidate(ctx, quizID)
		return nil, false
	}
	return pool, true
}

func (c *RedisPoolCache) Set(ctx context.Context, quizID uuid.UUID, pool []model.Question) {
	raw, err := json.Marshal(pool)
	if err != nil {
		c.log.Error().Err(err).Str("quiz_id", quizID.String()).Msg("failed to encode pool")
		return
	}
	if err := c.rdb.Set(ctx, config.CacheKey.QuizPoolKey(quizID.String()), raw, 0).Err(); err != nil {
		c.log.Warn().Err(err).Str("quiz_id", quizID.String()).Msg("pool cache write failed")
	}
}

func (c *RedisPoolCache) Invalidate(ctx context.Context, quizID uuid.UUID) {
	if err := c.rdb.Del(ctx, config.CacheKey.QuizPoolKey(quizID.String())).Err(); err != nil {
		c.log.Warn().Err(err).Str("quiz_id", quizID.String()).Msg("pool cache invalidation failed")
	}
}
