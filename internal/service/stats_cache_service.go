package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stats-impact-backend/internal/stats"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached dashboard payloads
	RedisDashboardKeyPrefix = "stats:dashboard:"

	// Timeout for individual Redis operations
	redisCacheTimeout = 5 * time.Second

	// Batch size for SCAN during invalidation
	invalidateScanCount = 500
)

// StatsCacheService caches computed dashboard payloads in Redis. A cache miss
// is never an error: when Redis is down the caller recomputes from Postgres
// and the service only logs the failure.
type StatsCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewStatsCacheService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *StatsCacheService {
	return &StatsCacheService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// DashboardKey derives the cache key from the dimensions that change the
// dashboard payload. The sector comes in already pinned by the scope rules,
// so two users with the same effective scope share one entry.
func (s *StatsCacheService) DashboardKey(f stats.Filter) string {
	from, to := "", ""
	if f.DateFrom != nil {
		from = f.DateFrom.Format("2006-01-02")
	}
	if f.DateTo != nil {
		to = f.DateTo.Format("2006-01-02")
	}
	return fmt.Sprintf("%s%s:%s:%s:%d", RedisDashboardKeyPrefix, f.Secteur, from, to, f.AtelierID)
}

// Get loads a cached payload into dest. Returns false on miss.
func (s *StatsCacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read stats cache %s: %+v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		s.log.Warnf("Failed to decode stats cache %s: %+v", key, err)
		return false
	}
	return true
}

// Set stores a payload under key with the configured TTL.
func (s *StatsCacheService) Set(ctx context.Context, key string, value interface{}) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warnf("Failed to encode stats cache %s: %+v", key, err)
		return
	}

	if err := s.redisClient.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to write stats cache %s: %+v", key, err)
	}
}

// InvalidateDashboard drops every cached dashboard entry. Called after writes
// that change the underlying figures (participant updates and deletions).
func (s *StatsCacheService) InvalidateDashboard(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	iter := s.redisClient.Scan(ctx, 0, RedisDashboardKeyPrefix+"*", invalidateScanCount).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warnf("Failed to scan stats cache keys: %+v", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to invalidate stats cache: %+v", err)
		return
	}
	s.log.Debugf("Invalidated %d cached dashboard entries", len(keys))
}
