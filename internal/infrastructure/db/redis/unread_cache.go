package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

const unreadKeyPrefix = "unread:"

// UnreadCache caches per-user unread message counts in Redis. It is a pure
// read-through cache: any backend failure is logged and reported as a miss,
// so messaging keeps working when Redis is down.
type UnreadCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewUnreadCache returns an UnreadCache with the given entry TTL.
func NewUnreadCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *UnreadCache {
	return &UnreadCache{client: client, ttl: ttl, logger: logger}
}

var _ ports.UnreadCache = (*UnreadCache)(nil)

func unreadKey(userID string) string {
	return unreadKeyPrefix + userID
}

// Get returns the cached count and whether the entry was present.
func (c *UnreadCache) Get(ctx context.Context, userID string) (int64, bool) {
	count, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("unread cache get failed")
		return 0, false
	}
	return count, true
}

// Set stores the count for the configured TTL.
func (c *UnreadCache) Set(ctx context.Context, userID string, count int64) {
	if err := c.client.Set(ctx, unreadKey(userID), count, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("unread cache set failed")
	}
}

// Invalidate drops the cached counts for the given users. Called after any
// write that changes what they have unread.
func (c *UnreadCache) Invalidate(ctx context.Context, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, unreadKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Str("keys", fmt.Sprint(keys)).Msg("unread cache invalidate failed")
	}
}
