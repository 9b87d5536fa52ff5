package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// recordScript prunes, counts and records in one atomic step.
// Scores are unix microseconds; ZREMRANGEBYSCORE is inclusive, so a
// timestamp exactly one window old is removed.
var recordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local n = tonumber(ARGV[4])
local member = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count + n <= limit then
	for i = 1, n do
		redis.call('ZADD', key, now, member .. ':' .. i)
	end
	count = count + n
	allowed = 1
end
if count > 0 then
	redis.call('PEXPIRE', key, math.ceil(window / 1000))
end

local oldest = 0
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if #first == 2 then
	oldest = tonumber(first[2])
end
return {allowed, count, oldest}
`)

// RedisStore implements Store on Redis sorted sets. Keys carry a TTL equal
// to the window, so callers that stop sending requests leave nothing behind.
// Safe to share between processes.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the namespace prepended to every key.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

// NewRedisStore creates a sliding window store backed by Redis.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "ratelimit",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordIfAllowed implements Store.
func (s *RedisStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit, n int) (bool, int64, time.Time, error) {
	reply, err := recordScript.Run(ctx, s.client, []string{s.key(key)},
		now.UnixMicro(),
		window.Microseconds(),
		limit,
		n,
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return false, 0, time.Time{}, err
	}
	if len(reply) != 3 {
		return false, 0, time.Time{}, ErrUnexpectedReply
	}

	return reply[0] == 1, reply[1], microsToTime(reply[2]), nil
}

// CountInWindow implements Store.
func (s *RedisStore) CountInWindow(ctx context.Context, key string, now time.Time, window time.Duration) (int64, time.Time, error) {
	k := s.key(key)
	minScore := "(" + strconv.FormatInt(now.Add(-window).UnixMicro(), 10)

	count, err := s.client.ZCount(ctx, k, minScore, "+inf").Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if count == 0 {
		return 0, time.Time{}, nil
	}

	first, err := s.client.ZRangeByScoreWithScores(ctx, k, &redis.ZRangeBy{
		Min:   minScore,
		Max:   "+inf",
		Count: 1,
	}).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(first) == 0 {
		return count, time.Time{}, nil
	}

	return count, microsToTime(int64(first[0].Score)), nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (s *RedisStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func microsToTime(us int64) time.Time {
	if us <= 0 {
		return time.Time{}
	}
	return time.UnixMicro(us)
}
