// Package cache keeps a copy of the public job list so the browse endpoint
// does not hit the database on every page load.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	jobListKey    = "jobboard:job-list"
	generationKey = "jobboard:job-list:gen"
)

// ErrStale is returned by Set when the list was invalidated after the
// caller read its generation. Nothing is stored.
var ErrStale = errors.New("job list changed since it was loaded")

// JobList caches the visible job list. Get reports ok=false on a miss.
//
// Fill with Generation, then load, then Set with that generation: a Set
// racing an Invalidate is refused instead of caching the old list.
type JobList interface {
	Get(ctx context.Context) (jobs []models.Job, ok bool, err error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, generation int64, jobs []models.Job) error
	Invalidate(ctx context.Context) error
}

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context) ([]models.Job, bool, error) {
	raw, err := r.rdb.Get(ctx, jobListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var jobs []models.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		// a corrupt entry is treated as a miss and overwritten on the next Set
		return nil, false, nil
	}
	return jobs, true, nil
}

// setIfGeneration stores ARGV[2] under KEYS[2] only while KEYS[1] still
// holds generation ARGV[1]. ARGV[3] is the ttl in ms, 0 for none.
var setIfGeneration = redis.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

func (r *Redis) Generation(ctx context.Context) (int64, error) {
	gen, err := r.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

func (r *Redis) Set(ctx context.Context, generation int64, jobs []models.Job) error {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("encode job list: %w", err)
	}
	stored, err := setIfGeneration.Run(ctx, r.rdb,
		[]string{generationKey, jobListKey},
		strconv.FormatInt(generation, 10), raw, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	if stored == 0 {
		return ErrStale
	}
	return nil
}

// Invalidate drops the list and bumps the generation in one transaction.
func (r *Redis) Invalidate(ctx context.Context) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, jobListKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

// Nop never holds anything. Used when REDIS_URL is unset.
type Nop struct{}

func (Nop) Get(context.Context) ([]models.Job, bool, error) { return nil, false, nil }
func (Nop) Generation(context.Context) (int64, error)       { return 0, nil }
func (Nop) Set(context.Context, int64, []models.Job) error  { return nil }
func (Nop) Invalidate(context.Context) error                { return nil }
