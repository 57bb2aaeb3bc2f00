package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyJob = "seo:job:%s"

// RedisStore keeps jobs as JSON values that expire after the configured TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient connects to a Redis server at addr
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func jobKey(id string) string {
	return fmt.Sprintf(redisKeyJob, id)
}

func (r *RedisStore) Put(ctx context.Context, id string, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job %s: %w", id, err)
	}
	if err := r.client.Set(ctx, jobKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failure for job %s: %w", id, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (Job, bool, error) {
	data, err := r.client.Get(ctx, jobKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Job{}, false, nil
	}
	if err != nil {
		return Job{}, false, fmt.Errorf("redis get failure for job %s: %w", id, err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, false, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return job, true, nil
}

// Ping checks connectivity
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
