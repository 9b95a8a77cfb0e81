package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"
	"github.com/redis/go-redis/v9"
)

// TaskCache holds read results between mutations. A nil result with a nil
// error is a miss.
type TaskCache interface {
	GetTaskList(ctx context.Context, completed *bool) ([]models.Task, error)
	SetTaskList(ctx context.Context, completed *bool, tasks []models.Task, ttl time.Duration) error

	GetStats(ctx context.Context) (*models.Stats, error)
	SetStats(ctx context.Context, stats models.Stats, ttl time.Duration) error

	Invalidate(ctx context.Context) error
}

type RedisTaskCache struct {
	rdb *redis.Client
}

func NewRedisTaskCache(rdb *redis.Client) *RedisTaskCache {
	return &RedisTaskCache{rdb: rdb}
}

const statsKey = "tasks:stats"

func taskListKey(completed *bool) string {
	return "tasks:list:" + models.CacheKey(completed)
}

var allKeys = []string{
	taskListKey(nil),
	taskListKey(models.FilterCompleted.Completed()),
	taskListKey(models.FilterUncompleted.Completed()),
	statsKey,
}

func (r *RedisTaskCache) GetTaskList(ctx context.Context, completed *bool) ([]models.Task, error) {
	val, err := r.rdb.Get(ctx, taskListKey(completed)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tasks := []models.Task{}
	if err := json.Unmarshal(val, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *RedisTaskCache) SetTaskList(
	ctx context.Context,
	completed *bool,
	tasks []models.Task,
	ttl time.Duration,
) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, taskListKey(completed), data, ttl).Err()
}

func (r *RedisTaskCache) GetStats(ctx context.Context) (*models.Stats, error) {
	val, err := r.rdb.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats models.Stats
	if err := json.Unmarshal(val, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *RedisTaskCache) SetStats(ctx context.Context, stats models.Stats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, statsKey, data, ttl).Err()
}

func (r *RedisTaskCache) Invalidate(ctx context.Context) error {
	return r.rdb.Del(ctx, allKeys...).Err()
}

// NopTaskCache always misses. Used when redis is not configured.
type NopTaskCache struct{}

func (NopTaskCache) GetTaskList(context.Context, *bool) ([]models.Task, error) { return nil, nil }

func (NopTaskCache) SetTaskList(context.Context, *bool, []models.Task, time.Duration) error {
	return nil
}

func (NopTaskCache) GetStats(context.Context) (*models.Stats, error) { return nil, nil }

func (NopTaskCache) SetStats(context.Context, models.Stats, time.Duration) error { return nil }

func (NopTaskCache) Invalidate(context.Context) error { return nil }
