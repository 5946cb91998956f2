package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/P4ndro/Intervia/internal/model"
)

// JobCache caches the formatted job listing per type filter.
type JobCache interface {
	SetList(ctx context.Context, jobType model.JobType, cards []model.JobCard) error
	GetList(ctx context.Context, jobType model.JobType) ([]model.JobCard, error)
	Invalidate(ctx context.Context) error
}

type jobCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewJobCache(client *redis.Client) JobCache {
	return &jobCache{
		client: client,
		ttl:    time.Minute,
	}
}

func listKey(jobType model.JobType) string {
	if jobType == "" {
		return "jobs:list:all"
	}
	return "jobs:list:" + string(jobType)
}

func (c *jobCache) SetList(ctx context.Context, jobType model.JobType, cards []model.JobCard) error {
	data, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey(jobType), data, c.ttl).Err()
}

func (c *jobCache) GetList(ctx context.Context, jobType model.JobType) ([]model.JobCard, error) {
	data, err := c.client.Get(ctx, listKey(jobType)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cards []model.JobCard
	if err := json.Unmarshal([]byte(data), &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *jobCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, "jobs:list:all",
		"jobs:list:"+string(model.JobTypePractice),
		"jobs:list:"+string(model.JobTypeReal)).Err()
}
