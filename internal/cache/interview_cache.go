package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/P4ndro/Intervia/internal/model"
)

// InterviewCache is a read-through cache for interview aggregates. Writers
// must invalidate after every mutation.
type InterviewCache interface {
	Set(ctx context.Context, iv *model.Interview) error
	Get(ctx context.Context, id string) (*model.Interview, error)
	Delete(ctx context.Context, id string) error
}

type interviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewInterviewCache(client *redis.Client) InterviewCache {
	return &interviewCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *interviewCache) Set(ctx context.Context, iv *model.Interview) error {
	data, err := json.Marshal(iv)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "interview:"+iv.ID, data, c.ttl).Err()
}

func (c *interviewCache) Get(ctx context.Context, id string) (*model.Interview, error) {
	data, err := c.client.Get(ctx, "interview:"+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var iv model.Interview
	if err := json.Unmarshal([]byte(data), &iv); err != nil {
		return nil, err
	}
	return &iv, nil
}

func (c *interviewCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "interview:"+id).Err()
}
