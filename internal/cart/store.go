package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	
	"github.com/lithammer/shortuuid/v4"
	"github.com/redis/go-redis/v9"
)

var ErrCartNotFound = errors.New("cart not found")

type Store interface {
	Create(ctx context.Context) (*Cart, error)
	Get(ctx context.Context, id string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps each cart as a JSON document. Every read or write pushes
// the expiry forward by ttl.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		redis: redisClient,
		ttl:   ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context) (*Cart, error) {
	c := New(shortuuid.New())
	if err := s.Save(ctx, c); err != nil {
		return nil, err
	}
	
	return c, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Cart, error) {
	data, err := s.redis.GetEx(ctx, cartKey(id), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart %s: %w", id, err)
	}
	
	c := New(id)
	if err = json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}
	
	if c.Items == nil {
		c.Items = []Line{}
	}
	
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", cart.ID, err)
	}
	
	if err = s.redis.Set(ctx, cartKey(cart.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cart.ID, err)
	}
	
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, cartKey(id)).Err()
}

func cartKey(id string) string {
	return "cart:" + id
}
