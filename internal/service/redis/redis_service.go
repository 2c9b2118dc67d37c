package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

type Service struct {
	client *redis.Client
}

var _ ServiceInterface = (*Service)(nil)

func NewRedisService(ctx context.Context, config RedisConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("❌ Failed to connect to Redis: %v", err)
		return nil, err
	}

	log.Printf("✅ Connected to Redis at %s:%s", config.Host, config.Port)
	return &Service{client: client}, nil
}

func (r *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.client.Set(ctx, key, jsonValue, ttl).Err()
}

func (r *Service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", ErrCacheMiss, key)
		}
		return fmt.Errorf("failed to get value: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (r *Service) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (r *Service) CacheProduct(ctx context.Context, product entity.Product, ttl time.Duration) error {
	return r.Set(ctx, productKey(product.ID), product, ttl)
}

func (r *Service) GetProduct(ctx context.Context, id string) (entity.Product, error) {
	var product entity.Product
	if err := r.Get(ctx, productKey(id), &product); err != nil {
		return entity.Product{}, err
	}
	return product, nil
}

func (r *Service) InvalidateProduct(ctx context.Context, id string) error {
	return r.Delete(ctx, productKey(id))
}

func (r *Service) Close() error {
	return r.client.Close()
}

func (r *Service) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
