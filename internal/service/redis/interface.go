package redis

import (
	"context"
	"time"

	"github.com/dinerozz/datahive-backend/internal/entity"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ServiceInterface interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error

	CacheProduct(ctx context.Context, product entity.Product, ttl time.Duration) error
	GetProduct(ctx context.Context, id string) (entity.Product, error)
	InvalidateProduct(ctx context.Context, id string) error

	Health(ctx context.Context) error
	Close() error
}
