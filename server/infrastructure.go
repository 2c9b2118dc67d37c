package server

import (
	"context"
	"log"
	"log/slog"

	"github.com/dinerozz/datahive-backend/config"
	"github.com/dinerozz/datahive-backend/internal/ledger"
	"github.com/dinerozz/datahive-backend/internal/repository"
	"github.com/dinerozz/datahive-backend/internal/service/redis"
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
)

func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config) (*sqlx.DB, error) {
	db, err := repository.NewRepository(cfg.DB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(db.Close))
	return db, nil
}

// ProvideProductCache returns a nil cache when redis is unreachable; lookups
// then go straight to postgres.
func ProvideProductCache(lc fx.Lifecycle, cfg *config.Config) redis.ServiceInterface {
	svc, err := redis.NewRedisService(context.Background(), redis.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Println("⚠️ Running without product cache")
		return nil
	}
	lc.Append(fx.StopHook(svc.Close))
	return svc
}

func ProvideLedgerClient(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) *ledger.Client {
	client := ledger.NewClient(ledger.Config{
		URL:               cfg.Ledger.URL,
		Timeout:           cfg.Ledger.Timeout,
		WebsitesMethod:    cfg.Ledger.WebsitesMethod,
		WebsiteDataMethod: cfg.Ledger.WebsiteDataMethod,
	}, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// the node may come up later; calls redial on demand
			if err := client.Connect(ctx); err != nil {
				log.Printf("⚠️ Ledger node not reachable yet: %v", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideDatabase,
		ProvideProductCache,
		ProvideLedgerClient,
	),
)
