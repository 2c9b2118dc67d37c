package server

import (
	"errors"
	"log/slog"

	"github.com/dinerozz/datahive-backend/config"
	aiAnalyticsHandler "github.com/dinerozz/datahive-backend/internal/handler/ai-analytics"
	dashboardHandler "github.com/dinerozz/datahive-backend/internal/handler/dashboard"
	productHandler "github.com/dinerozz/datahive-backend/internal/handler/product"
	userHandler "github.com/dinerozz/datahive-backend/internal/handler/user"
	"github.com/dinerozz/datahive-backend/internal/ledger"
	"github.com/dinerozz/datahive-backend/internal/repository"
	"github.com/dinerozz/datahive-backend/internal/service/ai_analytics"
	"github.com/dinerozz/datahive-backend/internal/service/dashboard"
	"github.com/dinerozz/datahive-backend/internal/service/product"
	"github.com/dinerozz/datahive-backend/internal/service/redis"
	"github.com/dinerozz/datahive-backend/internal/service/user"
	"github.com/dinerozz/datahive-backend/middleware"
	"github.com/dinerozz/datahive-backend/pkg/utils"
	"go.uber.org/fx"
)

func ProvideProductService(repo *repository.ProductRepository, cache redis.ServiceInterface, cfg *config.Config, logger *slog.Logger) *product.ProductService {
	// nil interface, not a typed nil, when redis is down
	var productCache product.Cache
	if cache != nil {
		productCache = cache
	}
	return product.NewProductService(repo, productCache, cfg.Redis.ProductCacheTTL, logger)
}

func ProvideDashboardService(client *ledger.Client, products *product.ProductService, logger *slog.Logger) *dashboard.DashboardService {
	return dashboard.NewDashboardService(client, products, logger)
}

func ProvideAIAnalyticsService(cfg *config.Config, logger *slog.Logger) *ai_analytics.AIAnalyticsService {
	return ai_analytics.NewAIAnalyticsService(ai_analytics.Config{
		APIKey: cfg.OpenAI.APIKey,
		Model:  cfg.OpenAI.Model,
	}, logger)
}

var ServicesModule = fx.Options(
	fx.Provide(
		repository.NewUserRepository,
		repository.NewProductRepository,
		user.NewUserService,
		ProvideProductService,
		ProvideDashboardService,
		ProvideAIAnalyticsService,
	),
	fx.Invoke(ConfigureJWTSecret),
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in production")

// ConfigureJWTSecret installs the token signing key. Without JWT_SECRET the
// built-in development key stays active, which is refused in production.
func ConfigureJWTSecret(cfg *config.Config, logger *slog.Logger) error {
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return ErrMissingJWTSecret
		}
		logger.Warn("JWT_SECRET is not set, tokens are signed with the development key")
		return nil
	}
	utils.SetSecret(cfg.JWTSecret)
	return nil
}

func ProvideDashboardHandler(srv *dashboard.DashboardService) *dashboardHandler.DashboardHandler {
	return dashboardHandler.NewDashboardHandler(srv)
}

func ProvideAIAnalyticsHandler(srv *dashboard.DashboardService, ai *ai_analytics.AIAnalyticsService) *aiAnalyticsHandler.AIAnalyticsHandler {
	return aiAnalyticsHandler.NewAIAnalyticsHandler(srv, ai)
}

func ProvideProductHandler(srv *product.ProductService) *productHandler.ProductHandler {
	return productHandler.NewProductHandler(srv)
}

func ProvideRouterHandler(
	users *userHandler.UserHandler,
	dashboards *dashboardHandler.DashboardHandler,
	products *productHandler.ProductHandler,
	analytics *aiAnalyticsHandler.AIAnalyticsHandler,
	cache redis.ServiceInterface,
	cfg *config.Config,
) *RouterHandler {
	limits := middleware.DefaultRateLimiterConfig()
	limits.RequestsPerMinute = cfg.OpenAI.SummariesPerMinute
	limits.Burst = cfg.OpenAI.SummaryBurst

	return &RouterHandler{
		userHandler:        users,
		dashboardHandler:   dashboards,
		productHandler:     products,
		aiAnalyticsHandler: analytics,
		cache:              cache,
		summaryLimiter:     middleware.RateLimiter(limits),
	}
}

var HandlersModule = fx.Options(
	fx.Provide(
		userHandler.NewUserHandler,
		ProvideDashboardHandler,
		ProvideProductHandler,
		ProvideAIAnalyticsHandler,
		ProvideRouterHandler,
	),
)
