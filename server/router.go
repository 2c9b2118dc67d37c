package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dinerozz/datahive-backend/docs"
	aiAnalyticsHandler "github.com/dinerozz/datahive-backend/internal/handler/ai-analytics"
	dashboardHandler "github.com/dinerozz/datahive-backend/internal/handler/dashboard"
	productHandler "github.com/dinerozz/datahive-backend/internal/handler/product"
	userHandler "github.com/dinerozz/datahive-backend/internal/handler/user"
	"github.com/dinerozz/datahive-backend/internal/service/redis"
	"github.com/dinerozz/datahive-backend/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterHandler struct {
	userHandler        *userHandler.UserHandler
	dashboardHandler   *dashboardHandler.DashboardHandler
	productHandler     *productHandler.ProductHandler
	aiAnalyticsHandler *aiAnalyticsHandler.AIAnalyticsHandler
	cache              redis.ServiceInterface
	summaryLimiter     gin.HandlerFunc
}

// health reports the service as up; the product cache is optional, so its
// state is informational.
func (h *RouterHandler) health(c *gin.Context) {
	cache := "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := h.cache.Health(ctx); err != nil {
			cache = "down"
		} else {
			cache = "up"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "datahive-backend",
		"cache":     cache,
	})
}

func setGinMode(env string) {
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, X-Request-ID, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func NewRouter(routerHandler *RouterHandler, logger *slog.Logger) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.RequestLogger(logger.With("component", "http")))
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	r.Use(corsMiddleware())

	r.GET("/health", routerHandler.health)

	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	publicRoutes := r.Group("/api/v1")
	{
		publicRoutes.POST("/auth/login", routerHandler.userHandler.CreateOrAuthUserWithPassword)
		publicRoutes.POST("/auth/logout", routerHandler.userHandler.Logout)
	}

	privateRoutes := r.Group("/api/v1")
	privateRoutes.Use(middleware.AuthenticationMiddleware())
	{
		privateRoutes.GET("/users/profile", routerHandler.userHandler.GetUserById)
		routerHandler.dashboardHandler.RegisterRoutes(privateRoutes)
		routerHandler.productHandler.RegisterRoutes(privateRoutes)
		if routerHandler.summaryLimiter != nil {
			routerHandler.aiAnalyticsHandler.RegisterRoutes(privateRoutes, routerHandler.summaryLimiter)
		} else {
			routerHandler.aiAnalyticsHandler.RegisterRoutes(privateRoutes)
		}
	}

	return r
}
