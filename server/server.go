package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/dinerozz/datahive-backend/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// RunServer starts the HTTP API and blocks until SIGINT or SIGTERM.
func RunServer(cfg *config.Config, logger *slog.Logger) {
	setGinMode(cfg.Env)

	app := fx.New(
		fx.Supply(cfg, logger),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
		}),
		InfrastructureModule,
		ServicesModule,
		HandlersModule,
		HTTPModule,
	)
	if err := app.Err(); err != nil {
		log.Fatal("❌ Failed to build application:", err)
	}
	app.Run()
}

func NewHTTPServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
}

func StartServer(lc fx.Lifecycle, srv *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("✅ Server starting on %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("❌ Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("🔄 Shutting down server...")
			if err := srv.Shutdown(ctx); err != nil {
				log.Printf("❌ Server forced to shutdown: %v", err)
				return err
			}
			log.Println("✅ Server gracefully stopped")
			return nil
		},
	})
}

var HTTPModule = fx.Options(
	fx.Provide(NewRouter, NewHTTPServer),
	fx.Invoke(StartServer),
)
