package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dinerozz/datahive-backend/config"
	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/ledger"
	"github.com/dinerozz/datahive-backend/internal/repository"
	"github.com/dinerozz/datahive-backend/internal/service/dashboard"
	"github.com/dinerozz/datahive-backend/internal/service/product"
	"github.com/dinerozz/datahive-backend/internal/service/redis"
	"github.com/spf13/cobra"
)

// GetReportCmd runs the pipeline once for a website and prints the view as JSON.
func GetReportCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var sel entity.Selection

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard of a website as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.Ledger.Timeout)
			defer cancel()

			db, err := repository.NewRepository(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			var cache product.Cache
			if svc, err := redis.NewRedisService(ctx, redis.RedisConfig{
				Host:     cfg.Redis.Host,
				Port:     cfg.Redis.Port,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			}); err == nil {
				defer svc.Close()
				cache = svc
			}

			client := ledger.NewClient(ledger.Config{
				URL:               cfg.Ledger.URL,
				Timeout:           cfg.Ledger.Timeout,
				WebsitesMethod:    cfg.Ledger.WebsitesMethod,
				WebsiteDataMethod: cfg.Ledger.WebsiteDataMethod,
			}, logger)
			defer client.Close()

			products := product.NewProductService(repository.NewProductRepository(db), cache, cfg.Redis.ProductCacheTTL, logger)
			view, err := dashboard.NewDashboardService(client, products, logger).Build(ctx, sel)
			if err != nil {
				return fmt.Errorf("build dashboard for website %s: %w", sel.WebsiteID, err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}

	reportCmd.Flags().StringVar(&sel.WebsiteID, "website", "", "Website id")
	reportCmd.Flags().StringVar(&sel.Category, "category", "", "Product category filter")
	_ = reportCmd.MarkFlagRequired("website")

	return reportCmd
}
