package root

import (
	"log/slog"

	"github.com/dinerozz/datahive-backend/cmd/migrate"
	"github.com/dinerozz/datahive-backend/cmd/report"
	"github.com/dinerozz/datahive-backend/cmd/seed"
	"github.com/dinerozz/datahive-backend/config"
	"github.com/dinerozz/datahive-backend/server"
	"github.com/spf13/cobra"
)

func GetRootCmd(config *config.Config, logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "datahive-backend",
		Short:         "DataHive click analytics dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			server.RunServer(config, logger)
		},
	})

	rootCmd.AddCommand(migrate.GetMigrateCmd(config.DB.URL()))
	rootCmd.AddCommand(report.GetReportCmd(config, logger))
	rootCmd.AddCommand(seed.GetSeedCmd(config, logger))

	return rootCmd
}
