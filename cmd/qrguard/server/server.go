package server

import (
	"fmt"
	"os"

	"qrguard/api/routes"
	"qrguard/internal/config"
	"qrguard/internal/notification"
	"qrguard/internal/services"
	"qrguard/pkg/analyzer"
	"qrguard/pkg/reputation"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type ServerOpts struct {
	Port int
}

func NewServerCommand() *cobra.Command {
	serverOpts := &ServerOpts{}

	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Start the QRGuard API server",
		Long:  `Start the QRGuard server exposing the URL scan API consumed by the QR scanner client`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg := config.Load()
			if cmd.Flags().Changed("port") {
				cfg.Port = serverOpts.Port
			}

			tables, err := analyzer.LoadTables(cfg.TablesPath)
			if err != nil {
				return err
			}

			eng := analyzer.New(
				analyzer.WithTables(tables),
				analyzer.WithResolver(analyzer.NewResolver(cfg.ResolveTimeout, cfg.MaxRedirects, cfg.UserAgent)),
				analyzer.WithReputation(reputation.NewClient(cfg.VirusTotalAPIKey, cfg.SafeBrowsingAPIKey, cfg.ReputationTimeout)),
			)

			var alerter services.ScanAlerter
			if token := os.Getenv("DISCORD_TOKEN"); token != "" {
				discordClient, err := notification.NewNotificationClient()
				if err != nil {
					log.Warnf("Failed to initialize Discord client: %v", err)
				} else {
					defer discordClient.Close()
					alerter = discordClient
					log.Info("Discord notifications enabled")
				}
			} else {
				log.Info("DISCORD_TOKEN not set - Discord notifications disabled")
			}

			scanService := services.NewScanService(eng, alerter)
			router := routes.InitRouter(cfg, scanService)
			return router.Run(fmt.Sprintf(":%d", cfg.Port))
		},
	}

	serverCmd.Flags().IntVarP(&serverOpts.Port, "port", "p", 8080, "Port to run the server on")

	return serverCmd
}
