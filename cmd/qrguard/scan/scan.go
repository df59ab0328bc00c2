package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"qrguard/internal/config"
	"qrguard/internal/services"
	"qrguard/pkg/analyzer"
	"qrguard/pkg/reputation"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewScanCommand returns the one-shot CLI scan: analyze a single URL and
// print the assessment as JSON.
func NewScanCommand() *cobra.Command {
	var targetURL string

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Analyze a single URL",
		Long:  `Analyze a single URL (typically a decoded QR payload) and print the structured risk assessment as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				log.Info("Shutting down")
				cancel()
			}()

			cfg := config.Load()
			tables, err := analyzer.LoadTables(cfg.TablesPath)
			if err != nil {
				return err
			}

			eng := analyzer.New(
				analyzer.WithTables(tables),
				analyzer.WithResolver(analyzer.NewResolver(cfg.ResolveTimeout, cfg.MaxRedirects, cfg.UserAgent)),
				analyzer.WithReputation(reputation.NewClient(cfg.VirusTotalAPIKey, cfg.SafeBrowsingAPIKey, cfg.ReputationTimeout)),
			)

			result, err := services.NewScanService(eng, nil).Scan(ctx, targetURL)
			if err != nil {
				log.Errorf("Scan error: %v", err)
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	scanCmd.Flags().StringVarP(&targetURL, "url", "u", "", "URL to analyze (required)")
	scanCmd.MarkFlagRequired("url")

	return scanCmd
}
