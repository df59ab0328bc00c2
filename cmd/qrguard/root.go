package main

import (
	"context"

	"qrguard/cmd/qrguard/scan"
	"qrguard/cmd/qrguard/server"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Execute() error {
	var verbose bool

	var rootCmd = &cobra.Command{
		Use:   "qrguard",
		Short: "URL risk analysis for scanned QR codes",
		Long:  `QRGuard analyzes URLs extracted from QR codes and returns a risk score, inferred attacker intent and a safe preview of the destination`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(scan.NewScanCommand())
	rootCmd.AddCommand(server.NewServerCommand())
	return rootCmd.ExecuteContext(context.Background())
}
