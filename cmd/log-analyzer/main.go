package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log-analyzer/internal/app"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/spf13/cobra"
)

var (
	configFile string
	top        int
)

var rootCmd = &cobra.Command{
	Use:   "log-analyzer",
	Short: "Summarize the latest nginx access log into a per-URL report",
	Long: `log-analyzer picks the most recent access log of the configured directory,
aggregates request counts and times per URL and writes report-YYYY.MM.DD.html
into the report directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyzer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", configs.DefaultConfigPath, "config file path")
	rootCmd.Flags().IntVar(&top, "top", 0, "print the N slowest URLs by total time after the run")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "log-analyzer: %v\n", err)
		os.Exit(svcerrors.ExitCodeOf(err))
	}
}

func runAnalyzer(cmd *cobra.Command, args []string) error {
	cfg, err := configs.LoadConfig(configFile)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := application.Run(ctx)
	if err != nil {
		return err
	}

	if top > 0 && result.Report != nil {
		return reports.WriteTable(cmd.OutOrStdout(), result.Rows, top)
	}
	return nil
}
