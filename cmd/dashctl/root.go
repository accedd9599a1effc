package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/ingest"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

var (
	csvSource string
	timeout   time.Duration
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Query a Lighthouse sheet export from the command line",
	Long: `dashctl loads a published sheet (a local CSV file or its URL) and runs
the same aggregations the dashboard API serves.

Example usage:
  dashctl dates --csv sheet.csv
  dashctl score --csv sheet.csv --outlet "Azteca 7" --granularity weekly
  dashctl report --csv https://docs.google.com/.../pub?output=csv --type video
  dashctl correlate --csv sheet.csv --outlet Heraldo`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		if csvSource == "" {
			return fmt.Errorf("--csv is required")
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&csvSource, "csv", "", "sheet CSV file or URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout for URLs")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// loadDataset reads csvSource from disk or over HTTP.
func loadDataset(ctx context.Context) (*model.Dataset, error) {
	if strings.HasPrefix(csvSource, "http://") || strings.HasPrefix(csvSource, "https://") {
		return ingest.NewFetcher(timeout).Fetch(ctx, csvSource)
	}
	f, err := os.Open(csvSource)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()
	return ingest.Parse(f)
}

// loadService commits the sheet as the main source and returns a service
// over it.
func loadService(ctx context.Context) (*service.DashboardService, error) {
	ds, err := loadDataset(ctx)
	if err != nil {
		return nil, err
	}
	reg := ingest.NewRegistry(map[string]string{service.SourceMain: csvSource})
	store, _ := reg.Get(service.SourceMain)
	store.Commit(store.Begin(), ds)
	return service.NewDashboardService(reg, nil), nil
}
