package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hmallinger/storecheck/internal/checker"
	"github.com/hmallinger/storecheck/internal/display"
	"github.com/hmallinger/storecheck/internal/export"
	"github.com/hmallinger/storecheck/internal/manifest"
)

// BatchConfig holds the parsed batch subcommand configuration.
type BatchConfig struct {
	File         string
	Concurrency  int
	AppStoreURL  string
	PlayStoreURL string
	Timeout      string
	JSON         bool
	Output       string
	Format       string
	NoColor      bool
	Verbose      bool
}

// NewBatchCmd creates the `storecheck batch` subcommand.
func NewBatchCmd() *cobra.Command {
	var cfg BatchConfig

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Check every app listed in a YAML manifest",
		Long: `Reads a YAML manifest of apps and checks each one against its store,
with bounded concurrency. Results keep the manifest order.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, &cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.File, "file", "f", "storecheck.yaml", "Manifest file to check")
	cmd.Flags().IntVar(&cfg.Concurrency, "concurrency", 4, "Maximum concurrent store lookups")
	cmd.Flags().StringVar(&cfg.Timeout, "timeout", "30s", "Overall timeout for the batch run")

	// Endpoint flags
	cmd.Flags().StringVar(&cfg.AppStoreURL, "app-store-url", "", "Override the App Store lookup endpoint")
	cmd.Flags().StringVar(&cfg.PlayStoreURL, "play-store-url", "", "Override the Play Store details endpoint")

	// Display flags
	cmd.Flags().BoolVar(&cfg.JSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&cfg.NoColor, "no-color", false, "Disable colors")

	// Export flags
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "Export to file (json/csv/txt)")
	cmd.Flags().StringVar(&cfg.Format, "format", "", "Explicit export format")

	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

// runBatch checks all manifest apps with bounded concurrency. Row errors
// never abort the run; they are counted and reported at the end.
func runBatch(cmd *cobra.Command, cfg *BatchConfig) error {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	m, err := manifest.Load(cfg.File)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(timeout)
	defer cancel()

	logger := newLogger(cfg.Verbose)
	client := &http.Client{Timeout: timeout}

	rows := make([]display.Row, len(m.Apps))

	g := &errgroup.Group{}
	g.SetLimit(cfg.Concurrency)

	for i, app := range m.Apps {
		g.Go(func() error {
			c := checker.New(checker.Config{
				AppStoreRegion:  app.Region,
				PlayStoreLocale: app.Region,
				AppStoreURL:     cfg.AppStoreURL,
				PlayStoreURL:    cfg.PlayStoreURL,
				HTTPClient:      client,
				Logger:          logger.With("app", app.ID),
			})

			st, err := c.Status(ctx, app.Platform, app.ID, app.Version)
			rows[i] = display.Row{
				Name:     app.Name,
				Platform: app.Platform,
				AppID:    app.ID,
				Status:   st,
				Err:      err,
			}
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]export.Entry, len(rows))
	failed := 0
	for i, row := range rows {
		entries[i] = export.FromStatus(row.Name, row.Platform, row.AppID, row.Status, row.Err)
		if row.Err != nil {
			failed++
		}
	}

	if cfg.JSON {
		if err := export.NewJSONExporter().Export(cmd.OutOrStdout(), entries); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	} else {
		renderer := display.NewRenderer()
		if cfg.NoColor {
			renderer.NoColor = true
		}
		renderer.RenderTable(cmd.OutOrStdout(), rows)
	}

	// Export if output file specified
	if cfg.Output != "" {
		format := export.Format(cfg.Format)
		if err := export.ExportToFile(cfg.Output, format, entries); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results exported to %s\n", cfg.Output)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(rows))
	}

	return nil
}
