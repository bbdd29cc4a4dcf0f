package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmallinger/storecheck/internal/checker"
	"github.com/hmallinger/storecheck/internal/display"
	"github.com/hmallinger/storecheck/internal/export"
	"github.com/hmallinger/storecheck/internal/store"
)

// Config holds the parsed CLI configuration.
type Config struct {
	Platform     string
	AppID        string
	Installed    string
	Region       string
	ForceVersion string
	AppStoreURL  string
	PlayStoreURL string
	Timeout      string
	JSON         bool
	Output       string
	Format       string
	NoColor      bool
	Verbose      bool
	DryRun       bool
}

var validPlatforms = map[string]bool{
	"ios":     true,
	"android": true,
}

// NewRootCmd creates and returns the root cobra command.
func NewRootCmd() *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "storecheck <app-id>",
		Short: "Check app stores for available updates",
		Long: `storecheck looks up the published version of an app in the Apple App
Store or Google Play, compares it against the installed version, and
reports whether an update is available.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Require an app id for normal operation
			if len(args) == 0 {
				return fmt.Errorf("requires an app id argument")
			}

			// Validate platform
			if !validPlatforms[cfg.Platform] {
				return fmt.Errorf("invalid platform %q: must be ios or android", cfg.Platform)
			}

			// Require the installed version to compare against
			if cfg.Installed == "" {
				return fmt.Errorf("--installed is required")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.AppID = args[0]

			if cfg.DryRun {
				// Just validate args and return
				return nil
			}

			return runCheck(cmd, &cfg)
		},
	}

	// Lookup flags
	cmd.Flags().StringVarP(&cfg.Platform, "platform", "p", "ios", "Store platform: ios|android")
	cmd.Flags().StringVarP(&cfg.Installed, "installed", "i", "", "Installed version to compare against")
	cmd.Flags().StringVar(&cfg.Region, "region", "", "App Store country code or Play Store locale")
	cmd.Flags().StringVar(&cfg.ForceVersion, "force-version", "", "Pretend the store returned this version")
	cmd.Flags().StringVar(&cfg.Timeout, "timeout", "30s", "Lookup timeout")

	// Endpoint flags
	cmd.Flags().StringVar(&cfg.AppStoreURL, "app-store-url", "", "Override the App Store lookup endpoint")
	cmd.Flags().StringVar(&cfg.PlayStoreURL, "play-store-url", "", "Override the Play Store details endpoint")

	// Display flags
	cmd.Flags().BoolVar(&cfg.JSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&cfg.NoColor, "no-color", false, "Disable colors")

	// Export flags
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "Export to file (json/csv/txt)")
	cmd.Flags().StringVar(&cfg.Format, "format", "", "Explicit export format")

	// Other flags
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Validate args without querying stores")

	return cmd
}

// newLogger builds the CLI logger. Verbose lowers the level to debug so
// soft lookup failures become visible.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// signalContext returns a context that is cancelled on SIGINT/SIGTERM or
// after the timeout, whichever comes first.
func signalContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// runCheck executes a single store lookup based on configuration.
func runCheck(cmd *cobra.Command, cfg *Config) error {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	ctx, cancel := signalContext(timeout)
	defer cancel()

	c := checker.New(checker.Config{
		AppStoreRegion:  cfg.Region,
		PlayStoreLocale: cfg.Region,
		ForceVersion:    cfg.ForceVersion,
		AppStoreURL:     cfg.AppStoreURL,
		PlayStoreURL:    cfg.PlayStoreURL,
		HTTPClient:      &http.Client{Timeout: timeout},
		Logger:          newLogger(cfg.Verbose),
	})

	platform := store.Platform(cfg.Platform)
	st, err := c.Status(ctx, platform, cfg.AppID, cfg.Installed)
	if err != nil {
		return err
	}

	if cfg.JSON {
		entry := export.FromStatus("", platform, cfg.AppID, st, nil)
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		renderer := display.NewRenderer()
		if cfg.NoColor {
			renderer.NoColor = true
		}
		renderer.RenderStatus(cmd.OutOrStdout(), cfg.AppID, st)
	}

	// Export if output file specified
	if cfg.Output != "" {
		entry := export.FromStatus("", platform, cfg.AppID, st, nil)
		format := export.Format(cfg.Format)
		if err := export.ExportToFile(cfg.Output, format, []export.Entry{entry}); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results exported to %s\n", cfg.Output)
	}

	return nil
}
