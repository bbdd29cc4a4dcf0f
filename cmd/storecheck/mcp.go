package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hmallinger/storecheck/internal/checker"
	"github.com/hmallinger/storecheck/internal/store"
)

// mcpConfig holds settings shared by every tool invocation.
type mcpConfig struct {
	AppStoreURL  string
	PlayStoreURL string
	Timeout      time.Duration
}

// checkResult is the JSON payload returned by the check tool.
type checkResult struct {
	Status           string `json:"status"`
	AppName          string `json:"appName,omitempty"`
	InstalledVersion string `json:"installedVersion"`
	StoreVersion     string `json:"storeVersion"`
	StoreURL         string `json:"storeUrl,omitempty"`
	ReleaseNotes     string `json:"releaseNotes,omitempty"`
	UpdateAvailable  bool   `json:"updateAvailable"`
}

// NewMCPCmd creates the `storecheck mcp` subcommand.
func NewMCPCmd(version string) *cobra.Command {
	var cfg mcpConfig
	var timeout string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server exposing store checks as a tool",
		Long: `Runs a Model Context Protocol server on stdio so agents can query app
store versions through the check_app_version tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(timeout)
			if err != nil {
				return fmt.Errorf("invalid timeout: %w", err)
			}
			cfg.Timeout = d

			return runMCPServer(version, &cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.AppStoreURL, "app-store-url", "", "Override the App Store lookup endpoint")
	cmd.Flags().StringVar(&cfg.PlayStoreURL, "play-store-url", "", "Override the Play Store details endpoint")
	cmd.Flags().StringVar(&timeout, "timeout", "30s", "Per-check timeout")

	return cmd
}

// runMCPServer serves the check tool on stdio until the client disconnects.
func runMCPServer(version string, cfg *mcpConfig) error {
	s := server.NewMCPServer("storecheck", version, server.WithToolCapabilities(false))

	tool := mcp.NewTool("check_app_version",
		mcp.WithDescription("Check the published version of an app in the Apple App Store or Google Play and compare it against an installed version."),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Store to query: ios or android"),
			mcp.Enum("ios", "android"),
		),
		mcp.WithString("app_id",
			mcp.Required(),
			mcp.Description("Bundle identifier (iOS) or package name (Android)"),
		),
		mcp.WithString("installed_version",
			mcp.Required(),
			mcp.Description("Version currently installed"),
		),
		mcp.WithString("region",
			mcp.Description("App Store country code or Play Store locale"),
		),
		mcp.WithString("force_version",
			mcp.Description("Pretend the store returned this version"),
		),
	)

	s.AddTool(tool, newCheckHandler(cfg))

	return server.ServeStdio(s)
}

// newCheckHandler builds the check_app_version tool handler.
func newCheckHandler(cfg *mcpConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		platform, err := req.RequireString("platform")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		appID, err := req.RequireString("app_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		installed, err := req.RequireString("installed_version")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		region := req.GetString("region", "")
		c := checker.New(checker.Config{
			AppStoreRegion:  region,
			PlayStoreLocale: region,
			ForceVersion:    req.GetString("force_version", ""),
			AppStoreURL:     cfg.AppStoreURL,
			PlayStoreURL:    cfg.PlayStoreURL,
			HTTPClient:      &http.Client{Timeout: cfg.Timeout},
			Logger:          newLogger(false),
		})

		st, err := c.Status(ctx, store.Platform(platform), appID, installed)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if st == nil {
			return mcp.NewToolResultText(`{"status":"unavailable"}`), nil
		}

		result := checkResult{
			Status:           "up_to_date",
			AppName:          st.AppName(),
			InstalledVersion: st.LocalVersion(),
			StoreVersion:     st.StoreVersion(),
			StoreURL:         st.StoreURL(),
			ReleaseNotes:     st.ReleaseNotes(),
			UpdateAvailable:  st.CanUpdate(),
		}
		if st.CanUpdate() {
			result.Status = "update_available"
		}

		data, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
