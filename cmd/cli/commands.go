package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(syncTeamCmd)
	rootCmd.AddCommand(syncMatchesCmd)
	rootCmd.AddCommand(scheduleSyncCmd)
	rootCmd.AddCommand(liveSyncCmd)
	rootCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var syncTeamCmd = &cobra.Command{
	Use:   "sync-team <id-or-name>",
	Short: "Sync one team's roster from the providers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/sync?mode=sync_team&id=" + url.QueryEscape(args[0]))
	},
}

var syncMatchesCmd = &cobra.Command{
	Use:   "sync-matches",
	Short: "Run a schedule sync through the multiplexed sync endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/sync?mode=sync_matches")
	},
}

var scheduleSyncCmd = &cobra.Command{
	Use:   "schedule-sync",
	Short: "Pull the upcoming schedule and upsert matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/schedule-sync")
	},
}

var liveSyncCmd = &cobra.Command{
	Use:   "live-sync",
	Short: "Merge today's live scores into stored matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/live-sync")
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "sync-status",
	Short: "Show per-job sync status and provider call counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/sync-status")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the stored matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	reqURL := host + endpoint
	fmt.Printf("Making request to %s\n", reqURL)

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
