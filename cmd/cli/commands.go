package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(togglePlayerCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)

	drawCmd.Flags().IntSlice("players", nil, "Ids of the players to draw (default: every active player)")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players", nil)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player <name>",
	Short: "Add a player to the roster",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/players", map[string]string{"name": strings.Join(args, " ")})
	},
}

var togglePlayerCmd = &cobra.Command{
	Use:   "toggle-player <id>",
	Short: "Flip a player between active and inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid player id %q", args[0])
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/players/%d/toggle", id), nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the tournament standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/standings", nil)
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List the matches waiting for a score",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/pending", nil)
	},
}

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Generate a new round for the active players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/rounds", nil)
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Generate the next single match between two players who have not met",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/matches/next", nil)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <match-id> <score-a> <score-b>",
	Short: "Record the result of a match",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make([]int, len(args))
		for i, arg := range args {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid number %q", arg)
			}
			values[i] = v
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/matches/%d/score", values[0]),
			map[string]int{"score_a": values[1], "score_b": values[2]})
	},
}

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw random teams from a set of players",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := cmd.Flags().GetIntSlice("players")
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/draws", map[string][]int{"player_ids": ids})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every tournament match, keeping the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/tournament/reset", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get lifetime activity counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/stats", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func performRequest(method, endpoint string, payload any) error {
	url := host + endpoint
	if dryRun {
		url += "?dry_run=true"
	}
	fmt.Printf("Making %s request to %s\n", method, url)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
