package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "dotsctl",
		Short: "CLI tool for the dots and boxes API",
		Long: `dotsctl is a CLI tool for playing dots and boxes over the JSON API.

It supports creating and joining matches, drawing lines, adding a bot
opponent, and watching live match updates over SSE.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Resolve the persistent player identity
			if err := cfg.LoadPlayer(); err != nil {
				return err
			}
			if cfg.PlayerName == "" {
				cfg.PlayerName = "Player"
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: DOTSBOXES_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "Player ID (env: DOTSBOXES_PLAYER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerName, "name", cfg.PlayerName, "Player display name (env: DOTSBOXES_NAME)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
