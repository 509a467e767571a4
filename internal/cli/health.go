package cli

import (
	"github.com/spf13/cobra"
)

// newHealthCmd pings the dots-and-boxes server's health endpoint, the
// quickest way to confirm the configured server URL is reachable.
func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check dots-and-boxes server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
