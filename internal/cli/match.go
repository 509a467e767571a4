package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchJoinCmd())
	cmd.AddCommand(newMatchBotCmd())
	cmd.AddCommand(newMatchStartCmd())
	cmd.AddCommand(newMatchCancelCmd())
	cmd.AddCommand(newMatchMoveCmd())
	cmd.AddCommand(newMatchRematchCmd())

	return cmd
}

func newMatchCreateCmd() *cobra.Command {
	var (
		gridSize     int
		private      bool
		autoStart    bool
		turnDuration int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new match",
		RunE: func(cmd *cobra.Command, args []string) error {
			public := !private
			req := map[string]any{
				"player_id":             cfg.PlayerID,
				"player_name":           cfg.PlayerName,
				"grid_size":             gridSize,
				"public":                public,
				"auto_start":            autoStart,
				"turn_duration_seconds": turnDuration,
			}

			var result Match
			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&gridSize, "grid", 6, "Grid size (dots per side)")
	cmd.Flags().BoolVar(&private, "private", false, "Hide from the open match list")
	cmd.Flags().BoolVar(&autoStart, "auto-start", true, "Start as soon as an opponent joins")
	cmd.Flags().IntVar(&turnDuration, "turn-duration", 0, "Turn window in seconds (0 for server default)")

	return cmd
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchList
			if err := client.Get("/api/v1/matches", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show match state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match
			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a waiting match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id":   cfg.PlayerID,
				"player_name": cfg.PlayerName,
			}

			var result Match
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot <id>",
		Short: "Add a bot opponent to a waiting match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/bot", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start a match (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": cfg.PlayerID}

			var result Match
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/start", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a waiting match (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": cfg.PlayerID}

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/cancel", args[0]), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Match cancelled")
			return nil
		},
	}
}

func newMatchMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <row1> <col1> <row2> <col2>",
		Short: "Draw a line between two adjacent dots",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords := make([]int, 4)
			for i, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid coordinate %q: %w", arg, err)
				}
				coords[i] = n
			}

			req := map[string]any{
				"player_id": cfg.PlayerID,
				"start_dot": map[string]int{"row": coords[0], "col": coords[1]},
				"end_dot":   map[string]int{"row": coords[2], "col": coords[3]},
			}

			var result MoveResult
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/moves", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchRematchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rematch <id>",
		Short: "Create a rematch of a completed match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": cfg.PlayerID}

			var result Match
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/rematch", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
