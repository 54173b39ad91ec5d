package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [game-id]",
		Short: "List recently finished games, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if len(args) == 1 {
				var result GameResult
				if err := client.Get(cmd.Context(), "/api/v1/history/"+args[0], &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result History
			if err := client.Get(cmd.Context(), fmt.Sprintf("/api/v1/history?limit=%d", limit), &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of games to list")

	return cmd
}
