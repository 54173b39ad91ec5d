package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameLeaveCmd())
	cmd.AddCommand(newGameTeamCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameClueCmd())
	cmd.AddCommand(newGameRevealCmd())
	cmd.AddCommand(newGameEndTurnCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func gamePath(code, action string) string {
	path := "/api/v1/games/" + strings.ToUpper(code)
	if action != "" {
		path += "/" + action
	}
	return path
}

// postGameAction sends a game action and prints the returned game
func postGameAction(ctx context.Context, code, action string, body any) error {
	var result Game
	if err := client.Post(ctx, gamePath(code, action), body, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

func newGameCreateCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if code != "" {
				req["code"] = strings.ToUpper(code)
			}

			var result Game
			if err := client.Post(cmd.Context(), "/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Game code to use (replaces any game using it)")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(cmd.Context(), gamePath(args[0], ""), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postGameAction(cmd.Context(), args[0], "join", nil)
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			if err := client.Post(cmd.Context(), gamePath(code, "leave"), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left game %s", code))
			return nil
		},
	}
}

func newGameTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team <code> <red|blue> <spymaster|operative>",
		Short: "Take a seat on a team",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"color": strings.ToLower(args[1]),
				"role":  strings.ToLower(args[2]),
			}
			return postGameAction(cmd.Context(), args[0], "team", req)
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postGameAction(cmd.Context(), args[0], "start", nil)
		},
	}
}

func newGameClueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clue <code> <word> <number>",
		Short: "Give a clue (active spymaster only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid number: %w", err)
			}

			req := map[string]any{"word": args[1], "number": number}
			return postGameAction(cmd.Context(), args[0], "clue", req)
		},
	}
}

func newGameRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <code> <card-id|word>",
		Short: "Reveal a card (active operatives only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			cardID := args[1]

			// Accept the word shown on the card as well as its id
			if !strings.HasPrefix(cardID, "card-") {
				var current Game
				if err := client.Get(cmd.Context(), gamePath(code, ""), &current); err != nil {
					return err
				}
				card, ok := current.CardByWord(cardID)
				if !ok {
					return fmt.Errorf("no card %q on the board", cardID)
				}
				cardID = card.ID
			}

			var result RevealResult
			if err := client.Post(cmd.Context(), gamePath(code, "reveal"), map[string]string{"card_id": cardID}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameEndTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end-turn <code>",
		Short: "Stop guessing and end your team's turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postGameAction(cmd.Context(), args[0], "end-turn", nil)
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <code>",
		Short: "Deal a new board and keep the teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postGameAction(cmd.Context(), args[0], "reset", nil)
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code>",
		Short: "Delete the game (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			if err := client.Delete(cmd.Context(), gamePath(code, "")); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s deleted", code))
			return nil
		},
	}
}
