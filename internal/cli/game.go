package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start (or resume) a round",
		Long: `Request a round for the current player.

A new player is created on first use and its id is stored locally.
If the player already has a round waiting for guesses, that round is
returned instead of a new one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{}
			if cfg.PlayerID != "" {
				body["player_id"] = cfg.PlayerID
			}

			var result PlayResult
			if err := client.Post("/api/v1/game/play", body, &result); err != nil {
				return err
			}

			if result.Player.ID != cfg.PlayerID {
				if err := cfg.SavePlayerID(result.Player.ID); err != nil {
					return fmt.Errorf("failed to save player id: %w", err)
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <number>",
		Short: "Submit a guess for the current round",
		Long: `Submit the player's guess for their waiting round.

The guess must lie inside the playable range in hundredth steps
(e.g. 4.37). Submitting starts the round: computer participants guess,
everyone pays the participation cost, and the round finishes with
payouts going to players who guessed below the secret number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guess, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid guess %q: %w", args[0], err)
			}
			if cfg.PlayerID == "" {
				return fmt.Errorf("no player id known, run 'guessctl play' first")
			}

			body := map[string]any{
				"player_id": cfg.PlayerID,
				"guess":     guess,
			}

			var result GuessResult
			if err := client.Post("/api/v1/game/guess", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
