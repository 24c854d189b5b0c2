package cli

import (
	"github.com/spf13/cobra"
)

func newRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round <id>",
		Short: "Show a live round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Round
			if err := client.Get("/api/v1/rounds/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Show an archived round with its secret number revealed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Archive
			if err := client.Get("/api/v1/archive/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
