package main

import (
	"github.com/spf13/cobra"

	"github.com/LeenJaber1/automata-builder/internal/cli"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent one-shot runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.History(cmd.Context(), app, limit, asJSON)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().Bool("json", false, "Print runs as JSON")
}
