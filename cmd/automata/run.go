package main

import (
	"github.com/spf13/cobra"

	"github.com/LeenJaber1/automata-builder/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <automaton> [input...]",
	Short: "Test input strings against an automaton",
	Long: `Decides acceptance of each input in one shot and prints the verdict with the
sequence of visited state sets. Without inputs the empty string is tested.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		history, _ := cmd.Flags().GetBool("history")

		return cli.Run(cmd.Context(), app, cli.RunOptions{
			Ref:     args[0],
			Inputs:  args[1:],
			JSON:    asJSON,
			History: history,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("json", false, "Print verdicts as JSON")
	runCmd.Flags().Bool("history", false, "Record runs in the run history")
}
