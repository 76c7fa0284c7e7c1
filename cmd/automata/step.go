package main

import (
	"github.com/spf13/cobra"

	"github.com/LeenJaber1/automata-builder/internal/cli"
)

var stepCmd = &cobra.Command{
	Use:   "step [automaton] [input]",
	Short: "Step through an input one symbol at a time",
	Long: `Starts an interactive session: press Enter (or type next) to consume one symbol,
run to finish, reset to start over and quit to leave.

With --session the session is persisted and can be resumed later, in which
case the automaton argument may be omitted. When stdin is not a terminal the
session runs to the end and prints one JSON frame per step.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		opts := cli.StepOptions{}
		if len(args) > 0 {
			opts.Ref = args[0]
		}
		if len(args) > 1 {
			opts.Input = args[1]
		}
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.Headless, _ = cmd.Flags().GetBool("headless")

		return cli.Step(cmd.Context(), app, opts)
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().StringP("session", "s", "", "Session id to persist and resume")
	stepCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")
	stepCmd.Flags().Bool("headless", false, "Run to the end and print JSON frames")
}
