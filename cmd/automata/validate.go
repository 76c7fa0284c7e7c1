package main

import (
	"github.com/spf13/cobra"

	"github.com/LeenJaber1/automata-builder/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [automaton...]",
	Short: "Check automata for structural problems",
	Long: `Reports DFA completeness and determinism problems, ε-transitions where the
kind forbids them, duplicate ids, multiple start states and dangling references.
Without arguments every automaton in the library is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		watch, _ := cmd.Flags().GetBool("watch")

		return cli.Validate(cmd.Context(), app, cli.ValidateOptions{
			Refs:  args,
			JSON:  asJSON,
			Watch: watch,
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print findings as JSON")
	validateCmd.Flags().BoolP("watch", "w", false, "Validate again whenever the library changes")
}
