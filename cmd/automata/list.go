package main

import (
	"github.com/spf13/cobra"

	"github.com/LeenJaber1/automata-builder/internal/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the automata in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return cli.List(cmd.Context(), app)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
