package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeenJaber1/automata-builder/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Validate and simulate finite automata",
	Long: `automata checks DFA, NFA and ε-NFA documents for structural problems and
tests input strings against them, in one shot or one symbol at a time.

Automaton arguments are a .json, .yaml, .yml or .md file, or an id in the
library given by --dir.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the automaton library (default from config, or .)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./automata.yaml when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
}

// newApp builds the command environment from the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	return cli.NewApp(cli.GlobalOptions{
		Dir:        dir,
		ConfigPath: configPath,
		LogLevel:   level,
	}, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}
