package main

import (
	"github.com/spf13/cobra"

	"github.com/LeenJaber1/automata-builder/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Exposes validation, one-shot runs, step sessions, the library and the run
history as a JSON API. With --metrics-port, Prometheus metrics are served on
/metrics from a separate listener.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetInt("port")
		metricsPort, _ := cmd.Flags().GetInt("metrics-port")
		history, _ := cmd.Flags().GetBool("history")

		return cli.Serve(cmd.Context(), app, cli.ServeOptions{
			Port:        port,
			MetricsPort: metricsPort,
			History:     history,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().Int("metrics-port", 0, "Port for Prometheus metrics (disabled when 0)")
	serveCmd.Flags().Bool("history", false, "Record runs and expose /history")
}
