package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/bridgeplanner/internal/logging"
	"github.com/ChicagoDave/bridgeplanner/internal/server"
)

var (
	projectPath string
	logLevel    string
	logFormat   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bridgeplanner",
		Short: "Bridge inspection flight path planner",
	}

	rootCmd.PersistentFlags().StringVar(&projectPath, "project", ".", "project directory or mission YAML file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() logging.Logger {
	return logging.NewStderr(logLevel, logFormat)
}

func planCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the full planning pipeline and write the plan document",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPlan(projectPath, output, newLogger())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON document to this file instead of stdout")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a mission spec without generating routes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(projectPath)
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Plan the mission and display flight statistics",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStats(projectPath, newLogger())
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local viewer server for the planned mission",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log := newLogger()
			srv := server.New(projectPath, port, missionRunner(projectPath, log), log)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
