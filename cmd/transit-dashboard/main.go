package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/transit-dashboard/internal/commands"
)

//go:embed static/*
var staticFiles embed.FS

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:   "transit-dashboard",
		Short: "Transit operations dashboard",
		Long: `Transit Dashboard serves the fleet, driver, route, stop, fare, schedule,
maintenance and report pages of a city transit operator.

Run "transit-dashboard serve" to start the web server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("TRANSIT_CONFIG"), "Config file (YAML or JSON)")

	root.AddCommand(
		commands.NewServeCmd(&configPath, staticFiles),
		commands.NewHashPasswordCmd(),
		commands.NewCalendarCmd(&configPath),
	)
	return root
}
