package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fleetops/fleet-maintenance/internal/api"
)

func main() {
	var baseURL string

	root := &cobra.Command{
		Use:          "fleetdash",
		Short:        "Terminal dashboard for the fleet-maintenance backend",
		Long:         "fleetdash is the staff and public console of the fleet-maintenance system:\nregister vehicles, log service entries, review cost reports and look up a\nvehicle's maintenance status by plate.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(baseURL)
		},
	}
	root.Flags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides FLEET_API_URL)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(baseURL string) error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()
	configureLogging()

	cfg := api.ConfigFromEnv()
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	log.WithField("base_url", cfg.BaseURL).Info("starting fleetdash")

	app := newApp(api.New(cfg))
	return app.Run()
}

func configureLogging() {
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if level, err := log.ParseLevel(raw); err == nil {
			log.SetLevel(level)
		}
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
