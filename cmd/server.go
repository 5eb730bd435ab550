package cmd

import (
	"phishdetect/features/cache"
	"phishdetect/features/web"
	"phishdetect/internal/config"
	"phishdetect/internal/runner"
	"phishdetect/internal/telemetry"

	"github.com/ory/graceful"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// WebServer is the CLI command that starts the web API server.
var WebServer = &cli.Command{
	Name:    "serve",
	Aliases: []string{"s"},
	Usage:   "Start web API server",
	Action:  serve,
}

func serve(c *cli.Context) (err error) {
	cfg := config.GetConfig()

	telemetryShutdown, err := telemetry.InitTelemetry(c.Context, "phishdetect", c.App.Version)
	if err != nil {
		log.Warn().Err(err).Msg("Telemetry initialization failed, continuing without tracing")
	} else {
		defer telemetryShutdown(c.Context)
	}

	app, err := web.NewApplication(&cfg.Server)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create web application")
		return err
	}

	if cfg.Cache.Enabled {
		log.Trace().Msg("Initializing verdict cache")
		if err = cache.InitializeCache(c.Context); err != nil {
			log.Error().Err(err).Msg("Failed to initialize verdict cache")
			return err
		}
		defer cache.Close()
		log.Debug().Msg("Badger cache initialized")
	}

	if _, err := runner.InitializeRunner(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler runner")
	}
	defer runner.ShutdownRunner(c.Context)

	server := graceful.WithDefaults(app.Echo.Server)
	log.Info().Msgf("Starting server on %s", server.Addr)

	if err = graceful.Graceful(server.ListenAndServe, server.Shutdown); err != nil {
		log.Error().Err(err).Msg("Failed to start server")
		return err
	}

	log.Info().Msg("Server stopped gracefully.")
	return nil
}
