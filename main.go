package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"vatreport/cmd"
	"vatreport/internal/config"
	"vatreport/internal/logger"
	"vatreport/internal/metrics"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Commands load the full configuration themselves; here it only drives the logger
	cfg, err := config.Load()
	if err := setupLogger(cfg, err, logger.DefaultConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	metrics.Init()

	log := logger.WithComponent("main")
	log.Debug().Msg("Starting vatreport")

	cmd.Execute()

	log.Debug().Msg("vatreport shutdown")
	os.Exit(0)
}

// setupLogger configures logging from cfg, or from fallback when the
// configuration could not be loaded. The load error is logged at debug level.
func setupLogger(cfg *config.Config, loadErr error, fallback logger.LogConfig) error {
	if loadErr == nil {
		return logger.Setup(cfg.GetLoggerConfig())
	}
	if err := logger.Setup(fallback); err != nil {
		return err
	}
	mainLog := logger.WithComponent("main")
	mainLog.Debug().
		Err(loadErr).
		Msg("Could not load configuration, using default logger")
	return nil
}
