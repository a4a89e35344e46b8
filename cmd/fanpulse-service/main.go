package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/fanpulse/fanpulse/fanservice"
	"github.com/fanpulse/fanpulse/internal/config"
)

func main() {
	// Optional build-target flag override (local | cloud)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud)")
	flag.Parse()

	// Best-effort .env load for local development
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	if *buildTarget != "" {
		cfg.BuildTarget = *buildTarget
		cfg.DBDriver = "auto"
		if err := cfg.ResolveDefaults(); err != nil {
			log.Error().Err(err).Msg("Invalid build-target override")
			os.Exit(1)
		}
	}

	if err := fanservice.Run(cfg); err != nil {
		os.Exit(1)
	}
}
