// cmd/seed: writes the default product options and settings. Safe to rerun.
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"os"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/config"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/infra"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	res, err := service.SeedDefaults(context.Background(),
		repository.NewProductOptionRepository(db),
		repository.NewSettingRepository(db),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	if res.Options == 0 && len(res.Settings) == 0 {
		log.Info().Msg("nothing to seed, defaults already present")
	}
}
