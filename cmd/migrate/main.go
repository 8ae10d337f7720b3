// cmd/migrate: applies or rolls back the versioned schema migrations.
// Uso: go run ./cmd/migrate [up|down|version]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/config"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/infra"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	m, err := infra.NewMigrator(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build migrator")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		// One step at a time; a full rollback drops every table.
		err = m.Steps(-1)
	case "version":
	default:
		fmt.Fprintf(os.Stderr, "usage: migrate [up|down|version]\n")
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("command", cmd).Msg("migration failed")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal().Err(err).Msg("failed to read schema version")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Str("command", cmd).Msg("done")
}
