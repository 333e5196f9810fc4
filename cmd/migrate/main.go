// migrate aplica las migraciones embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|status|redo|version|reset] [args...]
package main

import (
	"context"
	"os"

	"github.com/jhoicas/greenstore-api/pkg/config"
	"github.com/jhoicas/greenstore-api/pkg/logger"
	"github.com/jhoicas/greenstore-api/pkg/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "greenstore-migrate"})

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command, args = os.Args[1], os.Args[2:]
	}

	db, err := migrate.Open(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()

	if err := migrate.Run(context.Background(), db, command, args...); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		db.Close()
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migración completada")
}
