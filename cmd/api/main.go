package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/greenstore-api/internal/application/approval"
	"github.com/jhoicas/greenstore-api/internal/application/discounts"
	"github.com/jhoicas/greenstore-api/internal/application/inventory"
	"github.com/jhoicas/greenstore-api/internal/application/pos"
	"github.com/jhoicas/greenstore-api/internal/application/sales"
	"github.com/jhoicas/greenstore-api/internal/application/settings"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
	"github.com/jhoicas/greenstore-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/greenstore-api/internal/infrastructure/pdf"
	"github.com/jhoicas/greenstore-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/greenstore-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/greenstore-api/internal/interfaces/http"
	"github.com/jhoicas/greenstore-api/pkg/config"
	"github.com/jhoicas/greenstore-api/pkg/jwt"
	"github.com/jhoicas/greenstore-api/pkg/logger"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
	"github.com/jhoicas/greenstore-api/pkg/migrate"
)

// Contraseñas de los usuarios demo del store en memoria.
const (
	demoAdminPassword    = "admin123"
	demoManagerPassword  = "gerente123"
	demoOperatorPassword = "caja123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		tx    repository.TxRunner
		repos repository.Repos
	)
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.New()
		if err := store.SeedDemo(demoAdminPassword, demoManagerPassword, demoOperatorPassword); err != nil {
			log.Fatal().Err(err).Msg("cargar datos demo")
		}
		tx, repos = store, store.Repos()
		logDevTokens(ctx, log, cfg, repos)
	default:
		if cfg.DB.AutoMigrate {
			if err := runMigrations(ctx, cfg.DB); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		tx, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	// Bloqueo por intentos fallidos de aprobación: Redis si está configurado, si no en proceso.
	var limiter approval.AttemptLimiter = memory.NewAttemptLimiter()
	if cfg.Redis.Enabled() {
		client, err := infraredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer client.Close()
		limiter = infraredis.NewAttemptLimiter(client)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: el bloqueo por intentos no se comparte entre instancias")
	}

	rec := metrics.New()
	approvals := approval.NewService(tx, repos, cfg.Approval.TokenSecret, limiter, rec)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:     cfg.App.Name,
		DocsFile: docsFile(),
	}, log, rec, httpRouter.RouterDeps{
		Sales:     sales.NewUseCase(tx, repos, infrapdf.NewReceiptGenerator("GreenStore"), rec),
		Stock:     inventory.NewStockUseCase(tx, repos, approvals, rec),
		Approvals: approvals,
		POS:       pos.NewUseCase(tx, approvals),
		Discounts: discounts.NewUseCase(tx, repos),
		Settings:  settings.NewUseCase(tx, repos),
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func runMigrations(ctx context.Context, cfg config.DBConfig) error {
	db, err := migrate.Open(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()
	return migrate.Up(ctx, db)
}

// docsFile devuelve la ruta del swagger.json si existe; sin archivo no se monta /docs.
func docsFile() string {
	const path = "./docs/swagger.json"
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// logDevTokens imprime un JWT por usuario demo; el emisor de sesiones vive fuera de este servicio.
func logDevTokens(ctx context.Context, log *logger.Logger, cfg *config.Config, repos repository.Repos) {
	for _, email := range []string{"admin@greenstore.local", "gerente@greenstore.local", "supervisor@greenstore.local", "caja@greenstore.local"} {
		u, err := repos.Users.GetByEmail(ctx, email)
		if err != nil || u == nil {
			continue
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{UserID: u.ID, Name: u.Name, Role: u.Role}, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("generar token demo")
			continue
		}
		log.Info().Str("email", email).Str("role", u.Role).Str("token", tok).Msg("token de desarrollo")
	}
}
