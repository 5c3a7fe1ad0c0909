// Package server wires the accountd application together: configuration,
// logging, database bootstrap with migrations, the accounts model and the
// HTTP shell, plus signal-driven graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jumpaku/accountd/internal/logging"
	"github.com/jumpaku/accountd/internal/server/accounts"
	"github.com/jumpaku/accountd/internal/server/auth"
	"github.com/jumpaku/accountd/internal/server/config"
	"github.com/jumpaku/accountd/internal/server/httpapi"
	"github.com/jumpaku/accountd/internal/server/migrations"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := openDatabase(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	codec := auth.NewCodec([]byte(cfg.SecretKey), auth.Options{
		Issuer:    cfg.TokenIssuer,
		Audience:  cfg.TokenAudience,
		Subject:   cfg.TokenSubject,
		TTL:       cfg.TokenTTL,
		NotBefore: cfg.TokenNotBefore,
	})

	service := accounts.NewService(accounts.NewPostgresStore(db), codec)
	api := httpapi.NewServer(cfg.EndpointAddr, logger, service)

	return &App{config: cfg, logger: logger, api: api}, nil
}

// openDatabase opens the pgx connection pool and runs the embedded goose
// migrations, which are idempotent and safe on every startup.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return db, nil
}

// Run serves the HTTP API until an interrupt/termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
	}()

	if err := app.api.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
