package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/lenta-app/lenta-api/internal/config"
	"github.com/lenta-app/lenta-api/internal/platform/logger"
	"github.com/lenta-app/lenta-api/internal/platform/postgres"
	"github.com/lenta-app/lenta-api/internal/store"
)

// application holds the wired dependencies for the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	followStore   store.FollowStore
	articleStore  store.ArticleStore
	commentStore  store.CommentStore
	reactionStore store.ReactionStore
}

// newApplication loads configuration, connects to the database, runs the
// schema migrations and wires the store layer. The returned application owns
// the database handle; callers must invoke cleanup when done.
func newApplication(ctx context.Context) (*application, error) {
	// Optional .env file for local development; a missing file is fine
	// because production supplies real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := postgres.Connect(ctx, cfg.Database.DSN(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema migrations: %w", err)
	}

	reactionStore := postgres.NewReactionStore(db, log)
	app := &application{
		config:        cfg,
		logger:        log,
		db:            db,
		userStore:     postgres.NewUserStore(db, log),
		followStore:   postgres.NewFollowStore(db, log),
		articleStore:  postgres.NewArticleStore(db, reactionStore, log),
		commentStore:  postgres.NewCommentStore(db, log),
		reactionStore: reactionStore,
	}
	return app, nil
}

// cleanup releases resources owned by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
