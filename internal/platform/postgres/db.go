package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

// Pool sizing and retry policy for the initial connection. The service is
// expected to come up during container orchestration races where the
// database is not reachable yet, so the first ping retries with backoff.
// The retry budget is generous but bounded: a permanently misconfigured DSN
// fails loudly instead of blocking forever.
const (
	maxOpenConns   = 5
	acquireTimeout = 10 * time.Second

	retryBase   = 5 * time.Second
	retryCap    = 15 * time.Second
	retryBudget = 2 * time.Minute
)

// Connect opens a bounded connection pool to PostgreSQL and waits for the
// database to become reachable. Each attempt pings with a 10 second timeout;
// failed attempts log a retry notice and back off exponentially. Returns an
// error only once the whole retry budget is exhausted.
func Connect(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	backoff := retry.WithCappedDuration(retryCap, retry.NewExponential(retryBase))
	backoff = retry.WithMaxDuration(retryBudget, backoff)

	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		pingCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
		defer cancel()

		if pingErr := db.PingContext(pingCtx); pingErr != nil {
			logger.Warn("database not reachable, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", pingErr.Error()))
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			logger.Error("failed to close database after connect failure",
				slog.String("error", closeErr.Error()))
		}
		return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempt, err)
	}

	logger.Info("database connection established",
		slog.Int("max_open_conns", maxOpenConns))
	return db, nil
}
