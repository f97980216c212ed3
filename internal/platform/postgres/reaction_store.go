package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/platform/logger"
	"github.com/lenta-app/lenta-api/internal/store"
)

// ReactionStore implements the store.ReactionStore interface using a
// PostgreSQL database as the storage backend. Reaction kinds live as seeded
// rows in the reactions table and are resolved by name with a sub-select at
// insert time. The unique index on (users_id, articles_id) guarantees at
// most one reaction per user per article.
type ReactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReactionStore creates a new PostgreSQL implementation of the
// ReactionStore interface. If logger is nil, a default logger will be used.
func NewReactionStore(db store.DBTX, logger *slog.Logger) *ReactionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "reaction_store")),
	}
}

// Ensure ReactionStore implements store.ReactionStore interface
var _ store.ReactionStore = (*ReactionStore)(nil)

// Exists implements store.ReactionStore.Exists
func (s *ReactionStore) Exists(ctx context.Context, userID, articleID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM articles_reactions
			WHERE users_id = $1 AND articles_id = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, articleID).Scan(&exists); err != nil {
		log.Error("failed to check reaction existence",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.Int64("article_id", articleID))
		return false, MapError(err)
	}
	return exists, nil
}

// Insert implements store.ReactionStore.Insert
// The kind is resolved by name against the seeded reactions table. A second
// reaction for the pair is store.ErrReactionExists; an unknown kind name
// surfaces as store.ErrInvalidReference because the sub-select yields NULL
// for the reactions_id column.
func (s *ReactionStore) Insert(
	ctx context.Context,
	userID, articleID int64,
	kind domain.ReactionKind,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := kind.Validate(); err != nil {
		log.Warn("reaction kind validation failed",
			slog.String("error", err.Error()),
			slog.String("kind", string(kind)))
		return fmt.Errorf("%w: %v", store.ErrInvalidReference, err)
	}

	query := `
		INSERT INTO articles_reactions (users_id, articles_id, reactions_id)
		VALUES ($1, $2, (SELECT id FROM reactions WHERE description = $3))
	`

	_, err := s.db.ExecContext(ctx, query, userID, articleID, string(kind))
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("reaction already exists",
				slog.Int64("user_id", userID),
				slog.Int64("article_id", articleID))
			return MapUniqueViolation(err, store.ErrReactionExists)
		}
		log.Error("failed to insert reaction",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.Int64("article_id", articleID),
			slog.String("kind", string(kind)))
		return MapError(err)
	}

	log.Info("reaction created",
		slog.Int64("user_id", userID),
		slog.Int64("article_id", articleID),
		slog.String("kind", string(kind)))
	return nil
}

// Remove implements store.ReactionStore.Remove
// Deletes by (user, article) regardless of kind; removing an absent
// reaction is a no-op.
func (s *ReactionStore) Remove(ctx context.Context, userID, articleID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM articles_reactions
		WHERE users_id = $1 AND articles_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, userID, articleID)
	if err != nil {
		log.Error("failed to delete reaction",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.Int64("article_id", articleID))
		return MapError(err)
	}

	log.Info("reaction removed",
		slog.Int64("user_id", userID),
		slog.Int64("article_id", articleID))
	return nil
}

// GetForUser implements store.ReactionStore.GetForUser
// Absence of a reaction is ("", false), not an error.
func (s *ReactionStore) GetForUser(
	ctx context.Context,
	userID, articleID int64,
) (domain.ReactionKind, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT r.description
		FROM articles_reactions AS ar
		JOIN reactions AS r ON ar.reactions_id = r.id
		WHERE ar.users_id = $1 AND ar.articles_id = $2
	`

	var kind string
	err := s.db.QueryRowContext(ctx, query, userID, articleID).Scan(&kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		log.Error("failed to get reaction for user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.Int64("article_id", articleID))
		return "", false, MapError(err)
	}

	return domain.ReactionKind(kind), true, nil
}

// Counts implements store.ReactionStore.Counts
// Two independent aggregate queries, one per kind. With exactly two kinds a
// grouped query saves little and this keeps each statement trivial.
func (s *ReactionStore) Counts(ctx context.Context, articleID int64) (likes, dislikes int64, err error) {
	likes, err = s.countKind(ctx, articleID, domain.ReactionLike)
	if err != nil {
		return 0, 0, err
	}

	dislikes, err = s.countKind(ctx, articleID, domain.ReactionDislike)
	if err != nil {
		return 0, 0, err
	}

	return likes, dislikes, nil
}

func (s *ReactionStore) countKind(
	ctx context.Context,
	articleID int64,
	kind domain.ReactionKind,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(ar.id)
		FROM articles_reactions AS ar
		JOIN reactions AS r ON ar.reactions_id = r.id
		WHERE ar.articles_id = $1 AND r.description = $2
	`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, articleID, string(kind)).Scan(&count); err != nil {
		log.Error("failed to count reactions",
			slog.String("error", err.Error()),
			slog.Int64("article_id", articleID),
			slog.String("kind", string(kind)))
		return 0, MapError(err)
	}
	return count, nil
}
