package postgres

import (
	"context"
	"log/slog"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/platform/logger"
	"github.com/lenta-app/lenta-api/internal/store"
)

// CommentStore implements the store.CommentStore interface using a
// PostgreSQL database as the storage backend. Comments are append-only:
// there is no update or delete here, rows disappear only when their article
// or author cascades away.
type CommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCommentStore creates a new PostgreSQL implementation of the
// CommentStore interface. If logger is nil, a default logger will be used.
func NewCommentStore(db store.DBTX, logger *slog.Logger) *CommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

// Ensure CommentStore implements store.CommentStore interface
var _ store.CommentStore = (*CommentStore)(nil)

// Insert implements store.CommentStore.Insert
// Returns store.ErrInvalidReference when the user or article is missing.
func (s *CommentStore) Insert(ctx context.Context, comment *domain.NewComment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed",
			slog.String("error", err.Error()),
			slog.Int64("user_id", comment.UserID),
			slog.Int64("article_id", comment.ArticleID))
		return err
	}

	query := `
		INSERT INTO articles_comments (users_id, articles_id, message)
		VALUES ($1, $2, $3)
	`

	_, err := s.db.ExecContext(ctx, query, comment.UserID, comment.ArticleID, comment.Message)
	if err != nil {
		log.Error("failed to insert comment",
			slog.String("error", err.Error()),
			slog.Int64("user_id", comment.UserID),
			slog.Int64("article_id", comment.ArticleID))
		return MapError(err)
	}

	log.Info("comment created",
		slog.Int64("user_id", comment.UserID),
		slog.Int64("article_id", comment.ArticleID))
	return nil
}

// ListByArticle implements store.CommentStore.ListByArticle
// Comments come back with the author's public profile, ordered by publish
// time ascending; the row ID breaks ties within the same timestamp.
func (s *CommentStore) ListByArticle(ctx context.Context, articleID int64) ([]*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ac.id, ac.articles_id, ac.message, ac.publish_date,
			u.id, u.first_name, u.last_name, COALESCE(u.about, ''), u.login,
			u.crop_avatar, u.full_avatar, u.date_registration
		FROM articles_comments AS ac
		JOIN users AS u ON ac.users_id = u.id
		WHERE ac.articles_id = $1
		ORDER BY ac.publish_date ASC, ac.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, articleID)
	if err != nil {
		log.Error("failed to query comments",
			slog.String("error", err.Error()),
			slog.Int64("article_id", articleID))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		var comment domain.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.ArticleID,
			&comment.Message,
			&comment.PublishDate,
			&comment.Author.ID,
			&comment.Author.FirstName,
			&comment.Author.LastName,
			&comment.Author.About,
			&comment.Author.Login,
			&comment.Author.CropAvatar,
			&comment.Author.FullAvatar,
			&comment.Author.DateRegistration,
		)
		if err != nil {
			log.Error("failed to scan comment row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate comment rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return comments, nil
}
