package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/platform/logger"
	"github.com/lenta-app/lenta-api/internal/store"
)

// ArticleStore implements the store.ArticleStore interface using a
// PostgreSQL database as the storage backend. It depends on a ReactionStore
// to enrich every returned article with its like/dislike tallies.
//
// Enrichment is one extra round trip per listed article. That is the
// dominant cost of the listing calls and only acceptable at the current
// data scale.
type ArticleStore struct {
	db        store.DBTX
	reactions store.ReactionStore
	logger    *slog.Logger
}

// NewArticleStore creates a new PostgreSQL implementation of the
// ArticleStore interface. The reaction store is required for count
// enrichment. If logger is nil, a default logger will be used.
func NewArticleStore(db store.DBTX, reactions store.ReactionStore, logger *slog.Logger) *ArticleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if reactions == nil {
		panic("reactions cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ArticleStore{
		db:        db,
		reactions: reactions,
		logger:    logger.With(slog.String("component", "article_store")),
	}
}

// Ensure ArticleStore implements store.ArticleStore interface
var _ store.ArticleStore = (*ArticleStore)(nil)

// listColumns selects the article fields plus the author profile and the
// truncated description snippet used by feed views.
const listColumns = `a.id, a.image, a.title, a.description,
	LEFT(a.description, 150), a.publish_date,
	u.id, u.first_name, u.last_name, COALESCE(u.about, ''), u.login,
	u.crop_avatar, u.full_avatar, u.date_registration`

// scanArticle maps one row of listColumns onto a domain.Article.
func scanArticle(row interface{ Scan(dest ...any) error }) (*domain.Article, error) {
	var article domain.Article
	err := row.Scan(
		&article.ID,
		&article.Image,
		&article.Title,
		&article.Description,
		&article.Snippet,
		&article.PublishDate,
		&article.Author.ID,
		&article.Author.FirstName,
		&article.Author.LastName,
		&article.Author.About,
		&article.Author.Login,
		&article.Author.CropAvatar,
		&article.Author.FullAvatar,
		&article.Author.DateRegistration,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Insert implements store.ArticleStore.Insert
// Returns store.ErrInvalidReference when the author does not exist.
func (s *ArticleStore) Insert(ctx context.Context, article *domain.NewArticle) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := article.Validate(); err != nil {
		log.Warn("article validation failed",
			slog.String("error", err.Error()),
			slog.Int64("author_id", article.AuthorID))
		return err
	}

	query := `
		INSERT INTO articles (author_id, image, title, description)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		article.AuthorID,
		article.Image,
		article.Title,
		article.Description,
	)
	if err != nil {
		log.Error("failed to insert article",
			slog.String("error", err.Error()),
			slog.Int64("author_id", article.AuthorID))
		return MapError(err)
	}

	log.Info("article created",
		slog.Int64("author_id", article.AuthorID),
		slog.String("title", article.Title))
	return nil
}

// List implements store.ArticleStore.List
// Articles come back in insertion order (ascending ID), enriched with the
// author profile and reaction counts.
func (s *ArticleStore) List(ctx context.Context) ([]*domain.Article, error) {
	query := `
		SELECT ` + listColumns + `
		FROM articles AS a
		JOIN users AS u ON a.author_id = u.id
		ORDER BY a.id
	`
	return s.queryArticles(ctx, query)
}

// ListByAuthor implements store.ArticleStore.ListByAuthor
func (s *ArticleStore) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Article, error) {
	query := `
		SELECT ` + listColumns + `
		FROM articles AS a
		JOIN users AS u ON a.author_id = u.id
		WHERE u.id = $1
		ORDER BY a.id
	`
	return s.queryArticles(ctx, query, authorID)
}

// queryArticles runs a listColumns query and enriches every row with its
// reaction counts.
func (s *ArticleStore) queryArticles(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Article, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query articles", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	articles := make([]*domain.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			log.Error("failed to scan article row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate article rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	for _, article := range articles {
		likes, dislikes, err := s.reactions.Counts(ctx, article.ID)
		if err != nil {
			log.Error("failed to enrich article with reaction counts",
				slog.String("error", err.Error()),
				slog.Int64("article_id", article.ID))
			return nil, err
		}
		article.Likes = likes
		article.Dislikes = dislikes
	}

	return articles, nil
}

// GetByID implements store.ArticleStore.GetByID
// Returns store.ErrArticleNotFound if the article does not exist.
func (s *ArticleStore) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + listColumns + `
		FROM articles AS a
		JOIN users AS u ON a.author_id = u.id
		WHERE a.id = $1
	`

	article, err := scanArticle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("article not found", slog.Int64("article_id", id))
			return nil, store.ErrArticleNotFound
		}
		log.Error("failed to get article by ID",
			slog.String("error", err.Error()),
			slog.Int64("article_id", id))
		return nil, MapError(err)
	}

	likes, dislikes, err := s.reactions.Counts(ctx, id)
	if err != nil {
		log.Error("failed to enrich article with reaction counts",
			slog.String("error", err.Error()),
			slog.Int64("article_id", id))
		return nil, err
	}
	article.Likes = likes
	article.Dislikes = dislikes

	return article, nil
}

// Delete implements store.ArticleStore.Delete
// Comments and reactions cascade with the row. Deleting an absent article
// is a no-op so the exists -> author check -> delete sequence stays safe
// when a concurrent request wins the race.
func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM articles WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete article",
			slog.String("error", err.Error()),
			slog.Int64("article_id", id))
		return MapError(err)
	}

	log.Info("article deleted", slog.Int64("article_id", id))
	return nil
}

// IsAuthoredBy implements store.ArticleStore.IsAuthoredBy
func (s *ArticleStore) IsAuthoredBy(ctx context.Context, userID, articleID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM articles
			WHERE author_id = $1 AND id = $2
		)
	`

	var authored bool
	if err := s.db.QueryRowContext(ctx, query, userID, articleID).Scan(&authored); err != nil {
		log.Error("failed to check article authorship",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.Int64("article_id", articleID))
		return false, MapError(err)
	}
	return authored, nil
}
