package store

import (
	"context"

	"github.com/lenta-app/lenta-api/internal/domain"
)

// ArticleStore defines the interface for article persistence. Listing and
// lookup results come back enriched with the author profile and the derived
// like/dislike counts.
type ArticleStore interface {
	// Insert publishes a new article. The image must already be raw bytes;
	// transport encoding is the caller's concern. Referencing a missing
	// author is ErrInvalidReference.
	Insert(ctx context.Context, article *domain.NewArticle) error

	// List returns all articles in insertion order (ascending ID), each
	// enriched with the author profile and reaction counts.
	List(ctx context.Context) ([]*domain.Article, error)

	// ListByAuthor returns the author's articles with the same enrichment
	// and ordering as List.
	ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Article, error)

	// GetByID retrieves a single enriched article.
	// Returns ErrArticleNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.Article, error)

	// Delete removes the article; comments and reactions go with it via
	// cascade. Deleting an absent article is a no-op, which keeps the
	// exists -> author check -> delete sequence safe under races.
	Delete(ctx context.Context, id int64) error

	// IsAuthoredBy reports whether the user is the article's author.
	IsAuthoredBy(ctx context.Context, userID, articleID int64) (bool, error)
}

// CommentStore defines the interface for append-only article comments.
type CommentStore interface {
	// Insert appends a comment. Referencing a missing user or article is
	// ErrInvalidReference.
	Insert(ctx context.Context, comment *domain.NewComment) error

	// ListByArticle returns the article's comments with author profiles,
	// ordered by publish time ascending (ID breaks ties).
	ListByArticle(ctx context.Context, articleID int64) ([]*domain.Comment, error)
}
