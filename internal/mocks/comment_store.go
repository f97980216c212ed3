package mocks

import (
	"context"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/store"
)

// MockCommentStore implements store.CommentStore for testing
type MockCommentStore struct {
	InsertFn        func(ctx context.Context, comment *domain.NewComment) error
	ListByArticleFn func(ctx context.Context, articleID int64) ([]*domain.Comment, error)

	Comments []*domain.Comment
	nextID   int64
}

// NewMockCommentStore creates a new mock store with initialized defaults
func NewMockCommentStore() *MockCommentStore {
	return &MockCommentStore{Comments: make([]*domain.Comment, 0)}
}

// Ensure MockCommentStore implements store.CommentStore interface
var _ store.CommentStore = (*MockCommentStore)(nil)

// Insert implements the CommentStore interface
func (m *MockCommentStore) Insert(ctx context.Context, comment *domain.NewComment) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, comment)
	}

	m.nextID++
	m.Comments = append(m.Comments, &domain.Comment{
		ID:        m.nextID,
		Author:    domain.User{ID: comment.UserID},
		ArticleID: comment.ArticleID,
		Message:   comment.Message,
	})
	return nil
}

// ListByArticle implements the CommentStore interface
func (m *MockCommentStore) ListByArticle(ctx context.Context, articleID int64) ([]*domain.Comment, error) {
	if m.ListByArticleFn != nil {
		return m.ListByArticleFn(ctx, articleID)
	}

	comments := make([]*domain.Comment, 0)
	for _, comment := range m.Comments {
		if comment.ArticleID == articleID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}
