package mocks

import (
	"context"
	"sort"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/store"
)

// MockArticleStore implements store.ArticleStore for testing
type MockArticleStore struct {
	InsertFn       func(ctx context.Context, article *domain.NewArticle) error
	ListFn         func(ctx context.Context) ([]*domain.Article, error)
	ListByAuthorFn func(ctx context.Context, authorID int64) ([]*domain.Article, error)
	GetByIDFn      func(ctx context.Context, id int64) (*domain.Article, error)
	DeleteFn       func(ctx context.Context, id int64) error
	IsAuthoredByFn func(ctx context.Context, userID, articleID int64) (bool, error)

	Articles map[int64]*domain.Article
	nextID   int64
}

// NewMockArticleStore creates a new mock store with initialized defaults
func NewMockArticleStore() *MockArticleStore {
	return &MockArticleStore{Articles: make(map[int64]*domain.Article)}
}

// Ensure MockArticleStore implements store.ArticleStore interface
var _ store.ArticleStore = (*MockArticleStore)(nil)

// Insert implements the ArticleStore interface
func (m *MockArticleStore) Insert(ctx context.Context, article *domain.NewArticle) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, article)
	}

	m.nextID++
	m.Articles[m.nextID] = &domain.Article{
		ID:          m.nextID,
		Author:      domain.User{ID: article.AuthorID},
		Image:       article.Image,
		Title:       article.Title,
		Description: article.Description,
	}
	return nil
}

// List implements the ArticleStore interface
func (m *MockArticleStore) List(ctx context.Context) ([]*domain.Article, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	return m.sortedArticles(func(*domain.Article) bool { return true }), nil
}

// ListByAuthor implements the ArticleStore interface
func (m *MockArticleStore) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Article, error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, authorID)
	}

	return m.sortedArticles(func(a *domain.Article) bool { return a.Author.ID == authorID }), nil
}

// sortedArticles returns matching articles in ascending ID order, mirroring
// the listing order of the real store.
func (m *MockArticleStore) sortedArticles(match func(*domain.Article) bool) []*domain.Article {
	articles := make([]*domain.Article, 0, len(m.Articles))
	for _, article := range m.Articles {
		if match(article) {
			articles = append(articles, article)
		}
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	return articles
}

// GetByID implements the ArticleStore interface
func (m *MockArticleStore) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	article, ok := m.Articles[id]
	if !ok {
		return nil, store.ErrArticleNotFound
	}
	return article, nil
}

// Delete implements the ArticleStore interface
func (m *MockArticleStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	delete(m.Articles, id)
	return nil
}

// IsAuthoredBy implements the ArticleStore interface
func (m *MockArticleStore) IsAuthoredBy(ctx context.Context, userID, articleID int64) (bool, error) {
	if m.IsAuthoredByFn != nil {
		return m.IsAuthoredByFn(ctx, userID, articleID)
	}

	article, ok := m.Articles[articleID]
	if !ok {
		return false, nil
	}
	return article.Author.ID == userID, nil
}
