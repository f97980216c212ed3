//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/platform/postgres"
	"github.com/lenta-app/lenta-api/internal/store"
	"github.com/stretchr/testify/require"
)

// mustRegisterUser inserts a user through the store and returns the stored
// row. Logins must be unique per test, so callers pass a distinguishing
// suffix.
func mustRegisterUser(ctx context.Context, t *testing.T, tx *sql.Tx, login string) *domain.User {
	t.Helper()

	userStore := postgres.NewUserStore(tx, nil)
	reg := domain.Registration{
		FirstName: "Test",
		LastName:  "User",
		Password:  "password-" + login,
		Login:     login,
	}
	require.NoError(t, userStore.Insert(ctx, &reg), "user insert should succeed")

	user, err := userStore.GetByLoginAndPassword(ctx, reg.Login, reg.Password)
	require.NoError(t, err, "inserted user should be retrievable")
	return user
}

// mustPublishArticle inserts an article for the author and returns the
// stored row.
func mustPublishArticle(
	ctx context.Context,
	t *testing.T,
	tx *sql.Tx,
	authorID int64,
	title string,
) *domain.Article {
	t.Helper()

	articleStore := newArticleStore(tx)
	article := domain.NewArticle{
		AuthorID:    authorID,
		Image:       []byte{0x01, 0x02, 0x03},
		Title:       title,
		Description: fmt.Sprintf("body of %s", title),
	}
	require.NoError(t, articleStore.Insert(ctx, &article), "article insert should succeed")

	articles, err := articleStore.ListByAuthor(ctx, authorID)
	require.NoError(t, err)
	require.NotEmpty(t, articles, "author should have at least one article after insert")

	for _, a := range articles {
		if a.Title == title {
			return a
		}
	}
	t.Fatalf("article %q not found after insert", title)
	return nil
}

// newArticleStore wires an article store with its reaction dependency.
func newArticleStore(tx store.DBTX) *postgres.ArticleStore {
	return postgres.NewArticleStore(tx, postgres.NewReactionStore(tx, nil), nil)
}
