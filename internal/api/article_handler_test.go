package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articleStores struct {
	articles  *mocks.MockArticleStore
	comments  *mocks.MockCommentStore
	reactions *mocks.MockReactionStore
}

// newArticleRouter mounts the article handler on the routes the server uses.
func newArticleRouter(s articleStores) http.Handler {
	handler := NewArticleHandler(s.articles, s.comments, s.reactions, nil)

	r := chi.NewRouter()
	r.Post("/api/articles", handler.Create)
	r.Get("/api/articles", handler.List)
	r.Get("/api/articles/{id}", handler.Get)
	r.Delete("/api/articles/{id}", handler.Delete)
	r.Post("/api/articles/{id}/comments", handler.CreateComment)
	r.Get("/api/articles/{id}/comments", handler.ListComments)
	r.Put("/api/articles/{id}/reaction", handler.SetReaction)
	r.Get("/api/articles/{id}/reaction", handler.GetReaction)
	r.Delete("/api/articles/{id}/reaction", handler.RemoveReaction)
	r.Get("/api/users/{id}/articles", handler.ListByAuthor)
	return r
}

func newArticleStores() articleStores {
	return articleStores{
		articles:  mocks.NewMockArticleStore(),
		comments:  mocks.NewMockCommentStore(),
		reactions: mocks.NewMockReactionStore(),
	}
}

func TestCreateArticle(t *testing.T) {
	image := []byte{0x89, 0x50, 0x4e, 0x47}
	validBody := CreateArticleRequest{
		AuthorID:    1,
		Image:       base64.StdEncoding.EncodeToString(image),
		Title:       "First Post",
		Description: "A modest beginning.",
	}

	t.Run("success", func(t *testing.T) {
		stores := newArticleStores()
		router := newArticleRouter(stores)

		rec := postJSON(t, router, http.MethodPost, "/api/articles", validBody)
		require.Equal(t, http.StatusCreated, rec.Code)

		require.Len(t, stores.articles.Articles, 1)
		stored := stores.articles.Articles[1]
		assert.Equal(t, image, stored.Image, "the store must receive decoded bytes")
		assert.Equal(t, "First Post", stored.Title)
	})

	t.Run("invalid base64 image", func(t *testing.T) {
		stores := newArticleStores()
		router := newArticleRouter(stores)

		body := validBody
		body.Image = "!!! definitely not base64 !!!"
		rec := postJSON(t, router, http.MethodPost, "/api/articles", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, stores.articles.Articles, "nothing should reach the store")
	})

	t.Run("missing title", func(t *testing.T) {
		router := newArticleRouter(newArticleStores())

		body := validBody
		body.Title = ""
		rec := postJSON(t, router, http.MethodPost, "/api/articles", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetArticle(t *testing.T) {
	stores := newArticleStores()
	stores.articles.Articles[5] = &domain.Article{
		ID:     5,
		Author: domain.User{ID: 1, Login: "alice"},
		Image:  []byte{0x01},
		Title:  "Stored",
		Likes:  3,
	}
	router := newArticleRouter(stores)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ArticleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "alice", resp.Author.Login)
	assert.Equal(t, int64(3), resp.Likes)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteArticle(t *testing.T) {
	setup := func() (articleStores, http.Handler) {
		stores := newArticleStores()
		stores.articles.Articles[1] = &domain.Article{
			ID:     1,
			Author: domain.User{ID: 10},
			Title:  "Owned",
		}
		stores.articles.Articles[2] = &domain.Article{
			ID:     2,
			Author: domain.User{ID: 20},
			Title:  "Someone else's",
		}
		return stores, newArticleRouter(stores)
	}

	t.Run("author deletes own article", func(t *testing.T) {
		stores, router := setup()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/articles/1?user_id=10", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotContains(t, stores.articles.Articles, int64(1))
	})

	t.Run("non-author is rejected", func(t *testing.T) {
		stores, router := setup()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/articles/1?user_id=20", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, stores.articles.Articles, int64(1), "the article must survive")
	})

	t.Run("missing article", func(t *testing.T) {
		_, router := setup()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/articles/99?user_id=10", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing user_id", func(t *testing.T) {
		_, router := setup()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/articles/1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive user_id", func(t *testing.T) {
		stores, router := setup()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/articles/1?user_id=0", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, stores.articles.Articles, int64(1), "the article must survive")
	})
}

func TestComments(t *testing.T) {
	stores := newArticleStores()
	stores.articles.Articles[1] = &domain.Article{ID: 1, Author: domain.User{ID: 10}}
	router := newArticleRouter(stores)

	rec := postJSON(t, router, http.MethodPost, "/api/articles/1/comments", CreateCommentRequest{
		UserID:  20,
		Message: "first!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, http.MethodPost, "/api/articles/1/comments", CreateCommentRequest{
		UserID:  30,
		Message: "second",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/1/comments", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []CommentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "first!", resp[0].Message)
	assert.Equal(t, "second", resp[1].Message)

	// An empty message never reaches the store.
	rec = postJSON(t, router, http.MethodPost, "/api/articles/1/comments", CreateCommentRequest{
		UserID: 20,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetReaction(t *testing.T) {
	t.Run("first reaction", func(t *testing.T) {
		stores := newArticleStores()
		router := newArticleRouter(stores)

		rec := postJSON(t, router, http.MethodPut, "/api/articles/1/reaction", ReactionRequest{
			UserID: 5,
			Kind:   "like",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		ctx := context.Background()
		kind, ok, err := stores.reactions.GetForUser(ctx, 5, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, domain.ReactionLike, kind)
	})

	t.Run("changing a reaction replaces it", func(t *testing.T) {
		stores := newArticleStores()
		router := newArticleRouter(stores)
		ctx := context.Background()

		require.NoError(t, stores.reactions.Insert(ctx, 5, 1, domain.ReactionLike))

		rec := postJSON(t, router, http.MethodPut, "/api/articles/1/reaction", ReactionRequest{
			UserID: 5,
			Kind:   "dislike",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		kind, ok, err := stores.reactions.GetForUser(ctx, 5, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, domain.ReactionDislike, kind)

		likes, dislikes, err := stores.reactions.Counts(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, likes)
		assert.Equal(t, int64(1), dislikes)
	})

	t.Run("unknown kind", func(t *testing.T) {
		router := newArticleRouter(newArticleStores())

		rec := postJSON(t, router, http.MethodPut, "/api/articles/1/reaction", ReactionRequest{
			UserID: 5,
			Kind:   "love",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code,
			"kinds outside the allowed set fail request validation")
	})
}

func TestGetAndRemoveReaction(t *testing.T) {
	stores := newArticleStores()
	router := newArticleRouter(stores)
	ctx := context.Background()

	getKind := func(t *testing.T) *string {
		t.Helper()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/1/reaction?user_id=5", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Kind *string `json:"kind"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Kind
	}

	assert.Nil(t, getKind(t), "no reaction serializes as null")

	require.NoError(t, stores.reactions.Insert(ctx, 5, 1, domain.ReactionLike))
	kind := getKind(t)
	require.NotNil(t, kind)
	assert.Equal(t, "like", *kind)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/articles/1/reaction?user_id=5", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, getKind(t))

	// Removing again is still a no-op.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/articles/1/reaction?user_id=5", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListByAuthor(t *testing.T) {
	stores := newArticleStores()
	stores.articles.Articles[1] = &domain.Article{ID: 1, Author: domain.User{ID: 10}, Title: "Mine"}
	stores.articles.Articles[2] = &domain.Article{ID: 2, Author: domain.User{ID: 20}, Title: "Theirs"}
	router := newArticleRouter(stores)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/10/articles", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []ArticleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Mine", resp[0].Title)
}
