package api

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lenta-app/lenta-api/internal/api/shared"
	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/store"
)

// CreateArticleRequest represents the request body for publishing an
// article. The image travels as base64 text and is decoded here, before the
// store ever sees it.
type CreateArticleRequest struct {
	AuthorID    int64  `json:"author_id"   validate:"required,gt=0"`
	Image       string `json:"image"       validate:"required"`
	Title       string `json:"title"       validate:"required,max=64"`
	Description string `json:"description" validate:"required,max=1024"`
}

// CreateCommentRequest represents the request body for appending a comment
type CreateCommentRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Message string `json:"message" validate:"required,max=1024"`
}

// ReactionRequest represents the request body for setting a reaction
type ReactionRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Kind   string `json:"kind"    validate:"required,oneof=like dislike"`
}

// ArticleResponse represents the response data for an article. The image
// serializes as base64, matching the encoding it arrived with.
type ArticleResponse struct {
	ID          int64        `json:"id"`
	Author      UserResponse `json:"author"`
	Image       []byte       `json:"image"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Snippet     string       `json:"snippet,omitempty"`
	PublishDate time.Time    `json:"publish_date"`
	Likes       int64        `json:"likes"`
	Dislikes    int64        `json:"dislikes"`
}

// CommentResponse represents the response data for a comment
type CommentResponse struct {
	ID          int64        `json:"id"`
	Author      UserResponse `json:"author"`
	ArticleID   int64        `json:"article_id"`
	Message     string       `json:"message"`
	PublishDate time.Time    `json:"publish_date"`
}

// ArticleHandler handles article, comment and reaction HTTP requests
type ArticleHandler struct {
	articleStore  store.ArticleStore
	commentStore  store.CommentStore
	reactionStore store.ReactionStore
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(
	articleStore store.ArticleStore,
	commentStore store.CommentStore,
	reactionStore store.ReactionStore,
	logger *slog.Logger,
) *ArticleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleHandler{
		articleStore:  articleStore,
		commentStore:  commentStore,
		reactionStore: reactionStore,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "article_handler")),
	}
}

// Create handles POST /api/articles requests
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "image is not valid base64", err)
		return
	}

	article := domain.NewArticle{
		AuthorID:    req.AuthorID,
		Image:       image,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.articleStore.Insert(r.Context(), &article); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// List handles GET /api/articles requests
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleStore.List(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, articlesToResponse(articles))
}

// ListByAuthor handles GET /api/users/{id}/articles requests
func (h *ArticleHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}

	articles, err := h.articleStore.ListByAuthor(r.Context(), authorID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, articlesToResponse(articles))
}

// Get handles GET /api/articles/{id} requests
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid article id", err)
		return
	}

	article, err := h.articleStore.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, articleToResponse(article))
}

// Delete handles DELETE /api/articles/{id}?user_id= requests.
// The sequence is exists -> author check -> delete; the steps are separate
// statements, which is safe because deleting an already-deleted row is a
// no-op.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid article id", err)
		return
	}
	userID, err := queryID(r, "user_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if _, err := h.articleStore.GetByID(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	authored, err := h.articleStore.IsAuthoredBy(r.Context(), userID, id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if !authored {
		shared.RespondWithError(w, r, http.StatusForbidden, "only the author can delete an article", nil)
		return
	}

	if err := h.articleStore.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateComment handles POST /api/articles/{id}/comments requests
func (h *ArticleHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid article id", err)
		return
	}

	var req CreateCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return
	}

	comment := domain.NewComment{
		UserID:    req.UserID,
		ArticleID: articleID,
		Message:   req.Message,
	}
	if err := h.commentStore.Insert(r.Context(), &comment); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// ListComments handles GET /api/articles/{id}/comments requests
func (h *ArticleHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid article id", err)
		return
	}

	comments, err := h.commentStore.ListByArticle(r.Context(), articleID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	response := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		response = append(response, CommentResponse{
			ID:          comment.ID,
			Author:      userToResponse(&comment.Author),
			ArticleID:   comment.ArticleID,
			Message:     comment.Message,
			PublishDate: comment.PublishDate,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// SetReaction handles PUT /api/articles/{id}/reaction requests.
// Changing an existing reaction is remove-then-insert, two separate
// statements; the unique index turns a concurrent duplicate insert into a
// conflict response instead of a double row.
func (h *ArticleHandler) SetReaction(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid article id", err)
		return
	}

	var req ReactionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return
	}

	exists, err := h.reactionStore.Exists(r.Context(), req.UserID, articleID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if exists {
		if err := h.reactionStore.Remove(r.Context(), req.UserID, articleID); err != nil {
			respondStoreError(w, r, err)
			return
		}
	}

	kind := domain.ReactionKind(req.Kind)
	if err := h.reactionStore.Insert(r.Context(), req.UserID, articleID, kind); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// RemoveReaction handles DELETE /api/articles/{id}/reaction?user_id= requests
func (h *ArticleHandler) RemoveReaction(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid article id", err)
		return
	}
	userID, err := queryID(r, "user_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if err := h.reactionStore.Remove(r.Context(), userID, articleID); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetReaction handles GET /api/articles/{id}/reaction?user_id= requests.
// The kind comes back null when the user has not reacted.
func (h *ArticleHandler) GetReaction(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid article id", err)
		return
	}
	userID, err := queryID(r, "user_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}

	kind, ok, err := h.reactionStore.GetForUser(r.Context(), userID, articleID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	var response struct {
		Kind *string `json:"kind"`
	}
	if ok {
		k := string(kind)
		response.Kind = &k
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// articleToResponse converts a domain.Article to an ArticleResponse
func articleToResponse(article *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:          article.ID,
		Author:      userToResponse(&article.Author),
		Image:       article.Image,
		Title:       article.Title,
		Description: article.Description,
		Snippet:     article.Snippet,
		PublishDate: article.PublishDate,
		Likes:       article.Likes,
		Dislikes:    article.Dislikes,
	}
}

func articlesToResponse(articles []*domain.Article) []ArticleResponse {
	response := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		response = append(response, articleToResponse(article))
	}
	return response
}

// queryID parses a positive integer query parameter. IDs are assigned
// from a sequence starting at 1, so zero and negatives are rejected.
func queryID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, id)
	}
	return id, nil
}
