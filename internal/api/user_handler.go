package api

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/lenta-app/lenta-api/internal/api/shared"
	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/store"
)

// RegisterUserRequest represents the request body for creating a new user
type RegisterUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name"  validate:"required,max=64"`
	About     string `json:"about"      validate:"max=256"`
	Password  string `json:"password"   validate:"required,max=64"`
	Login     string `json:"login"      validate:"required,max=64"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AvatarRequest carries both avatar blobs as base64 text.
type AvatarRequest struct {
	CropAvatar string `json:"crop_avatar" validate:"required"`
	FullAvatar string `json:"full_avatar" validate:"required"`
}

// FollowRequest identifies the follower for a follow/unfollow operation.
type FollowRequest struct {
	FollowerID int64 `json:"follower_id" validate:"required,gt=0"`
}

// UserResponse represents the response data for a user profile.
// Byte-slice fields serialize as base64 strings, which is the wire encoding
// callers expect for the avatar blobs.
type UserResponse struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	About            string    `json:"about,omitempty"`
	Login            string    `json:"login"`
	CropAvatar       []byte    `json:"crop_avatar,omitempty"`
	FullAvatar       []byte    `json:"full_avatar,omitempty"`
	DateRegistration time.Time `json:"date_registration"`
}

// PopularUserResponse represents one entry of the popularity ranking.
type PopularUserResponse struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	About            string    `json:"about,omitempty"`
	CropAvatar       []byte    `json:"crop_avatar,omitempty"`
	DateRegistration time.Time `json:"date_registration"`
	Followers        int64     `json:"followers"`
}

// UserHandler handles user and follow-graph HTTP requests
type UserHandler struct {
	userStore   store.UserStore
	followStore store.FollowStore
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userStore store.UserStore, followStore store.FollowStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userStore:   userStore,
		followStore: followStore,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /api/users requests
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return
	}

	// Cheap fast path; the unique index on login catches the race anyway.
	exists, err := h.userStore.ExistsByLogin(r.Context(), req.Login)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if exists {
		shared.RespondWithError(w, r, http.StatusConflict, "login already taken", nil)
		return
	}

	reg := domain.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		About:     req.About,
		Password:  req.Password,
		Login:     req.Login,
	}
	if err := h.userStore.Insert(r.Context(), &reg); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Login handles POST /api/users/login requests
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return
	}

	user, err := h.userStore.GetByLoginAndPassword(r.Context(), req.Login, req.Password)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid credentials", err)
			return
		}
		respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetUser handles GET /api/users/{id} requests
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetAvatar handles GET /api/avatars/{login} requests
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	crop, full, err := h.userStore.GetAvatar(r.Context(), login)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string][]byte{
		"crop_avatar": crop,
		"full_avatar": full,
	})
}

// SetAvatar handles PUT /api/avatars/{login} requests.
// Avatars arrive base64-encoded; a bad encoding is the caller's error and
// never reaches the store.
func (h *UserHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	var req AvatarRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return
	}

	crop, err := base64.StdEncoding.DecodeString(req.CropAvatar)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "crop_avatar is not valid base64", err)
		return
	}
	full, err := base64.StdEncoding.DecodeString(req.FullAvatar)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "full_avatar is not valid base64", err)
		return
	}

	if err := h.userStore.SetAvatar(r.Context(), login, crop, full); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FollowerCount handles GET /api/users/{id}/followers/count requests
func (h *UserHandler) FollowerCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}

	count, err := h.followStore.FollowerCount(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int64{"followers": count})
}

// IsFollowing handles GET /api/users/{id}/followers/{followerID} requests
func (h *UserHandler) IsFollowing(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}
	followerID, err := pathID(r, "followerID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid follower id", err)
		return
	}

	following, err := h.followStore.IsFollowing(r.Context(), authorID, followerID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]bool{"following": following})
}

// Follow handles POST /api/users/{id}/followers requests
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}

	var req FollowRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return
	}

	if err := h.followStore.Follow(r.Context(), authorID, req.FollowerID); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Unfollow handles DELETE /api/users/{id}/followers/{followerID} requests
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}
	followerID, err := pathID(r, "followerID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid follower id", err)
		return
	}

	if err := h.followStore.Unfollow(r.Context(), authorID, followerID); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Popular handles GET /api/users/popular requests. The optional exclude
// query parameter removes the requesting user from the ranking.
func (h *UserHandler) Popular(w http.ResponseWriter, r *http.Request) {
	var excludeID int64
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		var err error
		excludeID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "invalid exclude id", err)
			return
		}
	}

	popular, err := h.followStore.PopularUsers(r.Context(), excludeID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	response := make([]PopularUserResponse, 0, len(popular))
	for _, user := range popular {
		response = append(response, PopularUserResponse{
			ID:               user.ID,
			FirstName:        user.FirstName,
			LastName:         user.LastName,
			About:            user.About,
			CropAvatar:       user.CropAvatar,
			DateRegistration: user.DateRegistration,
			Followers:        user.Followers,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Search handles GET /api/users/search?q= requests
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}

	users, err := h.userStore.SearchByName(r.Context(), query)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, userToResponse(user))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// userToResponse converts a domain.User to a UserResponse
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		About:            user.About,
		Login:            user.Login,
		CropAvatar:       user.CropAvatar,
		FullAvatar:       user.FullAvatar,
		DateRegistration: user.DateRegistration,
	}
}

// pathID parses a positive integer chi URL parameter. IDs are assigned
// from a sequence starting at 1, so zero and negatives are rejected.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, id)
	}
	return id, nil
}
