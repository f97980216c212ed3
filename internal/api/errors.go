package api

import (
	"errors"
	"net/http"

	"github.com/lenta-app/lenta-api/internal/api/shared"
	"github.com/lenta-app/lenta-api/internal/store"
)

// respondStoreError translates a store error into the matching HTTP
// response: NotFound to 404, duplicates to 409, bad references to 422, and
// anything unexpected to a generic 500 (the detail goes to the log, never
// the client).
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case store.IsNotFoundError(err):
		shared.RespondWithError(w, r, http.StatusNotFound, "not found", err)
	case store.IsDuplicateError(err):
		shared.RespondWithError(w, r, http.StatusConflict, "already exists", err)
	case errors.Is(err, store.ErrInvalidReference):
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "invalid reference", err)
	default:
		shared.RespondWithError(w, r, http.StatusInternalServerError, "internal server error", err)
	}
}
