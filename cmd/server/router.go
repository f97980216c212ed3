package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lenta-app/lenta-api/internal/api"
	apiMiddleware "github.com/lenta-app/lenta-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	userHandler := api.NewUserHandler(app.userStore, app.followStore, app.logger)
	articleHandler := api.NewArticleHandler(
		app.articleStore,
		app.commentStore,
		app.reactionStore,
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.Get("/popular", userHandler.Popular)
			r.Get("/search", userHandler.Search)
			r.Get("/{id}", userHandler.GetUser)
			r.Get("/{id}/articles", articleHandler.ListByAuthor)
			r.Get("/{id}/followers/count", userHandler.FollowerCount)
			r.Post("/{id}/followers", userHandler.Follow)
			r.Get("/{id}/followers/{followerID}", userHandler.IsFollowing)
			r.Delete("/{id}/followers/{followerID}", userHandler.Unfollow)
		})

		// Avatars are addressed by login, so they live in their own subtree
		// instead of colliding with the numeric /users/{id} parameter.
		r.Route("/avatars", func(r chi.Router) {
			r.Get("/{login}", userHandler.GetAvatar)
			r.Put("/{login}", userHandler.SetAvatar)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Post("/", articleHandler.Create)
			r.Get("/", articleHandler.List)
			r.Get("/{id}", articleHandler.Get)
			r.Delete("/{id}", articleHandler.Delete)
			r.Post("/{id}/comments", articleHandler.CreateComment)
			r.Get("/{id}/comments", articleHandler.ListComments)
			r.Put("/{id}/reaction", articleHandler.SetReaction)
			r.Get("/{id}/reaction", articleHandler.GetReaction)
			r.Delete("/{id}/reaction", articleHandler.RemoveReaction)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
