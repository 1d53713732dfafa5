package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Cannot "+r.Method+" "+r.URL.Path)
	})
	router.MethodNotAllowed(app.Http.MethodNotAllowed)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(app.Metrics)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)

	router.Get("/", app.welcome)
	router.Get("/healthcheck", app.healthcheck)
	router.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.register)
		r.Post("/login", app.login)
	})
	router.Route("/movies", func(r chi.Router) {
		r.Get("/", app.listMovies)
		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Post("/", app.createMovie)
			r.Patch("/{id}", app.updateMovie)
			r.Delete("/{id}", app.deleteMovie)
		})
	})
	return router
}
