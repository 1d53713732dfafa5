package main

import (
	"errors"
	"movieapi/proj/internal/services/auth"
	"movieapi/proj/internal/services/movies"
	"movieapi/proj/internal/storage"
	"net/http"
)

const (
	msgUnauthorized       = "Unauthorized"
	msgForbidden          = "You are unauthorized to access this resource."
	msgInvalidCredentials = "Credentials do not match"
)

// handleServiceError maps domain errors returned by the services to http responses.
func (app *Application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *storage.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		app.Http.Conflict(w, r, conflictErr.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		app.Http.Forbidden(w, r, msgInvalidCredentials)
	case errors.Is(err, movies.ErrForbidden):
		app.Http.Forbidden(w, r, msgForbidden)
	case errors.Is(err, auth.ErrUserNotFound):
		app.Http.Unauthorized(w, r, msgUnauthorized)
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
