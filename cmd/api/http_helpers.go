package main

import (
	"fmt"
	"log/slog"
	"movieapi/proj/internal/config"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Http struct {
	log *slog.Logger
	cfg *config.Config
}

type envelop map[string]any

// ErrorResponse is the body of every non-2xx response. Message is either a
// string or, for validation failures, a list of strings.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    any    `json:"message"`
}

func (h *Http) setupLogPerReq(r *http.Request) *slog.Logger {
	return h.log.With(
		"request_id",
		middleware.GetReqID(r.Context()),
		"method",
		r.Method,
		"path",
		r.URL.Path,
	)
}

func (h *Http) Response(w http.ResponseWriter, r *http.Request, data any, status int) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func (h *Http) Ok(w http.ResponseWriter, r *http.Request, data any) {
	h.Response(w, r, data, http.StatusOK)
}

func (h *Http) Created(w http.ResponseWriter, r *http.Request, data any) {
	h.Response(w, r, data, http.StatusCreated)
}

func (h *Http) Error(w http.ResponseWriter, r *http.Request, status int, msg any) {
	if s, ok := msg.(string); ok && s == "" {
		msg = http.StatusText(status)
	}
	h.Response(w, r, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    msg,
	}, status)
}

func (h *Http) BadRequest(w http.ResponseWriter, r *http.Request, msg any) {
	h.Error(w, r, http.StatusBadRequest, msg)
}

func (h *Http) Unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	h.Error(w, r, http.StatusUnauthorized, msg)
}

func (h *Http) Forbidden(w http.ResponseWriter, r *http.Request, msg string) {
	h.Error(w, r, http.StatusForbidden, msg)
}

func (h *Http) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.Error(w, r, http.StatusNotFound, msg)
}

func (h *Http) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.Error(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
}

func (h *Http) Conflict(w http.ResponseWriter, r *http.Request, msg string) {
	h.Error(w, r, http.StatusConflict, msg)
}

func (h *Http) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.Error(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

func (h *Http) ServerError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := http.StatusInternalServerError
	log := h.setupLogPerReq(r)
	if err != nil {
		log.Error(err.Error())
	}
	if msg == "" {
		msg = "Sorry! Can't process your request. Please try again later."
	}
	if h.cfg.Debug && err != nil {
		msg = err.Error() + "\n" + string(debug.Stack())
		w.WriteHeader(status)
		w.Write([]byte(msg))
		return
	}
	h.Error(w, r, status, msg)
}
