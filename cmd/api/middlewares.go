package main

import (
	"context"
	"errors"
	"fmt"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/services/auth"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				err, ok := rvr.(error)
				if !ok {
					err = fmt.Errorf("%v", rvr)
				}
				w.Header().Set("Connection", "close")
				app.Http.ServerError(w, r, err, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// middleware.RealIP may already have stripped the port.
		return r.RemoteAddr
	}
	return ip
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	if app.cfg.Limiter.Enabled {
		go func() {
			for {
				time.Sleep(time.Minute)
				mu.Lock()
				for ip, client := range clients {
					if time.Since(client.lastSeen) > 3*time.Minute {
						delete(clients, ip)
					}
				}
				mu.Unlock()
			}
		}()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.cfg.Limiter.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		ip := clientIP(r)
		mu.Lock()
		c, ok := clients[ip]
		if !ok {
			c = &client{limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst)}
			clients[ip] = c
		}
		c.lastSeen = time.Now()
		allowed := c.limiter.Allow()
		mu.Unlock()
		if !allowed {
			log.Warn("rate limit exceeded", "ip", ip)
			app.Http.TooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyUser CtxKey = "user"

func (app *Application) contextSetUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), CtxKeyUser, user))
}

// Authenticate resolves the bearer token, if any, into a user. Requests without
// a usable token carry models.AnonymousUser and are rejected later by
// requireAuthenticatedUser on the routes that need it.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "middlewares.Authenticate"
		log := app.Http.setupLogPerReq(r).With("op", op)
		user, err := app.userFromRequest(r)
		switch {
		case err == nil:
		case errors.Is(err, errNoAuthHeader):
			user = models.AnonymousUser
		case errors.Is(err, errUnauthenticated):
			log.Debug("request is not authenticated", "reason", err.Error())
			user = models.AnonymousUser
		default:
			app.Http.ServerError(w, r, err, "")
			return
		}
		next.ServeHTTP(w, app.contextSetUser(r, user))
	})
}

var (
	errNoAuthHeader    = errors.New("no authorization header")
	errUnauthenticated = errors.New("unauthenticated")
)

func (app *Application) userFromRequest(r *http.Request) (*models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errNoAuthHeader
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, fmt.Errorf("%w: malformed authorization header", errUnauthenticated)
	}
	claims, err := app.services.Auth.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errUnauthenticated, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", errUnauthenticated)
	}
	user, err := app.services.Auth.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", errUnauthenticated, err)
		}
		return nil, err
	}
	return user, nil
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.contextGetUser(r).IsAnonymous() {
			app.Http.Unauthorized(w, r, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Metrics records every request under its chi route pattern, not the raw path.
func (app *Application) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		app.metrics.RecordHTTPRequest(r.Method, route, status, time.Since(start))
	})
}
