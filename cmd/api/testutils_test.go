package main

import (
	"bytes"
	"encoding/json"
	"io"
	"movieapi/proj/internal/config"
	"movieapi/proj/internal/lib/hasher"
	"movieapi/proj/internal/lib/logger"
	"movieapi/proj/internal/lib/tokens"
	"movieapi/proj/internal/metrics"
	"movieapi/proj/internal/services"
	"movieapi/proj/internal/services/auth"
	"movieapi/proj/internal/services/movies"
	"movieapi/proj/internal/storage/inmemory"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{
		AppSecret: testSecret,
		TokenTTL:  time.Hour,
		Storage:   config.Storage{Driver: config.StorageDriverMemory},
	}
	log := logger.SetupLogger(false, io.Discard)
	svcs := &services.Services{
		Auth: auth.New(
			log,
			inmemory.NewUserStore(),
			hasher.New(hasher.Params{Memory: 64, Iterations: 1, Parallelism: 1}),
			tokens.New(testSecret, cfg.TokenTTL),
			nil,
			nil,
		),
		Movies: movies.New(log, inmemory.NewMovieStore()),
	}
	return NewApplication(cfg, log, svcs, metrics.New())
}

type testClient struct {
	t       *testing.T
	handler http.Handler
}

func newTestClient(t *testing.T, app *Application) *testClient {
	return &testClient{t: t, handler: app.routes()}
}

// do sends body (marshalled to JSON unless it is already a string) and returns the recorder.
func (c *testClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// register creates a user and returns its auth result.
func (c *testClient) register(email string) auth.AuthResult {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/auth/register", "", envelop{
		"email":     email,
		"password":  "Passw0rd!",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[auth.AuthResult](c.t, rec)
}

func validMovie() envelop {
	return envelop{
		"title":       "Inception",
		"description": "A thief who steals corporate secrets through dream-sharing technology.",
		"releaseDate": "2010-07-16",
		"rating":      5,
		"gender":      "Male",
		"actors":      []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt"},
		"imageUrl":    "https://example.com/inception.jpg",
	}
}

// movieBody mirrors the public representation of a movie.
type movieBody struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"releaseDate"`
	Rating      int      `json:"rating"`
	Gender      string   `json:"gender"`
	Actors      []string `json:"actors"`
	ImageURL    string   `json:"imageUrl"`
}

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    any    `json:"message"`
}
