package main

import (
	"context"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/lib/tokens"
	"movieapi/proj/internal/services/auth"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredAuthenticatedUser(t *testing.T) {
	app := NewTestApplication(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyUser, &models.User{
			ID:    uuid.New(),
			Email: "test@gmail.com",
		}))
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyUser, models.AnonymousUser))
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("no user in context", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestAuthenticate(t *testing.T) {
	app := NewTestApplication(t)
	registered, err := app.services.Auth.Register(context.Background(), auth.RegisterParams{
		Email:     "test@gmail.com",
		Password:  "Passw0rd!",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)

	pastClock := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := tokens.New(testSecret, time.Hour, tokens.WithClock(pastClock)).Issue(registered.ID.String(), registered.Email)
	require.NoError(t, err)
	unknownUser, err := tokens.New(testSecret, time.Hour).Issue(uuid.NewString(), "ghost@gmail.com")
	require.NoError(t, err)
	notUUID, err := tokens.New(testSecret, time.Hour).Issue("42", "ghost@gmail.com")
	require.NoError(t, err)
	foreign, err := tokens.New("another-secret", time.Hour).Issue(registered.ID.String(), registered.Email)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		header        string
		authenticated bool
	}{
		{"no header", "", false},
		{"valid token", "Bearer " + registered.Token, true},
		{"lowercase scheme", "bearer " + registered.Token, true},
		{"wrong scheme", "Token " + registered.Token, false},
		{"missing token", "Bearer", false},
		{"expired token", "Bearer " + expired, false},
		{"unknown user", "Bearer " + unknownUser, false},
		{"subject is not a user id", "Bearer " + notUUID, false},
		{"signed with another secret", "Bearer " + foreign, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got *models.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = app.contextGetUser(r)
				w.WriteHeader(http.StatusOK)
			})
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				request.Header.Set("Authorization", tc.header)
			}
			app.Authenticate(next).ServeHTTP(recorder, request)
			require.Equal(t, http.StatusOK, recorder.Code)
			require.NotNil(t, got)
			if tc.authenticated {
				assert.Equal(t, registered.ID, got.ID)
				assert.Equal(t, registered.Email, got.Email)
			} else {
				assert.True(t, got.IsAnonymous())
			}
		})
	}
}

func TestRecoverer(t *testing.T) {
	app := NewTestApplication(t)
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	recorder := httptest.NewRecorder()
	app.Recoverer(panicking).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decodeBody[errorBody](t, recorder)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

func TestRateLimiter(t *testing.T) {
	app := NewTestApplication(t)
	app.cfg.Limiter.Enabled = true
	app.cfg.Limiter.Rps = 0.001
	app.cfg.Limiter.Burst = 2
	handler := app.RateLimiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	send := func(remoteAddr string) int {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = remoteAddr
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1235"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1236"))
	// limits are tracked per client ip
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}
