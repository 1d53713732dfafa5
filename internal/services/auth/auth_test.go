package auth

import (
	"context"
	"errors"
	"log/slog"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/lib/hasher"
	"movieapi/proj/internal/lib/tokens"
	"movieapi/proj/internal/storage"
	"movieapi/proj/internal/storage/inmemory"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	recipient string
	tmplName  string
	data      any
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(recipient string, tmplName string, tmplData any) error {
	m.sent = append(m.sent, sentMail{recipient, tmplName, tmplData})
	return m.err
}

type syncExecutor struct{}

func (syncExecutor) Add(task func()) { task() }

type mockUsersStorage struct {
	mock.Mock
}

func (m *mockUsersStorage) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsersStorage) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsersStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

var testHasherParams = hasher.Params{Memory: 64, Iterations: 1, Parallelism: 1}

func newTestService(store UsersStorage, mailer MailProvider) (*AuthService, *tokens.Manager) {
	tm := tokens.New("test-secret", time.Hour)
	var executor TaskExecutor
	if mailer != nil {
		executor = syncExecutor{}
	}
	return New(slog.Default(), store, hasher.New(testHasherParams), tm, mailer, executor), tm
}

var registerParams = RegisterParams{
	Email:     "a@x.com",
	Password:  "Abc12345!",
	FirstName: "A",
	LastName:  "B",
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewUserStore()
	mailer := &fakeMailer{}
	svc, tm := newTestService(store, mailer)

	result, err := svc.Register(ctx, registerParams)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", result.Email)
	assert.Equal(t, "A", result.FirstName)
	assert.Equal(t, "B", result.LastName)

	claims, err := tm.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.ID.String(), claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)

	stored, err := store.Get(ctx, result.ID)
	require.NoError(t, err)
	assert.NotEqual(t, registerParams.Password, stored.PasswordHash)

	if assert.Len(t, mailer.sent, 1) {
		assert.Equal(t, "a@x.com", mailer.sent[0].recipient)
		assert.Equal(t, "user_welcome.html", mailer.sent[0].tmplName)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(inmemory.NewUserStore(), nil)
	_, err := svc.Register(ctx, registerParams)
	require.NoError(t, err)

	others := []RegisterParams{
		registerParams,
		{Email: "a@x.com", Password: "Other123#", FirstName: "C", LastName: "D"},
		{Email: "a@x.com", Password: "x", FirstName: "", LastName: ""},
	}
	for _, params := range others {
		_, err := svc.Register(ctx, params)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
		var conflictErr *storage.ConflictError
		if assert.ErrorAs(t, err, &conflictErr) {
			assert.Equal(t, "email", conflictErr.Field)
		}
	}
}

func TestRegisterMailFailureIsNotFatal(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc, _ := newTestService(inmemory.NewUserStore(), mailer)
	result, err := svc.Register(context.Background(), registerParams)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Len(t, mailer.sent, 1)
}

func TestRegisterStorageError(t *testing.T) {
	store := &mockUsersStorage{}
	dbErr := errors.New("connection reset")
	store.On("Insert", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil, dbErr)
	svc, _ := newTestService(store, nil)

	_, err := svc.Register(context.Background(), registerParams)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	store.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, tm := newTestService(inmemory.NewUserStore(), nil)
	registered, err := svc.Register(ctx, registerParams)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		result, err := svc.Login(ctx, "a@x.com", "Abc12345!")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, result.ID)
		claims, err := tm.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID.String(), claims.Subject)
	})
	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrongPassword := svc.Login(ctx, "a@x.com", "Abc12345?")
		_, unknownEmail := svc.Login(ctx, "nobody@x.com", "Abc12345!")
		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})
}

func TestLoginCorruptHash(t *testing.T) {
	store := &mockUsersStorage{}
	store.On("GetByEmail", mock.Anything, "a@x.com").
		Return(&models.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "plain"}, nil)
	svc, _ := newTestService(store, nil)

	_, err := svc.Login(context.Background(), "a@x.com", "plain")
	assert.ErrorIs(t, err, hasher.ErrInvalidHash)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(inmemory.NewUserStore(), nil)
	registered, err := svc.Register(ctx, registerParams)
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = svc.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
