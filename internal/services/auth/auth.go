package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/lib/tokens"
	"movieapi/proj/internal/mails"
	"movieapi/proj/internal/storage"

	"github.com/google/uuid"
)

type UsersStorage interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) (bool, error)
}

type TokenProvider interface {
	Issue(subjectID, email string) (string, error)
	Verify(token string) (*tokens.Claims, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	storage      UsersStorage
	hasher       PasswordHasher
	tokens       TokenProvider
	mailer       MailProvider
	taskExecutor TaskExecutor
}

// New builds the service. mailer and taskExecutor may be nil, in which case no welcome email is sent.
func New(
	log *slog.Logger,
	storage UsersStorage,
	hasher PasswordHasher,
	tokenProvider TokenProvider,
	mailer MailProvider,
	taskExecutor TaskExecutor,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		hasher:       hasher,
		tokens:       tokenProvider,
		mailer:       mailer,
		taskExecutor: taskExecutor,
	}
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is the public profile of a user together with a fresh access token.
type AuthResult struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Token     string    `json:"token"`
}

func (a *AuthService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	const op = "auth.AuthService.Register"
	log := a.log.With("op", op, "email", params.Email)
	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		log.Error("Error hashing password", "errMsg", err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := a.storage.Insert(ctx, &models.User{
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email already taken")
			return nil, fmt.Errorf("%w: %w", ErrDuplicateEmail, err)
		}
		log.Error("Error inserting user", "errMsg", err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := a.newResult(user)
	if err != nil {
		log.Error("Error issuing token", "errMsg", err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if a.mailer != nil && a.taskExecutor != nil {
		a.taskExecutor.Add(func() {
			a.sendWelcomeEmail(user)
		})
	}
	return result, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)
	user, err := a.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrInvalidCredentials
		}
		log.Error("Error getting user", "errMsg", err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ok, err := a.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		log.Error("Stored password hash is unreadable", "errMsg", err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		log.Info("password mismatch")
		return nil, ErrInvalidCredentials
	}
	result, err := a.newResult(user)
	if err != nil {
		log.Error("Error issuing token", "errMsg", err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (a *AuthService) VerifyToken(token string) (*tokens.Claims, error) {
	return a.tokens.Verify(token)
}

func (a *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	user, err := a.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		a.log.Error("Error getting user", "op", op, "id", id, "errMsg", err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (a *AuthService) newResult(user *models.User) (*AuthResult, error) {
	token, err := a.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Token:     token,
	}, nil
}

func (a *AuthService) sendWelcomeEmail(user *models.User) {
	a.log.Info("sending welcome email", "user_id", user.ID)
	err := a.mailer.Send(
		user.Email,
		mails.TmplUserWelcome,
		map[string]any{
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"userID":    user.ID.String(),
		})
	if err != nil {
		a.log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}
