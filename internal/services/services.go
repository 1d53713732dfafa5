package services

import (
	"log/slog"
	"movieapi/proj/internal/config"
	"movieapi/proj/internal/lib/hasher"
	"movieapi/proj/internal/lib/tokens"
	"movieapi/proj/internal/mails"
	"movieapi/proj/internal/services/auth"
	"movieapi/proj/internal/services/movies"
)

type Services struct {
	Auth   *auth.AuthService
	Movies *movies.MovieService
}

type Storages struct {
	Users  auth.UsersStorage
	Movies movies.MoviesStorage
}

// New wires the services. taskExecutor is only used when SMTP is enabled.
func New(log *slog.Logger, cfg *config.Config, storages Storages, taskExecutor auth.TaskExecutor) *Services {
	var mailer auth.MailProvider
	if cfg.SMTP.Enabled {
		mailer = mails.New(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Timeout,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.Sender,
			cfg.SMTP.RetriesCount,
		)
	} else {
		taskExecutor = nil
	}
	passwordHasher := hasher.New(hasher.Params{
		Memory:      cfg.Hasher.Memory,
		Iterations:  cfg.Hasher.Iterations,
		Parallelism: cfg.Hasher.Parallelism,
	})
	tokenManager := tokens.New(cfg.AppSecret, cfg.TokenTTL)
	return &Services{
		Auth:   auth.New(log, storages.Users, passwordHasher, tokenManager, mailer, taskExecutor),
		Movies: movies.New(log, storages.Movies),
	}
}
