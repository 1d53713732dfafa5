package main

import (
	"context"
	"flag"
	"log/slog"
	"movieapi/proj/internal/api/tasks"
	"movieapi/proj/internal/config"
	"movieapi/proj/internal/lib/logger"
	"movieapi/proj/internal/metrics"
	"movieapi/proj/internal/services"
	"movieapi/proj/internal/storage/inmemory"
	"movieapi/proj/internal/storage/postgres"
	"movieapi/proj/internal/storage/postgres/models"
	"os"
)

const (
	version    = "1.0.0"
	apiVersion = "1.0"
)

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug, os.Stdout)

	storages, closeStorage, err := setupStorages(cfg, log)
	if err != nil {
		log.Error("failed to set up storage", "driver", cfg.Storage.Driver, "errMsg", err.Error())
		os.Exit(1)
	}
	defer closeStorage()

	bgTasks := tasks.New(log, cfg.Tasks.Workers, cfg.Tasks.QueueSize)
	bgTasks.Run()

	app := NewApplication(cfg, log, services.New(log, cfg, storages, bgTasks), metrics.New())
	if err := app.serve(bgTasks); err != nil {
		log.Error("shutting down the server", "reason", err.Error())
		closeStorage()
		os.Exit(1)
	}
}

func setupStorages(cfg *config.Config, log *slog.Logger) (services.Storages, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("using in-memory storage, data will be lost on restart")
		return services.Storages{
			Users:  inmemory.NewUserStore(),
			Movies: inmemory.NewMovieStore(),
		}, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout)
	defer cancel()
	db, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		return services.Storages{}, nil, err
	}
	log.Info("database connection established")
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return services.Storages{}, nil, err
	}
	log.Info("database migrations applied")
	m := models.New(db)
	return services.Storages{
		Users:  m.User,
		Movies: m.Movie,
	}, db.Close, nil
}
