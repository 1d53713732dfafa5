package main

import (
	"log/slog"
	"movieapi/proj/internal/config"
	"movieapi/proj/internal/lib/validator"
	"movieapi/proj/internal/metrics"
	"movieapi/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	services  *services.Services
	validator *govalidator.Validate
	metrics   *metrics.Metrics
}

func NewApplication(cfg *config.Config, log *slog.Logger, services *services.Services, metrics *metrics.Metrics) *Application {
	return &Application{
		cfg:       cfg,
		log:       log,
		services:  services,
		validator: validator.New(),
		metrics:   metrics,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
