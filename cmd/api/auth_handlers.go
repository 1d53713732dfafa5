package main

import (
	"movieapi/proj/internal/services/auth"
	"net/http"
)

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=20,strongpassword"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	result, err := app.services.Auth.Register(r.Context(), auth.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	app.metrics.RecordAuthEvent("register", err == nil)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, result)
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	result, err := app.services.Auth.Login(r.Context(), req.Email, req.Password)
	app.metrics.RecordAuthEvent("login", err == nil)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, result)
}
