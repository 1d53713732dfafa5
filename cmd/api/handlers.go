package main

import "net/http"

func (app *Application) welcome(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{
		"statusCode": http.StatusOK,
		"message":    "Welcome to Movies Api v" + apiVersion,
	})
}

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, struct {
		Status  string `json:"status"`
		Debug   bool   `json:"debug"`
		Version string `json:"version"`
		Storage string `json:"storage"`
	}{
		Status:  "available",
		Debug:   app.cfg.Debug,
		Version: version,
		Storage: app.cfg.Storage.Driver,
	})
}
