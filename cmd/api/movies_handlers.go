package main

import (
	"movieapi/proj/internal/domain/fields"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/services/movies"
	"net/http"
)

type createMovieRequest struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"required,max=500"`
	ReleaseDate string   `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Rating      *int     `json:"rating" validate:"required,min=1,max=5"`
	Gender      string   `json:"gender" validate:"required,oneof=Male Female Others"`
	Actors      []string `json:"actors" validate:"required,min=1,dive,required"`
	ImageURL    string   `json:"imageUrl" validate:"required,url"`
}

// updateMovieRequest fields are all optional, but a present field must be valid.
type updateMovieRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=120"`
	Description *string  `json:"description" validate:"omitempty,min=1,max=500"`
	ReleaseDate *string  `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
	Rating      *int     `json:"rating" validate:"omitempty,min=1,max=5"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=Male Female Others"`
	Actors      []string `json:"actors" validate:"omitempty,min=1,dive,required"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
}

func (req *updateMovieRequest) params() (movies.UpdateMovieParams, error) {
	params := movies.UpdateMovieParams{
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		Actors:      req.Actors,
		ImageURL:    req.ImageURL,
	}
	if req.ReleaseDate != nil {
		date, err := fields.ParseReleaseDate(*req.ReleaseDate)
		if err != nil {
			return params, err
		}
		params.ReleaseDate = &date
	}
	if req.Gender != nil {
		gender := models.Gender(*req.Gender)
		params.Gender = &gender
	}
	return params, nil
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	list, err := app.services.Movies.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, list)
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var req createMovieRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	releaseDate, err := fields.ParseReleaseDate(req.ReleaseDate)
	if err != nil {
		app.Http.BadRequest(w, r, []string{"releaseDate must be a valid date and must be in the format YYYY-MM-DD"})
		return
	}
	user := app.contextGetUser(r)
	movie, err := app.services.Movies.Create(r.Context(), user.ID, movies.CreateMovieParams{
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Rating:      *req.Rating,
		Gender:      models.Gender(req.Gender),
		Actors:      req.Actors,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, movie)
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var req updateMovieRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	params, err := req.params()
	if err != nil {
		app.Http.BadRequest(w, r, []string{"releaseDate must be a valid date and must be in the format YYYY-MM-DD"})
		return
	}
	user := app.contextGetUser(r)
	movie, err := app.services.Movies.Update(r.Context(), id, user.ID, params)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, movie)
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	user := app.contextGetUser(r)
	movie, err := app.services.Movies.Delete(r.Context(), id, user.ID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, movie)
}
