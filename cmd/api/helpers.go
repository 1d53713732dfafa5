package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/lib/validator"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1_048_576 // 1MB

func (app *Application) extractIDParam(w http.ResponseWriter, r *http.Request) (id uuid.UUID, extracted bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		app.Http.BadRequest(w, r, "invalid movie ID")
		return uuid.Nil, false
	}
	return id, true
}

func (app *Application) contextGetUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(CtxKeyUser).(*models.User)
	if !ok || user == nil {
		return models.AnonymousUser
	}
	return user
}

// readJSON decodes the body into dst. Unknown fields are ignored and an empty
// body is treated as an empty object so that validation reports every missing field.
func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	src := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}

// decodeAndValidate writes a 400 response and returns false when the body
// is malformed or fails validation.
func (app *Application) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := app.readJSON(w, r, dst); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	if errs := validator.ValidateStruct(app.validator, dst); errs != nil {
		app.Http.BadRequest(w, r, errs.Messages())
		return false
	}
	return true
}
