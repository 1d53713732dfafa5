package models

import (
	"movieapi/proj/internal/domain/fields"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOthers Gender = "Others"
)

type Movie struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	Owner       uuid.UUID          `json:"userId" db:"user_id"`           // ID of the user who created the movie
	Title       string             `json:"title" db:"title"`              // Movie title (up to 120 chars)
	Description string             `json:"description" db:"description"` // Short synopsis (up to 500 chars)
	ReleaseDate fields.ReleaseDate `json:"releaseDate" db:"release_date"` // Calendar date, YYYY-MM-DD
	Rating      int                `json:"rating" db:"rating"`            // 1 to 5
	Gender      Gender             `json:"gender" db:"gender"`            // Content classification (Male, Female, Others)
	Actors      []string           `json:"actors" db:"actors"`
	ImageURL    string             `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time          `json:"-" db:"created_at"`
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

// AnonymousUser is stored in the request context when no valid bearer token was presented.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}
