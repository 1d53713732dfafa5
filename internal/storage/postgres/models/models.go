package models

import "movieapi/proj/internal/storage/postgres"

type Models struct {
	Movie *MovieModel
	User  *UserModel
}

func New(db *postgres.PostgresDB) *Models {
	return &Models{
		Movie: &MovieModel{db.Conn},
		User:  &UserModel{db.Conn},
	}
}
