package movies

import "errors"

var (
	ErrForbidden = errors.New("you are unauthorized to access this resource")
)
