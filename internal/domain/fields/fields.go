package fields

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const ReleaseDateLayout = "2006-01-02"

var ErrInvalidReleaseDate = errors.New("release date must be in the format YYYY-MM-DD")

// ReleaseDate is a calendar date without time of day, encoded as "YYYY-MM-DD".
type ReleaseDate struct {
	time.Time
}

func ParseReleaseDate(s string) (ReleaseDate, error) {
	t, err := time.Parse(ReleaseDateLayout, s)
	if err != nil {
		return ReleaseDate{}, ErrInvalidReleaseDate
	}
	return ReleaseDate{t}, nil
}

func (d ReleaseDate) String() string {
	return d.Format(ReleaseDateLayout)
}

func (d ReleaseDate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *ReleaseDate) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidReleaseDate
	}
	parsed, err := ParseReleaseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner so pgx can read a DATE column into ReleaseDate.
func (d *ReleaseDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		parsed, err := ParseReleaseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		d.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("fields: cannot scan %T into ReleaseDate", src)
}

func (d ReleaseDate) Value() (driver.Value, error) {
	return d.String(), nil
}
