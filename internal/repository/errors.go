package repository

import (
	"errors"
	"fmt"
)

// ErrNoRowsAffected is returned when an insert reports zero affected rows.
var ErrNoRowsAffected = errors.New("no rows affected")

// StatusError is returned when a REST-backed store answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
