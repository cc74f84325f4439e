package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a show points at a missing artist or venue.
	ErrInvalidReference = errors.New("invalid reference")
)

// ReferenceError names the show column that points at a missing row.
type ReferenceError struct {
	Column string
	ID     int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Column, e.ID)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

type DB struct {
	Bun *bun.DB
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}
