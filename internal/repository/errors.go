package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound      = errors.New("session not found")
	ErrAlreadyExists = errors.New("session code already exists")
)

// MapPgError translates the Postgres error codes higher layers handle
// explicitly; everything else passes through untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
	}
	return err
}
