package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	ErrInvalidQuery  = errors.New("invalid query")
)

// MapPgError translates the Postgres error codes callers act on into domain errors.
// Everything else passes through untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ErrAlreadyExists
	case pgerrcode.ForeignKeyViolation, pgerrcode.SerializationFailure:
		return ErrConflict
	case pgerrcode.InvalidTextRepresentation, pgerrcode.NumericValueOutOfRange, pgerrcode.InvalidRowCountInLimitClause, pgerrcode.InvalidRowCountInResultOffsetClause:
		return ErrInvalidQuery
	}
	return err
}
