package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// IsNoRowsError reports whether err is database/sql's "no rows" sentinel.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isForeignKeyViolation reports a reference to a missing parent row.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// isMalformedID reports a lookup by a string that is not a valid UUID.
// Such ids cannot exist, so callers treat them as not found.
func isMalformedID(err error) bool {
	return pgCode(err) == pgInvalidTextRepr
}
