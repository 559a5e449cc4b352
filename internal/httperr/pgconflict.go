package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes for constraint conflicts.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsExclusionConflict reports whether err comes from a unique or exclusion
// constraint on the bookings table. Double-booking prevention is advisory by
// default, but an operator may add a no-overbooking exclusion constraint;
// this maps that violation to a business conflict instead of a 500.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
}
