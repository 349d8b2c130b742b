package repos

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err comes from a unique constraint
// rejecting an insert. Postgres signals SQLSTATE 23505; the gorm drivers
// additionally translate into gorm.ErrDuplicatedKey. The message fallback
// covers drivers that do neither.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.TrimSpace(pgErr.Code) == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// UniqueViolationColumn names the column whose constraint fired ("mobile",
// "email", or "" when it cannot be determined). For Postgres the constraint
// name carries the column; sqlite spells out "users.mobile" in the message.
func UniqueViolationColumn(err error) string {
	if err == nil {
		return ""
	}
	subject := ""
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		subject = pgErr.ConstraintName + " " + pgErr.Detail
	} else {
		subject = err.Error()
	}
	subject = strings.ToLower(subject)
	switch {
	case strings.Contains(subject, "mobile"):
		return "mobile"
	case strings.Contains(subject, "email"):
		return "email"
	default:
		return ""
	}
}
