package store

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness constraint.
var ErrConflict = errors.New("conflict")

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
// The three supported engines phrase it differently:
//
//	sqlite:   "UNIQUE constraint failed: admin_users.username"
//	postgres: "duplicate key value violates unique constraint ..."
//	mysql:    "Error 1062 ...: Duplicate entry ..."
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
