// Package repository contains the raw SQL data access layer. Each entity
// gets a small repo struct over the shared *sql.DB pool; queries are always
// parameterized and sort columns come from fixed allow-lists, never from
// request text. Sentinel errors defined here and in the entity files let
// handlers turn storage failures into the right flash message.
package repository

import (
	"errors"
	"strings"
)

// ErrInUse is returned when a delete is rejected because other rows still
// reference the record, e.g. removing a venue that shows point at.
var ErrInUse = errors.New("record is referenced by other rows")

// isDuplicate reports whether the error is a MySQL duplicate-key violation
// (error 1062). The driver error text is matched loosely, same as the rest
// of the ecosystem does; a non-MySQL store would need a different check.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isReferenced reports whether the error is a MySQL foreign-key restriction
// on delete or update (error 1451).
func isReferenced(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1451")
}
