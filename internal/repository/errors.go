// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// directory service to distinguish a missing row from a storage failure
// without inspecting driver-specific errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// ErrVenueNotFound is returned when no venue row matches the given id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist row matches the given id.
var ErrArtistNotFound = errors.New("artist not found")

// MySQL error numbers for foreign-key failures: 1451 when deleting a
// referenced parent row, 1452 when inserting a child without a parent.
const (
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// IsForeignKeyViolation reports whether err is a foreign-key constraint
// failure raised by either supported driver.  Callers use it to turn a
// show insert that raced with a venue or artist delete into a not-found
// error instead of a generic storage failure.
func IsForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrRowIsReferenced || me.Number == mysqlErrNoReferencedRow
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
