package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Querier is the subset of *sql.DB and *sql.Tx used by the repositories.
// Binding a repository to a *sql.Tx makes every statement it issues part
// of that transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RunInTx executes fn inside a transaction.  The transaction is committed
// when fn returns nil and rolled back when fn returns an error or panics;
// in every case the underlying connection is released before RunInTx
// returns.
func RunInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit tx: %w", cerr)
		}
	}()
	err = fn(tx)
	return err
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// idArgs converts ids to query arguments.
func idArgs(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// likeEscape is the escape character paired with booking.LikePattern.
// '!' is used instead of a backslash because MySQL and SQLite disagree on
// backslash handling inside string literals.
const likeEscape = '!'

// setClause accumulates "column = ?" pairs for partial updates.
type setClause struct {
	cols []string
	args []any
}

// str adds column when v is non-nil and not blank.
func (s *setClause) str(col string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return
	}
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, strings.TrimSpace(*v))
}

// val adds column unconditionally.
func (s *setClause) val(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

func (s *setClause) empty() bool { return len(s.cols) == 0 }

func (s *setClause) sql() string { return strings.Join(s.cols, ", ") }
