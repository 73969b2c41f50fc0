// Package dbx lets the user and refresh-token repositories run either on the
// shared pool or inside one transaction. The auth service uses it to replace
// a user's refresh token on login, and to change a password together with
// revoking that user's sessions.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what RepositoryManager binds a repository to: the *sql.DB pool for
// single statements, or a *sql.Tx handed out by WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn in a transaction. fn's error is returned unchanged after a
// rollback; failures to begin or commit are wrapped so callers can tell them
// apart in logs. A panic in fn rolls back and is re-raised.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
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

	return fn(ctx, tx)
}
