package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
		ReadOnly:  false,
	})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// execSavepoint runs stmt under a savepoint. A unique violation rolls back to
// the savepoint and reports skipped=true; the surrounding tx stays usable.
func execSavepoint(ctx context.Context, tx *sql.Tx, name, stmt string, args ...any) (skipped bool, err error) {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		if !isUniqueViolation(err) {
			return false, err
		}
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return false, rbErr
		}
		return true, nil
	}
	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return false, err
	}
	return false, nil
}
