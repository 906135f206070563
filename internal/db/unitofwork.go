package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// UnitOfWork runs a callback inside a transaction. The callback receives a
// DBTX backed by the transaction; callers build tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork serializes transactions issued through it, so a
// check-then-write sequence inside fn cannot interleave with another one
// from the same process. SQLite's own locking covers other processes.
type SQLiteUnitOfWork struct {
	db *sql.DB
	mu sync.Mutex
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
