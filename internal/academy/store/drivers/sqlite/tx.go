package sqlite

import (
	"context"
	"database/sql"

	"github.com/prestige-strategies/academy/internal/academy/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer DB stays open

// Ping is a no-op: the connection is held for the life of the transaction.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Admins() store.Admins           { return &adminsRepo{q: t.tx} }
func (t *txStore) Students() store.Students       { return &studentsRepo{q: t.tx} }
func (t *txStore) Courses() store.Courses         { return &coursesRepo{q: t.tx} }
func (t *txStore) Modules() store.Modules         { return &modulesRepo{q: t.tx} }
func (t *txStore) Enrollments() store.Enrollments { return &enrollmentsRepo{q: t.tx} }
func (t *txStore) Payments() store.Payments       { return &paymentsRepo{q: t.tx} }
func (t *txStore) Progress() store.Progress       { return &progressRepo{q: t.tx} }
func (t *txStore) Catalog() store.Catalog         { return &catalogRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx starts
