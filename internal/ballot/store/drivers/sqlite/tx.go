package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error                   { return nil } // outer DB stays open
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested tx not supported; could emulate with SAVEPOINT if needed.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, store.ErrTxInProgress }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return store.ErrTxInProgress
}

func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.tx} }
func (t *txStore) Proposals() store.Proposals         { return &proposalsRepo{q: t.tx} }
func (t *txStore) Votes() store.Votes                 { return &votesRepo{q: t.tx} }
func (t *txStore) Comments() store.Comments           { return &commentsRepo{q: t.tx} }
func (t *txStore) Notifications() store.Notifications { return &notificationsRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx is started
