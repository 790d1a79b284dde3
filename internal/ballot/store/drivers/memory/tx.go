package memory

import (
	"context"

	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

// txStore owns the write lock from Tx() until Commit or Rollback.
type txStore struct {
	s        *Store
	snapshot *dataset
	done     bool
}

func (t *txStore) inner() db { return db{s: t.s, lk: nopLocker{}} }

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.inner()} }
func (t *txStore) Proposals() store.Proposals         { return &proposalsRepo{db: t.inner()} }
func (t *txStore) Votes() store.Votes                 { return &votesRepo{db: t.inner()} }
func (t *txStore) Comments() store.Comments           { return &commentsRepo{db: t.inner()} }
func (t *txStore) Notifications() store.Notifications { return &notificationsRepo{db: t.inner()} }

func (t *txStore) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.snapshot = nil
	t.s.mu.Unlock()
	return nil
}

func (t *txStore) Rollback() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.s.data = t.snapshot
	t.snapshot = nil
	t.s.mu.Unlock()
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, store.ErrTxInProgress }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return store.ErrTxInProgress
}

func (t *txStore) ApplyMigrations() error         { return nil }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
