// Package memory is the default store driver. Everything lives in one
// dataset behind a single RWMutex, which gives the service its single writer
// discipline; transactions snapshot the dataset and restore it on rollback.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

var (
	ErrClosed = errors.New("memory: store is closed")
	ErrTxDone = errors.New("memory: transaction already committed or rolled back")
)

// dataset is the whole database. Slices are kept in id order.
type dataset struct {
	users         []domain.User
	proposals     []domain.Proposal
	votes         []domain.Vote
	comments      []domain.Comment
	notifications []domain.Notification

	// last assigned id per entity type
	seq struct {
		user, proposal, vote, comment, notification int64
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		users:         make([]domain.User, len(d.users)),
		proposals:     make([]domain.Proposal, len(d.proposals)),
		votes:         slices.Clone(d.votes),
		comments:      slices.Clone(d.comments),
		notifications: make([]domain.Notification, len(d.notifications)),
		seq:           d.seq,
	}
	for i, u := range d.users {
		c.users[i] = u.Clone()
	}
	for i, p := range d.proposals {
		c.proposals[i] = p.Clone()
	}
	for i, n := range d.notifications {
		c.notifications[i] = cloneNotification(n)
	}
	return c
}

func cloneNotification(n domain.Notification) domain.Notification {
	if n.LinkID != nil {
		n.LinkID = domain.Link(*n.LinkID)
	}
	return n
}

// locker is satisfied by *sync.RWMutex. Inside a Tx the write lock is already
// held so repositories get a no-op locker.
type locker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type nopLocker struct{}

func (nopLocker) Lock()    {}
func (nopLocker) Unlock()  {}
func (nopLocker) RLock()   {}
func (nopLocker) RUnlock() {}

// db is what the repositories share: the store plus the locker to use.
type db struct {
	s  *Store
	lk locker
}

func (d db) read(fn func(data *dataset) error) error {
	d.lk.RLock()
	defer d.lk.RUnlock()
	if d.s.closed {
		return ErrClosed
	}
	return fn(d.s.data)
}

func (d db) write(fn func(data *dataset) error) error {
	d.lk.Lock()
	defer d.lk.Unlock()
	if d.s.closed {
		return ErrClosed
	}
	return fn(d.s.data)
}

type Store struct {
	mu     sync.RWMutex
	data   *dataset
	closed bool
}

func NewStore() *Store {
	return &Store{data: &dataset{}}
}

func (s *Store) top() db { return db{s: s, lk: &s.mu} }

func (s *Store) Users() store.Users                 { return &usersRepo{db: s.top()} }
func (s *Store) Proposals() store.Proposals         { return &proposalsRepo{db: s.top()} }
func (s *Store) Votes() store.Votes                 { return &votesRepo{db: s.top()} }
func (s *Store) Comments() store.Comments           { return &commentsRepo{db: s.top()} }
func (s *Store) Notifications() store.Notifications { return &notificationsRepo{db: s.top()} }

// ApplyMigrations is a no-op; there is no schema.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return ctx.Err()
}

// Tx takes the write lock and snapshots the dataset.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	return &txStore{s: s, snapshot: s.data.clone()}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback after Commit is a no-op, so this also covers panics.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
