package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/seed"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/internal/ballot/store/drivers/memory"
	"github.com/aussiebroadwan/ballot/internal/ballot/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Seeded user ids, in fixture order.
const (
	hariID int64 = iota + 1
	arunID
	priyaID
	rajeshID
	sunitaID
	vijayID
	anjaliID
	adminID
)

// Seeded proposal ids.
const (
	gardenID int64 = iota + 1
	muralID
	recyclingID
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingPublisher struct {
	mu   sync.Mutex
	got  []domain.Notification
	fail bool
}

func (p *recordingPublisher) Publish(_ context.Context, n domain.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.got = append(p.got, n)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []domain.NotificationType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.NotificationType, len(p.got))
	for i, n := range p.got {
		out[i] = n.Type
	}
	return out
}

type fixture struct {
	st        store.Store
	clock     *testClock
	pub       *recordingPublisher
	metrics   *metrics.Metrics
	notes     *NotificationService
	proposals *ProposalService
	votes     *VoteService
	comments  *CommentService
	users     *UserService
	board     *LeaderboardService
}

func newFixture(t *testing.T, st store.Store) *fixture {
	t.Helper()
	clock := &testClock{t: epoch}
	pub := &recordingPublisher{}
	m := metrics.New()
	notes := &NotificationService{Store: st, Publisher: pub, Now: clock.Now}
	return &fixture{
		st:        st,
		clock:     clock,
		pub:       pub,
		metrics:   m,
		notes:     notes,
		proposals: &ProposalService{Store: st, Notifications: notes, Metrics: m, Now: clock.Now},
		votes:     &VoteService{Store: st, Notifications: notes, Metrics: m, Now: clock.Now},
		comments:  &CommentService{Store: st, Now: clock.Now},
		users:     &UserService{Store: st, Notifications: notes},
		board:     &LeaderboardService{Store: st},
	}
}

// newSeeded returns a fixture over st loaded with the default community.
func newSeeded(t *testing.T, st store.Store) *fixture {
	t.Helper()
	f := newFixture(t, st)
	fx, err := seed.Default()
	require.NoError(t, err)
	applied, err := seed.Apply(context.Background(), st, fx, epoch)
	require.NoError(t, err)
	require.True(t, applied)
	return f
}

func newMemory(t *testing.T) store.Store {
	t.Helper()
	st := memory.NewStore()
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// forEachDriver runs fn once per store driver, each with a fresh store.
func forEachDriver(t *testing.T, fn func(t *testing.T, st store.Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, newMemory(t)) })
	t.Run("sqlite", func(t *testing.T) {
		st, err := sqlite.NewStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		require.NoError(t, st.ApplyMigrations())
		fn(t, st)
	})
}

func findProposal(t *testing.T, list []domain.ProposalWithAggregates, id int64) domain.ProposalWithAggregates {
	t.Helper()
	for _, p := range list {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("proposal %d not in list", id)
	return domain.ProposalWithAggregates{}
}

func ids(list []domain.ProposalWithAggregates) []int64 {
	out := make([]int64, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}
