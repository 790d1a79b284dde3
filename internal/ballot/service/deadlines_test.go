package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestDeadlineSweep(t *testing.T) {
	forEachDriver(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		f := newSeeded(t, st)
		w := NewDeadlineWatchService(st, f.notes, slogx.Discard(), time.Hour, 24*time.Hour)

		// Nothing is within a day of closing yet; the mural was announced by the seed.
		n, err := w.Sweep(ctx)
		require.NoError(t, err)
		require.Zero(t, n)

		f.clock.Advance(60 * time.Hour) // garden has 12h left
		n, err = w.Sweep(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		notes, err := f.notes.List(ctx)
		require.NoError(t, err)
		require.Equal(t, domain.NotificationDeadlineSoon, notes[0].Type)
		require.Equal(t, gardenID, *notes[0].LinkID)
		require.Equal(t, "Proposal 'Install a Community Garden in Central Park' is nearing its deadline.", notes[0].Message)

		n, err = w.Sweep(ctx)
		require.NoError(t, err)
		require.Zero(t, n, "each proposal is announced once")

		// Past the deadline the sweep ignores it and leaves the status to reconcile.
		f.clock.Advance(24 * time.Hour)
		n, err = w.Sweep(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
		p, err := st.Proposals().GetProposalByID(ctx, gardenID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, p.Status)
	})
}

func TestDeadlineWatchStartStop(t *testing.T) {
	f := newSeeded(t, newMemory(t))
	f.clock.Advance(60 * time.Hour)

	w := NewDeadlineWatchService(f.st, f.notes, slogx.Discard(), time.Hour, 0)
	require.Equal(t, DefaultDeadlineSoonWindow, w.Window)

	w.Start()
	w.Stop()

	// The first sweep runs before the loop waits on the ticker.
	require.Equal(t, []domain.NotificationType{domain.NotificationDeadlineSoon}, f.pub.Types())
}

func TestDeadlineWatchStopIsSafe(t *testing.T) {
	f := newSeeded(t, newMemory(t))
	w := NewDeadlineWatchService(f.st, f.notes, slogx.Discard(), time.Hour, time.Hour)

	w.Stop()
	w.Start()
	w.Stop()
	w.Stop()
	w.Start()
}

func TestDeadlineWatchRequiresNotifications(t *testing.T) {
	require.PanicsWithValue(t, "service: NewDeadlineWatchService requires a NotificationService", func() {
		NewDeadlineWatchService(newMemory(t), nil, slogx.Discard(), time.Hour, time.Hour)
	})
}
