package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/stretchr/testify/require"
)

func TestNotificationFeed(t *testing.T) {
	ctx := context.Background()
	f := newSeeded(t, newMemory(t))

	notes, err := f.notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, domain.NotificationDeadlineSoon, notes[0].Type)
	require.Equal(t, domain.NotificationWelcome, notes[1].Type)

	f.clock.Advance(time.Minute)
	require.NoError(t, f.users.Follow(ctx, anjaliID, vijayID))

	notes, err = f.notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	for i := 1; i < len(notes); i++ {
		require.False(t, notes[i].CreatedAt.After(notes[i-1].CreatedAt), "feed must be newest first")
	}

	require.NoError(t, f.notes.MarkRead(ctx, notes[0].ID))
	require.NoError(t, f.notes.MarkRead(ctx, notes[0].ID))
	require.NoError(t, f.notes.MarkRead(ctx, 404), "unknown ids are ignored")

	notes, err = f.notes.List(ctx)
	require.NoError(t, err)
	require.True(t, notes[0].Read)
	require.False(t, notes[1].Read)
}

func TestPublishFailureDoesNotFailCommand(t *testing.T) {
	ctx := context.Background()
	f := newSeeded(t, newMemory(t))
	f.pub.fail = true

	_, err := f.votes.Cast(ctx, gardenID, anjaliID, domain.VoteNo)
	require.NoError(t, err)

	notes, err := f.notes.List(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.NotificationVoteCast, notes[0].Type, "the feed still records it")
}

func TestNilPublisher(t *testing.T) {
	ctx := context.Background()
	f := newSeeded(t, newMemory(t))
	f.notes.Publisher = nil

	require.NoError(t, f.users.Follow(ctx, sunitaID, arunID))
}
