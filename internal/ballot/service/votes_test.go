package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCastVoteErrors(t *testing.T) {
	forEachDriver(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		f := newSeeded(t, st)

		_, err := f.votes.Cast(ctx, gardenID, 0, domain.VoteYes)
		require.ErrorIs(t, err, ErrUnauthenticated)
		_, err = f.votes.Cast(ctx, gardenID, anjaliID, "maybe")
		require.ErrorIs(t, err, ErrValidation)
		_, err = f.votes.Cast(ctx, 404, anjaliID, domain.VoteYes)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = f.votes.Cast(ctx, recyclingID, anjaliID, domain.VoteYes)
		require.ErrorIs(t, err, ErrVotingClosed)
		_, err = f.votes.Cast(ctx, recyclingID, hariID, domain.VoteNo)
		require.ErrorIs(t, err, ErrAlreadyVoted)

		require.Empty(t, f.pub.Types(), "rejected votes must not notify")
	})
}

func TestCastVoteOnLapsedProposal(t *testing.T) {
	forEachDriver(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		f := newSeeded(t, st)
		f.clock.Advance(3*24*time.Hour + time.Second)

		_, err := f.votes.Cast(ctx, gardenID, anjaliID, domain.VoteYes)
		require.ErrorIs(t, err, ErrVotingClosed)

		p, err := f.st.Proposals().GetProposalByID(ctx, gardenID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusExpired, p.Status, "the expiry is kept even though the vote failed")

		_, err = f.proposals.List(ctx, ListOptions{})
		require.NoError(t, err)
		_, err = f.proposals.Get(ctx, gardenID)
		require.NoError(t, err)
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ProposalsExpired))
	})
}

func TestDuplicateVoteKeepsExpiry(t *testing.T) {
	forEachDriver(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		f := newSeeded(t, st)
		f.clock.Advance(3*24*time.Hour + time.Second)

		// Rajesh already voted on the garden proposal in the seed.
		_, err := f.votes.Cast(ctx, gardenID, rajeshID, domain.VoteNo)
		require.ErrorIs(t, err, ErrAlreadyVoted)

		p, err := f.st.Proposals().GetProposalByID(ctx, gardenID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusExpired, p.Status)
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ProposalsExpired))
	})
}

func TestCastVote(t *testing.T) {
	ctx := context.Background()
	f := newSeeded(t, newMemory(t))

	v, err := f.votes.Cast(ctx, muralID, anjaliID, "Abstain")
	require.NoError(t, err)
	require.EqualValues(t, 10, v.ID)
	require.Equal(t, domain.VoteAbstain, v.Option)
	require.Equal(t, "Anjali Mehta", v.VoterName)
	require.True(t, epoch.Equal(v.CreatedAt))

	notes, err := f.notes.List(ctx)
	require.NoError(t, err)
	require.Equal(t, `Anjali Mehta voted on "Fund a new Public Art Mural Downtown"`, notes[0].Message)
	require.Equal(t, muralID, *notes[0].LinkID)
}

func TestTallySumsToVoteCount(t *testing.T) {
	ctx := context.Background()
	f := newSeeded(t, newMemory(t))

	options := []domain.VoteOption{domain.VoteYes, domain.VoteNo, domain.VoteAbstain, domain.VoteYes}
	for i, voter := range []int64{hariID, arunID, priyaID, anjaliID} {
		_, err := f.votes.Cast(ctx, gardenID, voter, options[i])
		require.NoError(t, err)
	}

	list, err := f.proposals.List(ctx, ListOptions{})
	require.NoError(t, err)
	for _, p := range list {
		votes, err := f.st.Votes().ListVotesByProposal(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, len(votes), p.Votes.Total(), "proposal %d", p.ID)
	}
	require.Equal(t, domain.Tally{Yes: 4, No: 2, Abstain: 1}, findProposal(t, list, gardenID).Votes)
}
