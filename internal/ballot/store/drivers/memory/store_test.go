package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/internal/ballot/store/drivers/memory"
	"github.com/aussiebroadwan/ballot/internal/ballot/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st := memory.NewStore()
		t.Cleanup(func() { _ = st.Close() })
		return st
	})
}

func TestRollbackRestoresCounters(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().CreateUser(ctx, domain.User{Name: "ghost"})
		require.NoError(t, err)
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	u, err := st.Users().CreateUser(ctx, domain.User{Name: "real"})
	require.NoError(t, err)
	require.EqualValues(t, 1, u.ID)
}

func TestReturnedValuesDoNotAlias(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()

	a, err := st.Users().CreateUser(ctx, domain.User{Name: "A"})
	require.NoError(t, err)
	b, err := st.Users().CreateUser(ctx, domain.User{Name: "B"})
	require.NoError(t, err)
	require.NoError(t, st.Users().AddFollow(ctx, a.ID, b.ID))

	got, err := st.Users().GetUserByID(ctx, a.ID)
	require.NoError(t, err)
	got.Following[0] = 42

	again, err := st.Users().GetUserByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{b.ID}, again.Following)
}

func TestConcurrentVotesAreSerialised(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()

	author, err := st.Users().CreateUser(ctx, domain.User{Name: "author"})
	require.NoError(t, err)
	p, err := st.Proposals().CreateProposal(ctx, domain.Proposal{Title: "t", AuthorID: author.ID, Status: domain.StatusActive})
	require.NoError(t, err)

	const voters = 50
	var wg sync.WaitGroup
	errs := make(chan error, voters*2)
	for i := range voters {
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- st.WithTx(ctx, func(tx store.Tx) error {
					_, err := tx.Votes().CreateVote(ctx, domain.Vote{ProposalID: p.ID, VoterID: int64(i + 100), Option: domain.VoteYes})
					return err
				})
			}()
		}
	}
	wg.Wait()
	close(errs)

	var dup int
	for err := range errs {
		if err != nil {
			require.ErrorIs(t, err, store.ErrAlreadyExists)
			dup++
		}
	}
	require.Equal(t, voters, dup)

	votes, err := st.Votes().ListVotesByProposal(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, votes, voters)
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	require.NoError(t, st.Close())

	require.ErrorIs(t, st.Ping(ctx), memory.ErrClosed)
	_, err := st.Users().ListUsers(ctx)
	require.ErrorIs(t, err, memory.ErrClosed)
	_, err = st.Tx(ctx)
	require.ErrorIs(t, err, memory.ErrClosed)
}
