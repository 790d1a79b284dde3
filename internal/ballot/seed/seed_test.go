package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/seed"
	"github.com/aussiebroadwan/ballot/internal/ballot/store/drivers/memory"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDefaultFixtureApplies(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()

	f, err := seed.Default()
	require.NoError(t, err)

	applied, err := seed.Apply(ctx, st, f, now)
	require.NoError(t, err)
	require.True(t, applied)

	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 8)
	require.Equal(t, "Hari G", users[0].Name)
	require.Equal(t, []int64{2, 4}, users[0].Followers)
	require.Equal(t, []int64{2, 3}, users[0].Following)
	require.True(t, now.Add(-8*24*time.Hour).Equal(users[0].JoinedAt))

	admin, err := st.Users().GetUserByName(ctx, "ADMIN")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin())

	proposals, err := st.Proposals().ListProposals(ctx)
	require.NoError(t, err)
	require.Len(t, proposals, 3)
	require.Equal(t, domain.StatusClosed, proposals[2].Status)
	require.Equal(t, []string{"arts", "funding", "community"}, proposals[1].Tags)

	votes, err := st.Votes().ListVotesByProposal(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, domain.Tally{Yes: 3, No: 1, Abstain: 1}, domain.TallyVotes(votes))

	notes, err := st.Notifications().ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.EqualValues(t, 2, *notes[1].LinkID)
}

func TestApplySkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	_, err := st.Users().CreateUser(ctx, domain.User{Name: "already here"})
	require.NoError(t, err)

	f, err := seed.Default()
	require.NoError(t, err)
	applied, err := seed.Apply(ctx, st, f, now)
	require.NoError(t, err)
	require.False(t, applied)

	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestParseRejectsBadFixtures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "users:\n  - key: a\n    name: A\n    nickname: x\n"},
		{"dangling follow", "users:\n  - key: a\n    name: A\n    following: [b]\n"},
		{"self follow", "users:\n  - key: a\n    name: A\n    following: [a]\n"},
		{"bad role", "users:\n  - key: a\n    name: A\n    role: owner\n"},
		{"unknown author", "proposals:\n  - key: p\n    author: ghost\n    status: active\n"},
		{"bad status", "users:\n  - {key: a, name: A}\nproposals:\n  - {key: p, author: a, status: pending}\n"},
		{
			"double vote",
			"users:\n  - {key: a, name: A}\nproposals:\n  - {key: p, author: a, status: active}\n" +
				"votes:\n  - {proposal: p, voter: a, option: yes}\n  - {proposal: p, voter: a, option: no}\n",
		},
		{"bad link", "notifications:\n  - {type: welcome, message: hi, link: nope}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.doc))
			require.ErrorIs(t, err, seed.ErrInvalidFixture)
		})
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	f, err := seed.Load("")
	require.NoError(t, err)
	require.Len(t, f.Users, 8)
}
