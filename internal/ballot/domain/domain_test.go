package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		status   domain.ProposalStatus
		deadline time.Time
		want     domain.ProposalStatus
		changed  bool
	}{
		{"active past deadline expires", domain.StatusActive, now.Add(-time.Minute), domain.StatusExpired, true},
		{"active before deadline stays", domain.StatusActive, now.Add(time.Minute), domain.StatusActive, false},
		{"deadline equal to now is not past", domain.StatusActive, now, domain.StatusActive, false},
		{"closed is never re-derived", domain.StatusClosed, now.Add(-time.Hour), domain.StatusClosed, false},
		{"expired stays expired", domain.StatusExpired, now.Add(time.Hour), domain.StatusExpired, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := domain.Proposal{Status: tc.status, Deadline: tc.deadline}
			require.Equal(t, tc.changed, domain.Reconcile(&p, now))
			require.Equal(t, tc.want, p.Status)

			// Running it again never changes anything.
			require.False(t, domain.Reconcile(&p, now))
			require.Equal(t, tc.want, p.Status)
		})
	}
}

func TestTallyVotes(t *testing.T) {
	t.Parallel()

	votes := []domain.Vote{
		{Option: domain.VoteYes},
		{Option: domain.VoteYes},
		{Option: domain.VoteNo},
		{Option: domain.VoteAbstain},
		{Option: domain.VoteYes},
	}

	tally := domain.TallyVotes(votes)
	require.Equal(t, domain.Tally{Yes: 3, No: 1, Abstain: 1}, tally)
	require.Equal(t, len(votes), tally.Total())
	require.Zero(t, domain.TallyVotes(nil).Total())
}

func TestCommunityScore(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, domain.CommunityScore(0, 0, 0))
	require.Equal(t, 5, domain.CommunityScore(1, 0, 0))
	require.Equal(t, 1, domain.CommunityScore(0, 1, 0))
	require.Equal(t, 2, domain.CommunityScore(0, 0, 1))
	require.Equal(t, 5*2+3+2*4, domain.CommunityScore(2, 3, 4))
}

func TestRankLeaderboardIsStable(t *testing.T) {
	t.Parallel()

	entry := func(id int64, score int) domain.LeaderboardEntry {
		return domain.LeaderboardEntry{
			UserWithStats:  domain.UserWithStats{User: domain.User{ID: id}},
			CommunityScore: score,
		}
	}

	entries := []domain.LeaderboardEntry{entry(1, 3), entry(2, 9), entry(3, 3), entry(4, 0), entry(5, 9)}
	domain.RankLeaderboard(entries)

	var ids []int64
	for i, e := range entries {
		ids = append(ids, e.ID)
		if i > 0 {
			require.LessOrEqual(t, e.CommunityScore, entries[i-1].CommunityScore)
		}
	}
	require.Equal(t, []int64{2, 5, 1, 3, 4}, ids)
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"parks", "community"}, domain.NormalizeTags([]string{" parks", "", "community ", "parks", "  "}))
	require.Empty(t, domain.NormalizeTags(nil))
	require.Equal(t, []string{"arts", "funding"}, domain.SplitTags("arts, funding,,arts"))
}

func TestHasAllTags(t *testing.T) {
	t.Parallel()

	p := domain.Proposal{Tags: []string{"community", "parks", "environment"}}
	require.True(t, p.HasAllTags(nil))
	require.True(t, p.HasAllTags([]string{"Parks", "community"}))
	require.False(t, p.HasAllTags([]string{"parks", "arts"}))
}

func TestParseStatusAndOption(t *testing.T) {
	t.Parallel()

	st, err := domain.ParseStatus(" Closed ")
	require.NoError(t, err)
	require.Equal(t, domain.StatusClosed, st)

	_, err = domain.ParseStatus("archived")
	require.Error(t, err)

	opt, err := domain.ParseVoteOption("ABSTAIN")
	require.NoError(t, err)
	require.Equal(t, domain.VoteAbstain, opt)

	_, err = domain.ParseVoteOption("maybe")
	require.Error(t, err)
}

func TestRoleScopes(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{domain.ScopeProposalsAdmin}, domain.RoleAdmin.Scopes())
	require.Empty(t, domain.RoleMember.Scopes())
}

func TestUserCloneDoesNotAlias(t *testing.T) {
	t.Parallel()

	u := domain.User{ID: 1, Followers: []int64{2}, Following: []int64{3}}
	c := u.Clone()
	c.Followers[0] = 99
	c.Following = append(c.Following, 4)

	require.Equal(t, []int64{2}, u.Followers)
	require.Equal(t, []int64{3}, u.Following)
	require.True(t, u.IsFollowing(3))
	require.False(t, u.IsFollowing(4))
}
