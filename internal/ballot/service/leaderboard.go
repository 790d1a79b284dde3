package service

import (
	"context"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type LeaderboardService struct {
	Store store.Store
}

// Get ranks every user by community score. Users with equal scores keep
// their registration order.
func (s *LeaderboardService) Get(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var out []domain.LeaderboardEntry
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		users, err := tx.Users().ListUsers(ctx)
		if err != nil {
			return err
		}
		proposals, err := tx.Proposals().ListProposals(ctx)
		if err != nil {
			return err
		}
		votes, err := tx.Votes().ListVotes(ctx)
		if err != nil {
			return err
		}

		authored := map[int64]int{}
		for _, p := range proposals {
			authored[p.AuthorID]++
		}
		cast := map[int64]int{}
		for _, v := range votes {
			cast[v.VoterID]++
		}

		out = make([]domain.LeaderboardEntry, 0, len(users))
		for _, u := range users {
			stats := domain.UserWithStats{
				User:             u,
				ProposalsCreated: authored[u.ID],
				VotesCast:        cast[u.ID],
				FollowerCount:    len(u.Followers),
			}
			out = append(out, domain.LeaderboardEntry{
				UserWithStats:  stats,
				CommunityScore: domain.CommunityScore(stats.ProposalsCreated, stats.VotesCast, stats.FollowerCount),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	domain.RankLeaderboard(out)
	return out, nil
}
