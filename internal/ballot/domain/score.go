package domain

import "slices"

// Community score weights.
const (
	ScorePerProposal = 5
	ScorePerVote     = 1
	ScorePerFollower = 2
)

func CommunityScore(proposals, votes, followers int) int {
	return ScorePerProposal*proposals + ScorePerVote*votes + ScorePerFollower*followers
}

// RankLeaderboard orders entries by score, highest first. Equal scores keep
// their incoming order.
func RankLeaderboard(entries []LeaderboardEntry) {
	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		return b.CommunityScore - a.CommunityScore
	})
}
