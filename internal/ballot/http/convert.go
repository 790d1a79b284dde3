package http

import (
	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/pkg/ballotsdk"
)

func toUser(u domain.User) ballotsdk.User {
	out := ballotsdk.User{
		ID:        u.ID,
		Name:      u.Name,
		Role:      string(u.Role),
		JoinedAt:  u.JoinedAt,
		Followers: u.Followers,
		Following: u.Following,
	}
	if out.Followers == nil {
		out.Followers = []int64{}
	}
	if out.Following == nil {
		out.Following = []int64{}
	}
	return out
}

func toUserWithStats(u domain.UserWithStats) ballotsdk.UserWithStats {
	return ballotsdk.UserWithStats{
		User:             toUser(u.User),
		ProposalsCreated: u.ProposalsCreated,
		VotesCast:        u.VotesCast,
		FollowerCount:    u.FollowerCount,
	}
}

func toLeaderboard(entries []domain.LeaderboardEntry) []ballotsdk.LeaderboardEntry {
	out := make([]ballotsdk.LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = ballotsdk.LeaderboardEntry{
			UserWithStats:  toUserWithStats(e.UserWithStats),
			CommunityScore: e.CommunityScore,
		}
	}
	return out
}

func toProposal(p domain.Proposal) ballotsdk.Proposal {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ballotsdk.Proposal{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		AuthorID:    p.AuthorID,
		AuthorName:  p.AuthorName,
		Tags:        tags,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		Deadline:    p.Deadline,
	}
}

func toSummary(p domain.ProposalWithAggregates) ballotsdk.ProposalSummary {
	return ballotsdk.ProposalSummary{
		Proposal: toProposal(p.Proposal),
		Votes: ballotsdk.Tally{
			Yes:     p.Votes.Yes,
			No:      p.Votes.No,
			Abstain: p.Votes.Abstain,
		},
		CommentCount: p.CommentCount,
	}
}

func toDetails(p domain.ProposalWithDetails) ballotsdk.ProposalDetails {
	out := ballotsdk.ProposalDetails{
		ProposalSummary: toSummary(p.ProposalWithAggregates),
		VoteList:        make([]ballotsdk.Vote, len(p.VoteList)),
		Comments:        make([]ballotsdk.Comment, len(p.Comments)),
	}
	for i, v := range p.VoteList {
		out.VoteList[i] = toVote(v)
	}
	for i, c := range p.Comments {
		out.Comments[i] = toComment(c)
	}
	return out
}

func toVote(v domain.Vote) ballotsdk.Vote {
	return ballotsdk.Vote{
		ID:         v.ID,
		ProposalID: v.ProposalID,
		VoterID:    v.VoterID,
		VoterName:  v.VoterName,
		Option:     string(v.Option),
		CreatedAt:  v.CreatedAt,
	}
}

func toComment(c domain.Comment) ballotsdk.Comment {
	return ballotsdk.Comment{
		ID:         c.ID,
		ProposalID: c.ProposalID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

func toNotification(n domain.Notification) ballotsdk.Notification {
	return ballotsdk.Notification{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		LinkID:    n.LinkID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
