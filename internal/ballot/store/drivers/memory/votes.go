package memory

import (
	"context"
	"slices"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type votesRepo struct {
	db db
}

func (r *votesRepo) CreateVote(ctx context.Context, v domain.Vote) (domain.Vote, error) {
	err := r.db.write(func(data *dataset) error {
		if findProposal(data, v.ProposalID) < 0 {
			return store.ErrNotFound
		}
		dup := slices.ContainsFunc(data.votes, func(have domain.Vote) bool {
			return have.ProposalID == v.ProposalID && have.VoterID == v.VoterID
		})
		if dup {
			return store.ErrAlreadyExists
		}
		data.seq.vote++
		v.ID = data.seq.vote
		data.votes = append(data.votes, v)
		return nil
	})
	return v, err
}

func (r *votesRepo) GetVoteByVoter(ctx context.Context, proposalID, voterID int64) (domain.Vote, error) {
	var out domain.Vote
	err := r.db.read(func(data *dataset) error {
		for _, v := range data.votes {
			if v.ProposalID == proposalID && v.VoterID == voterID {
				out = v
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (r *votesRepo) ListVotes(ctx context.Context) ([]domain.Vote, error) {
	var out []domain.Vote
	err := r.db.read(func(data *dataset) error {
		out = slices.Clone(data.votes)
		return nil
	})
	return out, err
}

func (r *votesRepo) ListVotesByProposal(ctx context.Context, proposalID int64) ([]domain.Vote, error) {
	var out []domain.Vote
	err := r.db.read(func(data *dataset) error {
		for _, v := range data.votes {
			if v.ProposalID == proposalID {
				out = append(out, v)
			}
		}
		return nil
	})
	return out, err
}

func (r *votesRepo) CountVotesByVoter(ctx context.Context, voterID int64) (int, error) {
	var n int
	err := r.db.read(func(data *dataset) error {
		for _, v := range data.votes {
			if v.VoterID == voterID {
				n++
			}
		}
		return nil
	})
	return n, err
}
