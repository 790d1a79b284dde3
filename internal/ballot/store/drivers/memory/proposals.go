package memory

import (
	"context"
	"slices"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type proposalsRepo struct {
	db db
}

func findProposal(data *dataset, id int64) int {
	return slices.IndexFunc(data.proposals, func(p domain.Proposal) bool { return p.ID == id })
}

func (r *proposalsRepo) GetProposalByID(ctx context.Context, id int64) (domain.Proposal, error) {
	var out domain.Proposal
	err := r.db.read(func(data *dataset) error {
		i := findProposal(data, id)
		if i < 0 {
			return store.ErrNotFound
		}
		out = data.proposals[i].Clone()
		return nil
	})
	return out, err
}

func (r *proposalsRepo) ListProposals(ctx context.Context) ([]domain.Proposal, error) {
	var out []domain.Proposal
	err := r.db.read(func(data *dataset) error {
		out = make([]domain.Proposal, len(data.proposals))
		for i, p := range data.proposals {
			out[i] = p.Clone()
		}
		return nil
	})
	return out, err
}

func (r *proposalsRepo) CreateProposal(ctx context.Context, p domain.Proposal) (domain.Proposal, error) {
	err := r.db.write(func(data *dataset) error {
		data.seq.proposal++
		p.ID = data.seq.proposal
		p.Tags = slices.Clone(p.Tags)
		data.proposals = append(data.proposals, p.Clone())
		return nil
	})
	return p, err
}

func (r *proposalsRepo) UpdateProposalStatus(ctx context.Context, id int64, status domain.ProposalStatus) error {
	return r.db.write(func(data *dataset) error {
		i := findProposal(data, id)
		if i < 0 {
			return store.ErrNotFound
		}
		data.proposals[i].Status = status
		return nil
	})
}

func (r *proposalsRepo) DeleteProposal(ctx context.Context, id int64) error {
	return r.db.write(func(data *dataset) error {
		i := findProposal(data, id)
		if i < 0 {
			return store.ErrNotFound
		}
		data.proposals = slices.Delete(data.proposals, i, i+1)
		data.votes = slices.DeleteFunc(data.votes, func(v domain.Vote) bool { return v.ProposalID == id })
		data.comments = slices.DeleteFunc(data.comments, func(c domain.Comment) bool { return c.ProposalID == id })
		return nil
	})
}

func (r *proposalsRepo) CountProposalsByAuthor(ctx context.Context, authorID int64) (int, error) {
	var n int
	err := r.db.read(func(data *dataset) error {
		for _, p := range data.proposals {
			if p.AuthorID == authorID {
				n++
			}
		}
		return nil
	})
	return n, err
}
