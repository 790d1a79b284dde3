package memory

import (
	"context"
	"slices"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type commentsRepo struct {
	db db
}

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	err := r.db.write(func(data *dataset) error {
		if findProposal(data, c.ProposalID) < 0 {
			return store.ErrNotFound
		}
		data.seq.comment++
		c.ID = data.seq.comment
		data.comments = append(data.comments, c)
		return nil
	})
	return c, err
}

func (r *commentsRepo) ListComments(ctx context.Context) ([]domain.Comment, error) {
	var out []domain.Comment
	err := r.db.read(func(data *dataset) error {
		out = slices.Clone(data.comments)
		return nil
	})
	return out, err
}

func (r *commentsRepo) ListCommentsByProposal(ctx context.Context, proposalID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	err := r.db.read(func(data *dataset) error {
		for _, c := range data.comments {
			if c.ProposalID == proposalID {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}
