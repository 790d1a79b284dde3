package sqlite

import (
	"context"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
)

type commentsRepo struct {
	q dbtx
}

const commentColumns = `id, proposal_id, author_id, author_name, content, created_at`

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	if err := (&proposalsRepo{q: r.q}).exists(ctx, c.ProposalID); err != nil {
		return domain.Comment{}, err
	}
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO comments (proposal_id, author_id, author_name, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ProposalID, c.AuthorID, c.AuthorName, c.Content, toMillis(c.CreatedAt))
	if err != nil {
		return domain.Comment{}, err
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

func (r *commentsRepo) ListComments(ctx context.Context) ([]domain.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY id`)
}

func (r *commentsRepo) ListCommentsByProposal(ctx context.Context, proposalID int64) ([]domain.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE proposal_id = ? ORDER BY id`, proposalID)
}

func (r *commentsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		var (
			c       domain.Comment
			created int64
		)
		if err := rows.Scan(&c.ID, &c.ProposalID, &c.AuthorID, &c.AuthorName, &c.Content, &created); err != nil {
			return nil, err
		}
		c.CreatedAt = fromMillis(created)
		out = append(out, c)
	}
	return out, rows.Err()
}
