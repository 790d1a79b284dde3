package sqlite

import (
	"context"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type proposalsRepo struct {
	q dbtx
}

const proposalColumns = `id, title, description, author_id, author_name, tags, status, created_at, deadline`

func scanProposal(row scanner) (domain.Proposal, error) {
	var (
		p                 domain.Proposal
		tags, status      string
		created, deadline int64
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.AuthorID, &p.AuthorName,
		&tags, &status, &created, &deadline)
	if err != nil {
		return domain.Proposal{}, err
	}
	if p.Tags, err = decodeTags(tags); err != nil {
		return domain.Proposal{}, err
	}
	p.Status = domain.ProposalStatus(status)
	p.CreatedAt = fromMillis(created)
	p.Deadline = fromMillis(deadline)
	return p, nil
}

func (r *proposalsRepo) GetProposalByID(ctx context.Context, id int64) (domain.Proposal, error) {
	p, err := scanProposal(r.q.QueryRowContext(ctx,
		`SELECT `+proposalColumns+` FROM proposals WHERE id = ?`, id))
	if err != nil {
		return domain.Proposal{}, mapNotFound(err)
	}
	return p, nil
}

func (r *proposalsRepo) ListProposals(ctx context.Context) ([]domain.Proposal, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+proposalColumns+` FROM proposals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *proposalsRepo) CreateProposal(ctx context.Context, p domain.Proposal) (domain.Proposal, error) {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return domain.Proposal{}, err
	}
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO proposals (title, description, author_id, author_name, tags, status, created_at, deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.AuthorID, p.AuthorName, tags, string(p.Status),
		toMillis(p.CreatedAt), toMillis(p.Deadline))
	if err != nil {
		return domain.Proposal{}, err
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return domain.Proposal{}, err
	}
	return p.Clone(), nil
}

func (r *proposalsRepo) UpdateProposalStatus(ctx context.Context, id int64, status domain.ProposalStatus) error {
	return affectedOrNotFound(r.q.ExecContext(ctx,
		`UPDATE proposals SET status = ? WHERE id = ?`, string(status), id))
}

// DeleteProposal relies on ON DELETE CASCADE for votes and comments.
func (r *proposalsRepo) DeleteProposal(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `DELETE FROM proposals WHERE id = ?`, id))
}

func (r *proposalsRepo) CountProposalsByAuthor(ctx context.Context, authorID int64) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM proposals WHERE author_id = ?`, authorID)
}

func (r *proposalsRepo) exists(ctx context.Context, id int64) error {
	n, err := count(ctx, r.q, `SELECT COUNT(*) FROM proposals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
