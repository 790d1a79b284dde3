package sqlite

import (
	"context"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type votesRepo struct {
	q dbtx
}

const voteColumns = `id, proposal_id, voter_id, voter_name, choice, created_at`

func scanVote(row scanner) (domain.Vote, error) {
	var (
		v       domain.Vote
		choice  string
		created int64
	)
	if err := row.Scan(&v.ID, &v.ProposalID, &v.VoterID, &v.VoterName, &choice, &created); err != nil {
		return domain.Vote{}, err
	}
	v.Option = domain.VoteOption(choice)
	v.CreatedAt = fromMillis(created)
	return v, nil
}

func (r *votesRepo) CreateVote(ctx context.Context, v domain.Vote) (domain.Vote, error) {
	if err := (&proposalsRepo{q: r.q}).exists(ctx, v.ProposalID); err != nil {
		return domain.Vote{}, err
	}
	dup, err := count(ctx, r.q,
		`SELECT COUNT(*) FROM votes WHERE proposal_id = ? AND voter_id = ?`, v.ProposalID, v.VoterID)
	if err != nil {
		return domain.Vote{}, err
	}
	if dup > 0 {
		return domain.Vote{}, store.ErrAlreadyExists
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO votes (proposal_id, voter_id, voter_name, choice, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		v.ProposalID, v.VoterID, v.VoterName, string(v.Option), toMillis(v.CreatedAt))
	if isUniqueViolation(err) {
		return domain.Vote{}, store.ErrAlreadyExists
	}
	if err != nil {
		return domain.Vote{}, err
	}
	if v.ID, err = res.LastInsertId(); err != nil {
		return domain.Vote{}, err
	}
	return v, nil
}

func (r *votesRepo) GetVoteByVoter(ctx context.Context, proposalID, voterID int64) (domain.Vote, error) {
	v, err := scanVote(r.q.QueryRowContext(ctx,
		`SELECT `+voteColumns+` FROM votes WHERE proposal_id = ? AND voter_id = ?`, proposalID, voterID))
	if err != nil {
		return domain.Vote{}, mapNotFound(err)
	}
	return v, nil
}

func (r *votesRepo) ListVotes(ctx context.Context) ([]domain.Vote, error) {
	return r.list(ctx, `SELECT `+voteColumns+` FROM votes ORDER BY id`)
}

func (r *votesRepo) ListVotesByProposal(ctx context.Context, proposalID int64) ([]domain.Vote, error) {
	return r.list(ctx, `SELECT `+voteColumns+` FROM votes WHERE proposal_id = ? ORDER BY id`, proposalID)
}

func (r *votesRepo) CountVotesByVoter(ctx context.Context, voterID int64) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM votes WHERE voter_id = ?`, voterID)
}

func (r *votesRepo) list(ctx context.Context, query string, args ...any) ([]domain.Vote, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Vote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
