package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, name, role, joined_at`

func nameKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

func scanUser(row scanner) (domain.User, error) {
	var (
		u      domain.User
		role   string
		joined int64
	)
	if err := row.Scan(&u.ID, &u.Name, &role, &joined); err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.JoinedAt = fromMillis(joined)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return r.withFollows(ctx, u)
}

func (r *usersRepo) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	key := nameKey(name)
	if key == "" {
		return domain.User{}, store.ErrNotFound
	}
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE name_key = ? ORDER BY id LIMIT 1`, key))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return r.withFollows(ctx, u)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	var out []domain.User
	index := map[int64]int{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		index[u.ID] = len(out)
		out = append(out, u)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edges, err := r.follows(ctx, `SELECT follower_id, target_id FROM follows ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if i, ok := index[e[0]]; ok {
			out[i].Following = append(out[i].Following, e[1])
		}
		if i, ok := index[e[1]]; ok {
			out[i].Followers = append(out[i].Followers, e[0])
		}
	}
	return out, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	if u.Role == "" {
		u.Role = domain.RoleMember
	}
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (name, name_key, role, joined_at) VALUES (?, ?, ?, ?)`,
		u.Name, nameKey(u.Name), string(u.Role), toMillis(u.JoinedAt))
	if err != nil {
		return domain.User{}, err
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return domain.User{}, err
	}
	u.Followers, u.Following = nil, nil
	return u, nil
}

func (r *usersRepo) AddFollow(ctx context.Context, followerID, targetID int64) error {
	n, err := count(ctx, r.q, `SELECT COUNT(*) FROM users WHERE id IN (?, ?)`, followerID, targetID)
	if err != nil {
		return err
	}
	want := 2
	if followerID == targetID {
		want = 1
	}
	if n != want {
		return store.ErrNotFound
	}

	exists, err := count(ctx, r.q,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ? AND target_id = ?`, followerID, targetID)
	if err != nil {
		return err
	}
	if exists > 0 {
		return store.ErrAlreadyExists
	}

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO follows (follower_id, target_id) VALUES (?, ?)`, followerID, targetID)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) RemoveFollow(ctx context.Context, followerID, targetID int64) error {
	return affectedOrNotFound(r.q.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND target_id = ?`, followerID, targetID))
}

func (r *usersRepo) withFollows(ctx context.Context, u domain.User) (domain.User, error) {
	edges, err := r.follows(ctx,
		`SELECT follower_id, target_id FROM follows WHERE follower_id = ? OR target_id = ? ORDER BY rowid`,
		u.ID, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	for _, e := range edges {
		if e[0] == u.ID {
			u.Following = append(u.Following, e[1])
		}
		if e[1] == u.ID {
			u.Followers = append(u.Followers, e[0])
		}
	}
	return u, nil
}

// follows returns (follower, target) pairs.
func (r *usersRepo) follows(ctx context.Context, query string, args ...any) ([][2]int64, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]int64
	for rows.Next() {
		var e [2]int64
		if err := rows.Scan(&e[0], &e[1]); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
