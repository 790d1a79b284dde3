package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	exec := func(q string, args ...any) error {
		_, err := st.db.ExecContext(ctx, q, args...)
		return err
	}
	require.NoError(t, exec(`INSERT INTO users (id, name, name_key, joined_at) VALUES (1, 'A', 'a', 0), (2, 'B', 'b', 0)`))
	require.NoError(t, exec(`INSERT INTO proposals (id, title, description, author_id, author_name, status, created_at, deadline)
		VALUES (1, 't', 'd', 1, 'A', 'active', 0, 1)`))

	t.Run("unique vote", func(t *testing.T) {
		insert := `INSERT INTO votes (proposal_id, voter_id, voter_name, choice, created_at) VALUES (1, 2, 'B', 'yes', 0)`
		require.NoError(t, exec(insert))
		require.True(t, isUniqueViolation(exec(insert)))
	})

	t.Run("composite primary key", func(t *testing.T) {
		insert := `INSERT INTO follows (follower_id, target_id) VALUES (1, 2)`
		require.NoError(t, exec(insert))
		require.True(t, isUniqueViolation(exec(insert)))
	})

	t.Run("other constraints", func(t *testing.T) {
		err := exec(`UPDATE proposals SET status = 'pending' WHERE id = 1`)
		require.Error(t, err)
		require.False(t, isUniqueViolation(err), "CHECK failures are not conflicts")

		err = exec(`INSERT INTO follows (follower_id, target_id) VALUES (1, 99)`)
		require.Error(t, err)
		require.False(t, isUniqueViolation(err), "FK failures are not conflicts")
	})

	t.Run("non sqlite errors", func(t *testing.T) {
		require.False(t, isUniqueViolation(nil))
		require.False(t, isUniqueViolation(errors.New("UNIQUE constraint failed: votes.voter_id")))
	})
}
