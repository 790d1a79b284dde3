// Package storetest is a behavioural suite every store driver must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty, migrated store. It should register its own cleanup.
type Factory func(t *testing.T) store.Store

// Base is a millisecond aligned instant; drivers are allowed to drop
// anything finer.
var Base = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("follows", func(t *testing.T) { testFollows(t, newStore(t)) })
	t.Run("proposals", func(t *testing.T) { testProposals(t, newStore(t)) })
	t.Run("votes", func(t *testing.T) { testVotes(t, newStore(t)) })
	t.Run("delete cascades", func(t *testing.T) { testDeleteCascade(t, newStore(t)) })
	t.Run("comments", func(t *testing.T) { testComments(t, newStore(t)) })
	t.Run("notifications", func(t *testing.T) { testNotifications(t, newStore(t)) })
	t.Run("tx commit and rollback", func(t *testing.T) { testTx(t, newStore(t)) })
	t.Run("nested tx refused", func(t *testing.T) { testNestedTx(t, newStore(t)) })
	t.Run("ping", func(t *testing.T) { require.NoError(t, newStore(t).Ping(context.Background())) })
}

func mustUser(t *testing.T, st store.Store, name string, role domain.Role) domain.User {
	t.Helper()
	u, err := st.Users().CreateUser(context.Background(), domain.User{Name: name, Role: role, JoinedAt: Base})
	require.NoError(t, err)
	return u
}

func mustProposal(t *testing.T, st store.Store, author domain.User, title string) domain.Proposal {
	t.Helper()
	p, err := st.Proposals().CreateProposal(context.Background(), domain.Proposal{
		Title:       title,
		Description: title + " description",
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		Tags:        []string{"community", "parks"},
		Status:      domain.StatusActive,
		CreatedAt:   Base,
		Deadline:    Base.Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return p
}

func testUsers(t *testing.T, st store.Store) {
	ctx := context.Background()

	hari := mustUser(t, st, "Hari G", domain.RoleMember)
	admin := mustUser(t, st, "admin", domain.RoleAdmin)
	require.EqualValues(t, 1, hari.ID)
	require.EqualValues(t, 2, admin.ID)

	got, err := st.Users().GetUserByID(ctx, hari.ID)
	require.NoError(t, err)
	require.Equal(t, "Hari G", got.Name)
	require.Equal(t, domain.RoleMember, got.Role)
	require.True(t, Base.Equal(got.JoinedAt))
	require.Empty(t, got.Followers)
	require.Empty(t, got.Following)

	byName, err := st.Users().GetUserByName(ctx, "  hari g ")
	require.NoError(t, err)
	require.Equal(t, hari.ID, byName.ID)

	_, err = st.Users().GetUserByName(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Users().GetUserByName(ctx, "   ")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Users().GetUserByID(ctx, 99)
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, hari.ID, all[0].ID)
	require.Equal(t, domain.RoleAdmin, all[1].Role)
}

func testFollows(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := mustUser(t, st, "A", domain.RoleMember)
	b := mustUser(t, st, "B", domain.RoleMember)
	c := mustUser(t, st, "C", domain.RoleMember)

	require.NoError(t, st.Users().AddFollow(ctx, a.ID, b.ID))
	require.NoError(t, st.Users().AddFollow(ctx, c.ID, b.ID))
	require.ErrorIs(t, st.Users().AddFollow(ctx, a.ID, b.ID), store.ErrAlreadyExists)
	require.ErrorIs(t, st.Users().AddFollow(ctx, a.ID, 404), store.ErrNotFound)

	gotA, err := st.Users().GetUserByID(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := st.Users().GetUserByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{b.ID}, gotA.Following)
	require.Equal(t, []int64{a.ID, c.ID}, gotB.Followers)

	require.NoError(t, st.Users().RemoveFollow(ctx, a.ID, b.ID))
	require.ErrorIs(t, st.Users().RemoveFollow(ctx, a.ID, b.ID), store.ErrNotFound)

	gotA, err = st.Users().GetUserByID(ctx, a.ID)
	require.NoError(t, err)
	gotB, err = st.Users().GetUserByID(ctx, b.ID)
	require.NoError(t, err)
	require.Empty(t, gotA.Following)
	require.Equal(t, []int64{c.ID}, gotB.Followers)
}

func testProposals(t *testing.T, st store.Store) {
	ctx := context.Background()
	author := mustUser(t, st, "Arun Kumar", domain.RoleMember)

	p1 := mustProposal(t, st, author, "Garden")
	p2 := mustProposal(t, st, author, "Mural")
	require.EqualValues(t, 1, p1.ID)
	require.EqualValues(t, 2, p2.ID)

	got, err := st.Proposals().GetProposalByID(ctx, p1.ID)
	require.NoError(t, err)
	require.Equal(t, "Garden", got.Title)
	require.Equal(t, "Arun Kumar", got.AuthorName)
	require.Equal(t, []string{"community", "parks"}, got.Tags)
	require.Equal(t, domain.StatusActive, got.Status)
	require.True(t, Base.Equal(got.CreatedAt))
	require.True(t, Base.Add(7*24*time.Hour).Equal(got.Deadline))

	require.NoError(t, st.Proposals().UpdateProposalStatus(ctx, p1.ID, domain.StatusClosed))
	got, err = st.Proposals().GetProposalByID(ctx, p1.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusClosed, got.Status)

	require.ErrorIs(t, st.Proposals().UpdateProposalStatus(ctx, 99, domain.StatusClosed), store.ErrNotFound)
	_, err = st.Proposals().GetProposalByID(ctx, 99)
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := st.Proposals().ListProposals(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, p1.ID, list[0].ID)

	n, err := st.Proposals().CountProposalsByAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func testVotes(t *testing.T, st store.Store) {
	ctx := context.Background()
	author := mustUser(t, st, "Priya Sharma", domain.RoleMember)
	voter := mustUser(t, st, "Rajesh Patel", domain.RoleMember)
	p := mustProposal(t, st, author, "Recycling")

	v, err := st.Votes().CreateVote(ctx, domain.Vote{
		ProposalID: p.ID, VoterID: voter.ID, VoterName: voter.Name, Option: domain.VoteYes, CreatedAt: Base,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, v.ID)

	_, err = st.Votes().CreateVote(ctx, domain.Vote{
		ProposalID: p.ID, VoterID: voter.ID, VoterName: voter.Name, Option: domain.VoteNo, CreatedAt: Base,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Votes().CreateVote(ctx, domain.Vote{ProposalID: 99, VoterID: voter.ID, Option: domain.VoteNo, CreatedAt: Base})
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Votes().CreateVote(ctx, domain.Vote{
		ProposalID: p.ID, VoterID: author.ID, VoterName: author.Name, Option: domain.VoteAbstain, CreatedAt: Base.Add(time.Second),
	})
	require.NoError(t, err)

	got, err := st.Votes().GetVoteByVoter(ctx, p.ID, voter.ID)
	require.NoError(t, err)
	require.Equal(t, domain.VoteYes, got.Option)
	require.Equal(t, "Rajesh Patel", got.VoterName)

	_, err = st.Votes().GetVoteByVoter(ctx, p.ID, 99)
	require.ErrorIs(t, err, store.ErrNotFound)

	byProposal, err := st.Votes().ListVotesByProposal(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, byProposal, 2)
	require.Equal(t, voter.ID, byProposal[0].VoterID)

	all, err := st.Votes().ListVotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	n, err := st.Votes().CountVotesByVoter(ctx, voter.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func testDeleteCascade(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := mustUser(t, st, "A", domain.RoleMember)
	b := mustUser(t, st, "B", domain.RoleMember)
	doomed := mustProposal(t, st, a, "Doomed")
	kept := mustProposal(t, st, a, "Kept")

	for _, pid := range []int64{doomed.ID, kept.ID} {
		for _, u := range []domain.User{a, b} {
			_, err := st.Votes().CreateVote(ctx, domain.Vote{ProposalID: pid, VoterID: u.ID, VoterName: u.Name, Option: domain.VoteYes, CreatedAt: Base})
			require.NoError(t, err)
		}
	}
	_, err := st.Comments().CreateComment(ctx, domain.Comment{ProposalID: doomed.ID, AuthorID: b.ID, AuthorName: b.Name, Content: "bye", CreatedAt: Base})
	require.NoError(t, err)

	require.NoError(t, st.Proposals().DeleteProposal(ctx, doomed.ID))
	require.ErrorIs(t, st.Proposals().DeleteProposal(ctx, doomed.ID), store.ErrNotFound)

	_, err = st.Proposals().GetProposalByID(ctx, doomed.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	votes, err := st.Votes().ListVotes(ctx)
	require.NoError(t, err)
	require.Len(t, votes, 2)
	for _, v := range votes {
		require.Equal(t, kept.ID, v.ProposalID)
	}

	comments, err := st.Comments().ListComments(ctx)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func testComments(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := mustUser(t, st, "Vijay Singh", domain.RoleMember)
	p := mustProposal(t, st, a, "Garden")

	c1, err := st.Comments().CreateComment(ctx, domain.Comment{ProposalID: p.ID, AuthorID: a.ID, AuthorName: a.Name, Content: "first", CreatedAt: Base})
	require.NoError(t, err)
	c2, err := st.Comments().CreateComment(ctx, domain.Comment{ProposalID: p.ID, AuthorID: a.ID, AuthorName: a.Name, Content: "second", CreatedAt: Base.Add(time.Minute)})
	require.NoError(t, err)
	require.Greater(t, c2.ID, c1.ID)

	_, err = st.Comments().CreateComment(ctx, domain.Comment{ProposalID: 99, AuthorID: a.ID, Content: "orphan", CreatedAt: Base})
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := st.Comments().ListCommentsByProposal(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "first", list[0].Content)
	require.Equal(t, "Vijay Singh", list[0].AuthorName)
	require.True(t, Base.Add(time.Minute).Equal(list[1].CreatedAt))
}

func testNotifications(t *testing.T, st store.Store) {
	ctx := context.Background()

	welcome, err := st.Notifications().CreateNotification(ctx, domain.Notification{
		Type: domain.NotificationWelcome, Message: "hello", Read: true, CreatedAt: Base,
	})
	require.NoError(t, err)
	require.Nil(t, welcome.LinkID)

	soon, err := st.Notifications().CreateNotification(ctx, domain.Notification{
		Type: domain.NotificationDeadlineSoon, Message: "soon", LinkID: domain.Link(2), CreatedAt: Base.Add(time.Hour),
	})
	require.NoError(t, err)

	exists, err := st.Notifications().ExistsNotification(ctx, domain.NotificationDeadlineSoon, 2)
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = st.Notifications().ExistsNotification(ctx, domain.NotificationDeadlineSoon, 3)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, st.Notifications().MarkNotificationRead(ctx, soon.ID))
	require.ErrorIs(t, st.Notifications().MarkNotificationRead(ctx, 99), store.ErrNotFound)

	list, err := st.Notifications().ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.True(t, list[0].Read)
	require.True(t, list[1].Read)
	require.NotNil(t, list[1].LinkID)
	require.EqualValues(t, 2, *list[1].LinkID)
}

func testTx(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := mustUser(t, st, "A", domain.RoleMember)
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Proposals().CreateProposal(ctx, domain.Proposal{
			Title: "half done", Description: "x", AuthorID: a.ID, AuthorName: a.Name,
			Status: domain.StatusActive, CreatedAt: Base, Deadline: Base,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := st.Proposals().ListProposals(ctx)
	require.NoError(t, err)
	require.Empty(t, list, "rolled back proposal must not be visible")

	err = st.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Proposals().CreateProposal(ctx, domain.Proposal{
			Title: "done", Description: "x", AuthorID: a.ID, AuthorName: a.Name,
			Status: domain.StatusActive, CreatedAt: Base, Deadline: Base,
		})
		if err != nil {
			return err
		}
		_, err = tx.Votes().CreateVote(ctx, domain.Vote{ProposalID: p.ID, VoterID: a.ID, VoterName: a.Name, Option: domain.VoteYes, CreatedAt: Base})
		return err
	})
	require.NoError(t, err)

	list, err = st.Proposals().ListProposals(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	votes, err := st.Votes().ListVotesByProposal(ctx, list[0].ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)

	// Rollback after Commit only reports that the tx is finished.
	tx, err := st.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.Error(t, tx.Rollback())
}

func testNestedTx(t *testing.T, st store.Store) {
	ctx := context.Background()
	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.ErrorIs(t, err, store.ErrTxInProgress)
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.ErrorIs(t, err, store.ErrTxInProgress)
}
