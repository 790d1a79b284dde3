package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrTxInProgress  = errors.New("store: nested transactions are not supported")
)

// Store is the root data access interface implemented by the memory and
// sqlite drivers. Sub-repositories hang off it so a Tx exposes exactly the
// same surface as the store it came from.
type Store interface {
	Users() Users
	Proposals() Proposals
	Votes() Votes
	Comments() Comments
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction. The store is single writer: while a
	// Tx is open every other writer and reader waits. The caller MUST call
	// Commit() or Rollback().
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. fn must only touch tx, never the outer store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Tx() and WithTx() on a Tx return ErrTxInProgress.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByName matches the trimmed name case-insensitively.
	GetUserByName(ctx context.Context, name string) (domain.User, error)

	// ListUsers returns every user in id (insertion) order.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser assigns the next user id. Followers and Following are ignored;
	// use AddFollow.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// AddFollow records follower -> target on both users. Returns
	// ErrAlreadyExists when the edge is already present.
	AddFollow(ctx context.Context, followerID, targetID int64) error

	// RemoveFollow deletes the edge from both users. Returns ErrNotFound when
	// there is nothing to remove.
	RemoveFollow(ctx context.Context, followerID, targetID int64) error
}

type Proposals interface {
	GetProposalByID(ctx context.Context, id int64) (domain.Proposal, error)

	// ListProposals returns proposals in id order.
	ListProposals(ctx context.Context) ([]domain.Proposal, error)

	// CreateProposal assigns the next proposal id.
	CreateProposal(ctx context.Context, p domain.Proposal) (domain.Proposal, error)

	UpdateProposalStatus(ctx context.Context, id int64, status domain.ProposalStatus) error

	// DeleteProposal removes the proposal with its votes and comments.
	DeleteProposal(ctx context.Context, id int64) error

	CountProposalsByAuthor(ctx context.Context, authorID int64) (int, error)
}

type Votes interface {
	// CreateVote returns ErrAlreadyExists when the voter already voted on the proposal.
	CreateVote(ctx context.Context, v domain.Vote) (domain.Vote, error)

	GetVoteByVoter(ctx context.Context, proposalID, voterID int64) (domain.Vote, error)

	// ListVotes returns every vote in cast order.
	ListVotes(ctx context.Context) ([]domain.Vote, error)

	ListVotesByProposal(ctx context.Context, proposalID int64) ([]domain.Vote, error)
	CountVotesByVoter(ctx context.Context, voterID int64) (int, error)
}

type Comments interface {
	CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error)

	// ListComments and ListCommentsByProposal return comments in id order.
	ListComments(ctx context.Context) ([]domain.Comment, error)
	ListCommentsByProposal(ctx context.Context, proposalID int64) ([]domain.Comment, error)
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error)

	// ListNotifications returns notifications in id order.
	ListNotifications(ctx context.Context) ([]domain.Notification, error)

	MarkNotificationRead(ctx context.Context, id int64) error

	// ExistsNotification reports whether a notification of type t links to linkID.
	ExistsNotification(ctx context.Context, t domain.NotificationType, linkID int64) (bool, error)
}
