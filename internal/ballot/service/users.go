package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
)

type UserService struct {
	Store         store.Store
	Notifications *NotificationService
}

// Get returns a user with their activity counts.
func (s *UserService) Get(ctx context.Context, id int64) (domain.UserWithStats, error) {
	var out domain.UserWithStats
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return mapNotFound(err)
		}
		out, err = userStats(ctx, tx, u)
		return err
	})
	return out, err
}

// FindByName looks a user up by display name, ignoring case and surrounding
// whitespace. It is the login step: there are no passwords.
func (s *UserService) FindByName(ctx context.Context, name string) (domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	u, err := s.Store.Users().GetUserByName(ctx, name)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

// Follow makes follower follow target. Following someone twice is a no-op.
func (s *UserService) Follow(ctx context.Context, followerID, targetID int64) error {
	var (
		note    domain.Notification
		emitted bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		follower, target, err := followPair(ctx, tx, followerID, targetID)
		if err != nil {
			return err
		}
		if follower.IsFollowing(target.ID) {
			return nil
		}
		if err := tx.Users().AddFollow(ctx, follower.ID, target.ID); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil
			}
			return mapNotFound(err)
		}

		note, err = s.Notifications.Emit(ctx, tx, domain.NotificationNewFollower,
			fmt.Sprintf("%s started following you.", follower.Name), nil)
		emitted = err == nil
		return err
	})
	if err != nil {
		return err
	}

	if emitted {
		s.Notifications.Publish(ctx, note)
		slogx.FromContext(ctx).Info("user followed",
			slog.Int64("follower_id", followerID),
			slog.Int64("target_id", targetID),
		)
	}
	return nil
}

// Unfollow removes the follow edge. Unfollowing someone you do not follow is
// a no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID, targetID int64) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		follower, target, err := followPair(ctx, tx, followerID, targetID)
		if err != nil {
			return err
		}
		if !follower.IsFollowing(target.ID) {
			return nil
		}
		err = tx.Users().RemoveFollow(ctx, follower.ID, target.ID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	})
}

func followPair(ctx context.Context, tx store.Tx, followerID, targetID int64) (domain.User, domain.User, error) {
	follower, err := actor(ctx, tx, followerID)
	if err != nil {
		return domain.User{}, domain.User{}, err
	}
	if followerID == targetID {
		return domain.User{}, domain.User{}, fmt.Errorf("%w: you cannot follow yourself", ErrValidation)
	}
	target, err := tx.Users().GetUserByID(ctx, targetID)
	if err != nil {
		return domain.User{}, domain.User{}, mapNotFound(err)
	}
	return follower, target, nil
}

func userStats(ctx context.Context, tx store.Tx, u domain.User) (domain.UserWithStats, error) {
	proposals, err := tx.Proposals().CountProposalsByAuthor(ctx, u.ID)
	if err != nil {
		return domain.UserWithStats{}, err
	}
	votes, err := tx.Votes().CountVotesByVoter(ctx, u.ID)
	if err != nil {
		return domain.UserWithStats{}, err
	}
	return domain.UserWithStats{
		User:             u,
		ProposalsCreated: proposals,
		VotesCast:        votes,
		FollowerCount:    len(u.Followers),
	}, nil
}
