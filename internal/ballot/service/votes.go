package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
)

type VoteService struct {
	Store         store.Store
	Notifications *NotificationService
	Metrics       *metrics.Metrics
	Now           func() time.Time
}

// Cast records the voter's choice on an active proposal. Each voter gets
// exactly one vote per proposal.
func (s *VoteService) Cast(ctx context.Context, proposalID, voterID int64, option domain.VoteOption) (domain.Vote, error) {
	log := slogx.FromContext(ctx)

	option, err := domain.ParseVoteOption(string(option))
	if err != nil {
		return domain.Vote{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	at := now(s.Now)

	var (
		vote     domain.Vote
		note     domain.Notification
		lapsed   domain.Proposal
		expired  bool
		rejected error
	)
	// A rejected vote still commits the reconciled status, so rejections are
	// returned through rejected rather than rolling the transaction back.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		expired, rejected = false, nil
		voter, err := actor(ctx, tx, voterID)
		if err != nil {
			return err
		}

		p, err := tx.Proposals().GetProposalByID(ctx, proposalID)
		if err != nil {
			return mapNotFound(err)
		}
		if expired, err = reconcile(ctx, tx, &p, at); err != nil {
			return err
		}
		lapsed = p

		_, err = tx.Votes().GetVoteByVoter(ctx, proposalID, voter.ID)
		switch {
		case err == nil:
			rejected = ErrAlreadyVoted
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		if p.Status != domain.StatusActive {
			rejected = ErrVotingClosed
			return nil
		}

		vote, err = tx.Votes().CreateVote(ctx, domain.Vote{
			ProposalID: p.ID,
			VoterID:    voter.ID,
			VoterName:  voter.Name,
			Option:     option,
			CreatedAt:  at,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyVoted
		}
		if err != nil {
			return err
		}

		note, err = s.Notifications.Emit(ctx, tx, domain.NotificationVoteCast,
			fmt.Sprintf(`%s voted on "%s"`, voter.Name, p.Title),
			domain.Link(p.ID),
		)
		return err
	})
	switch {
	case errors.Is(err, ErrAlreadyVoted):
		// Lost a race on the unique vote; nothing was committed.
		rejected = err
	case err != nil:
		return domain.Vote{}, err
	}
	if expired {
		reportExpired(ctx, s.Metrics, lapsed)
	}
	if rejected != nil {
		log.Info("vote rejected",
			slog.Int64("proposal_id", proposalID),
			slog.Int64("voter_id", voterID),
			slog.String("reason", rejected.Error()),
		)
		return domain.Vote{}, rejected
	}

	s.Metrics.VoteCast(string(vote.Option))
	s.Notifications.Publish(ctx, note)
	log.Info("vote cast",
		slog.Int64("proposal_id", vote.ProposalID),
		slog.Int64("voter_id", vote.VoterID),
		slog.String("option", string(vote.Option)),
	)
	return vote, nil
}
