// Package service implements the ballot commands and read views on top of a
// store.Store. Every command runs in a single store transaction, so a failed
// command leaves no partial state behind.
package service

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyVoted    = errors.New("you have already voted on this proposal")
	ErrUnauthenticated = errors.New("login required")
	ErrValidation      = errors.New("validation failed")
	ErrVotingClosed    = errors.New("voting is closed for this proposal")
)

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips any markup from user supplied text and trims it.
// StrictPolicy escapes what it keeps, so entities are decoded again to store
// plain text; encoders escape on the way out.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// actor resolves the calling user. A zero or unknown id means nobody is
// logged in.
func actor(ctx context.Context, tx store.Tx, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, ErrUnauthenticated
	}
	u, err := tx.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUnauthenticated
	}
	return u, err
}

// reconcile persists an Active -> Expired transition for p when its deadline
// has passed and reports whether it made one. Callers report the expiry with
// reportExpired once the transaction has committed.
func reconcile(ctx context.Context, tx store.Tx, p *domain.Proposal, at time.Time) (bool, error) {
	if !domain.Reconcile(p, at) {
		return false, nil
	}
	if err := tx.Proposals().UpdateProposalStatus(ctx, p.ID, p.Status); err != nil {
		return false, err
	}
	return true, nil
}

func reportExpired(ctx context.Context, m *metrics.Metrics, expired ...domain.Proposal) {
	log := slogx.FromContext(ctx)
	for _, p := range expired {
		m.ProposalExpired()
		log.Info("proposal expired",
			slog.Int64("proposal_id", p.ID),
			slog.Time("deadline", p.Deadline),
		)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
