package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
)

// DefaultVotingWindow is how long a new proposal stays open for votes.
const DefaultVotingWindow = 7 * 24 * time.Hour

type SortOrder string

const (
	SortNewest     SortOrder = "newest"
	SortEndingSoon SortOrder = "ending_soon"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortEndingSoon:
		return o, nil
	default:
		return "", fmt.Errorf("%w: unknown sort %q", ErrValidation, s)
	}
}

// ListOptions narrows and orders the proposal list. The zero value lists
// everything newest first.
type ListOptions struct {
	Status domain.ProposalStatus // empty matches every status
	Tags   []string              // a proposal must carry all of them
	Search string                // case-insensitive, title or description
	Sort   SortOrder
}

func (o ListOptions) matches(p domain.Proposal) bool {
	if o.Status != "" && p.Status != o.Status {
		return false
	}
	if !p.HasAllTags(o.Tags) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(o.Search)); q != "" {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}
	return true
}

type CreateProposalInput struct {
	Title       string
	Description string
	Tags        []string
	AuthorID    int64
}

type ProposalService struct {
	Store         store.Store
	Notifications *NotificationService
	Metrics       *metrics.Metrics
	Now           func() time.Time

	// VotingWindow defaults to DefaultVotingWindow.
	VotingWindow time.Duration
}

// List reconciles every proposal and returns the ones matching opts with
// their vote tallies and comment counts.
func (s *ProposalService) List(ctx context.Context, opts ListOptions) ([]domain.ProposalWithAggregates, error) {
	at := now(s.Now)

	var (
		out     []domain.ProposalWithAggregates
		expired []domain.Proposal
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		out, expired = nil, nil
		proposals, err := tx.Proposals().ListProposals(ctx)
		if err != nil {
			return err
		}
		for i := range proposals {
			changed, err := reconcile(ctx, tx, &proposals[i], at)
			if err != nil {
				return err
			}
			if changed {
				expired = append(expired, proposals[i])
			}
		}

		votes, err := tx.Votes().ListVotes(ctx)
		if err != nil {
			return err
		}
		comments, err := tx.Comments().ListComments(ctx)
		if err != nil {
			return err
		}

		byProposal := make(map[int64][]domain.Vote, len(proposals))
		for _, v := range votes {
			byProposal[v.ProposalID] = append(byProposal[v.ProposalID], v)
		}
		commentCount := make(map[int64]int, len(proposals))
		for _, c := range comments {
			commentCount[c.ProposalID]++
		}

		for _, p := range proposals {
			if !opts.matches(p) {
				continue
			}
			out = append(out, domain.ProposalWithAggregates{
				Proposal:     p,
				Votes:        domain.TallyVotes(byProposal[p.ID]),
				CommentCount: commentCount[p.ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	reportExpired(ctx, s.Metrics, expired...)

	sortProposals(out, opts.Sort)
	return out, nil
}

func newestFirst(a, b domain.Proposal) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// sortProposals orders by creation time, or for ending_soon puts active
// proposals first by nearest deadline and the rest newest first.
func sortProposals(list []domain.ProposalWithAggregates, order SortOrder) {
	slices.SortStableFunc(list, func(a, b domain.ProposalWithAggregates) int {
		if order != SortEndingSoon {
			return newestFirst(a.Proposal, b.Proposal)
		}
		aActive, bActive := a.Status == domain.StatusActive, b.Status == domain.StatusActive
		switch {
		case aActive && !bActive:
			return -1
		case !aActive && bActive:
			return 1
		case aActive && bActive:
			if c := a.Deadline.Compare(b.Deadline); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		default:
			return newestFirst(a.Proposal, b.Proposal)
		}
	})
}

// Get returns a reconciled proposal with its votes in cast order and its
// comments newest first.
func (s *ProposalService) Get(ctx context.Context, id int64) (domain.ProposalWithDetails, error) {
	at := now(s.Now)

	var (
		out     domain.ProposalWithDetails
		expired bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Proposals().GetProposalByID(ctx, id)
		if err != nil {
			return mapNotFound(err)
		}
		if expired, err = reconcile(ctx, tx, &p, at); err != nil {
			return err
		}

		votes, err := tx.Votes().ListVotesByProposal(ctx, id)
		if err != nil {
			return err
		}
		comments, err := tx.Comments().ListCommentsByProposal(ctx, id)
		if err != nil {
			return err
		}
		slices.SortStableFunc(comments, func(a, b domain.Comment) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(b.ID, a.ID)
		})

		out = domain.ProposalWithDetails{
			ProposalWithAggregates: domain.ProposalWithAggregates{
				Proposal:     p,
				Votes:        domain.TallyVotes(votes),
				CommentCount: len(comments),
			},
			VoteList: votes,
			Comments: comments,
		}
		return nil
	})
	if err != nil {
		return domain.ProposalWithDetails{}, err
	}
	if expired {
		reportExpired(ctx, s.Metrics, out.Proposal)
	}
	return out, nil
}

// Create opens a new proposal for voting and announces it.
func (s *ProposalService) Create(ctx context.Context, in CreateProposalInput) (domain.Proposal, error) {
	log := slogx.FromContext(ctx)

	title, description := cleanText(in.Title), cleanText(in.Description)
	if title == "" {
		return domain.Proposal{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if description == "" {
		return domain.Proposal{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		tags = append(tags, cleanText(t))
	}
	tags = domain.NormalizeTags(tags)

	window := s.VotingWindow
	if window <= 0 {
		window = DefaultVotingWindow
	}
	at := now(s.Now)

	var (
		created domain.Proposal
		note    domain.Notification
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		author, err := actor(ctx, tx, in.AuthorID)
		if err != nil {
			return err
		}

		created, err = tx.Proposals().CreateProposal(ctx, domain.Proposal{
			Title:       title,
			Description: description,
			AuthorID:    author.ID,
			AuthorName:  author.Name,
			Tags:        tags,
			Status:      domain.StatusActive,
			CreatedAt:   at,
			Deadline:    at.Add(window),
		})
		if err != nil {
			return err
		}

		note, err = s.Notifications.Emit(ctx, tx, domain.NotificationNewProposal,
			fmt.Sprintf(`%s created a new proposal: "%s"`, author.Name, created.Title),
			domain.Link(created.ID),
		)
		return err
	})
	if err != nil {
		return domain.Proposal{}, err
	}

	s.Metrics.ProposalCreated()
	s.Notifications.Publish(ctx, note)
	log.Info("proposal created",
		slog.Int64("proposal_id", created.ID),
		slog.Int64("author_id", created.AuthorID),
		slog.Time("deadline", created.Deadline),
	)
	return created, nil
}

// SetStatus is an administrative override: it sets any status on any
// proposal, bypassing the normal lifecycle.
func (s *ProposalService) SetStatus(ctx context.Context, id int64, status domain.ProposalStatus) (domain.Proposal, error) {
	status, err := domain.ParseStatus(string(status))
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var out domain.Proposal
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Proposals().UpdateProposalStatus(ctx, id, status); err != nil {
			return mapNotFound(err)
		}
		p, err := tx.Proposals().GetProposalByID(ctx, id)
		if err != nil {
			return mapNotFound(err)
		}
		out = p
		return nil
	})
	if err != nil {
		return domain.Proposal{}, err
	}

	slogx.FromContext(ctx).Info("proposal status set",
		slog.Int64("proposal_id", id),
		slog.String("status", string(status)),
	)
	return out, nil
}

// Delete removes a proposal together with its votes and comments.
func (s *ProposalService) Delete(ctx context.Context, id int64) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return mapNotFound(tx.Proposals().DeleteProposal(ctx, id))
	})
	if err != nil {
		return err
	}

	s.Metrics.ProposalDeleted()
	slogx.FromContext(ctx).Info("proposal deleted", slog.Int64("proposal_id", id))
	return nil
}
