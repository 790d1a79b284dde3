package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type ProposalStatus string

const (
	StatusActive  ProposalStatus = "active"
	StatusClosed  ProposalStatus = "closed"
	StatusExpired ProposalStatus = "expired"
)

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (ProposalStatus, error) {
	switch st := ProposalStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusActive, StatusClosed, StatusExpired:
		return st, nil
	default:
		return "", fmt.Errorf("unknown proposal status %q", s)
	}
}

type Proposal struct {
	ID          int64
	Title       string
	Description string
	AuthorID    int64
	AuthorName  string
	Tags        []string
	Status      ProposalStatus
	CreatedAt   time.Time
	Deadline    time.Time
}

func (p Proposal) Clone() Proposal {
	p.Tags = slices.Clone(p.Tags)
	return p
}

func (p Proposal) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !slices.ContainsFunc(p.Tags, func(have string) bool { return strings.EqualFold(have, t) }) {
			return false
		}
	}
	return true
}

// Reconcile moves an Active proposal whose deadline has passed to Expired.
// It reports whether p changed; Closed and Expired proposals are left alone.
func Reconcile(p *Proposal, now time.Time) bool {
	if p.Status == StatusActive && p.Deadline.Before(now) {
		p.Status = StatusExpired
		return true
	}
	return false
}

// NormalizeTags trims each tag, drops empties and duplicates, and keeps the
// first occurrence order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SplitTags parses a comma separated tag field.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// ProposalWithAggregates is the list view of a proposal.
type ProposalWithAggregates struct {
	Proposal

	Votes        Tally
	CommentCount int
}

// ProposalWithDetails is the single proposal view.
type ProposalWithDetails struct {
	ProposalWithAggregates

	VoteList []Vote    // cast order
	Comments []Comment // newest first
}
