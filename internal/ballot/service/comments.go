package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
)

// MaxCommentLength bounds comment content after sanitizing, in bytes.
const MaxCommentLength = 4000

type CommentService struct {
	Store   store.Store
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Add posts a comment. Markup is stripped; content that is empty afterwards
// is rejected. Comments are allowed on proposals in any status.
func (s *CommentService) Add(ctx context.Context, proposalID, authorID int64, content string) (domain.Comment, error) {
	content = cleanText(content)
	if content == "" {
		return domain.Comment{}, fmt.Errorf("%w: comment is empty", ErrValidation)
	}
	if len(content) > MaxCommentLength {
		return domain.Comment{}, fmt.Errorf("%w: comment exceeds %d bytes", ErrValidation, MaxCommentLength)
	}
	at := now(s.Now)

	var out domain.Comment
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		author, err := actor(ctx, tx, authorID)
		if err != nil {
			return err
		}
		out, err = tx.Comments().CreateComment(ctx, domain.Comment{
			ProposalID: proposalID,
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Content:    content,
			CreatedAt:  at,
		})
		return mapNotFound(err)
	})
	if err != nil {
		return domain.Comment{}, err
	}

	s.Metrics.CommentAdded()
	slogx.FromContext(ctx).Info("comment added",
		slog.Int64("comment_id", out.ID),
		slog.Int64("proposal_id", out.ProposalID),
		slog.Int64("author_id", out.AuthorID),
	)
	return out, nil
}
