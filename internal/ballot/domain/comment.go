package domain

import "time"

type Comment struct {
	ID         int64
	ProposalID int64
	AuthorID   int64
	AuthorName string // snapshot at post time
	Content    string
	CreatedAt  time.Time
}
