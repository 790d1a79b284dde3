package domain

import (
	"fmt"
	"strings"
	"time"
)

type VoteOption string

const (
	VoteYes     VoteOption = "yes"
	VoteNo      VoteOption = "no"
	VoteAbstain VoteOption = "abstain"
)

func ParseVoteOption(s string) (VoteOption, error) {
	switch o := VoteOption(strings.ToLower(strings.TrimSpace(s))); o {
	case VoteYes, VoteNo, VoteAbstain:
		return o, nil
	default:
		return "", fmt.Errorf("unknown vote option %q", s)
	}
}

type Vote struct {
	ID         int64
	ProposalID int64
	VoterID    int64
	VoterName  string // snapshot at cast time
	Option     VoteOption
	CreatedAt  time.Time
}

type Tally struct {
	Yes     int
	No      int
	Abstain int
}

func (t Tally) Total() int { return t.Yes + t.No + t.Abstain }

// TallyVotes counts votes by option.
func TallyVotes(votes []Vote) Tally {
	var t Tally
	for _, v := range votes {
		switch v.Option {
		case VoteYes:
			t.Yes++
		case VoteNo:
			t.No++
		case VoteAbstain:
			t.Abstain++
		}
	}
	return t
}
