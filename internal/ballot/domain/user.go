package domain

import (
	"slices"
	"time"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// ScopeProposalsAdmin is granted to admins and guards status changes and deletes.
const ScopeProposalsAdmin = "proposals:admin"

// Scopes returns the token scopes a role is entitled to.
func (r Role) Scopes() []string {
	if r == RoleAdmin {
		return []string{ScopeProposalsAdmin}
	}
	return nil
}

type User struct {
	ID       int64
	Name     string
	Role     Role
	JoinedAt time.Time

	// A is in B.Followers exactly when B is in A.Following.
	Followers []int64
	Following []int64
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u User) IsFollowing(id int64) bool { return slices.Contains(u.Following, id) }

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	u.Followers = slices.Clone(u.Followers)
	u.Following = slices.Clone(u.Following)
	return u
}

// UserWithStats is the profile view of a user.
type UserWithStats struct {
	User

	ProposalsCreated int
	VotesCast        int
	FollowerCount    int
}

type LeaderboardEntry struct {
	UserWithStats

	CommunityScore int
}
