package ballotsdk

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`

	// Details maps request fields to what was wrong with them. Only set for
	// validation_failed.
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// Session
// ============================================================================

type SessionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type SessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// ============================================================================
// Users
// ============================================================================

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
	Followers []int64   `json:"followers"`
	Following []int64   `json:"following"`
}

type UserWithStats struct {
	User

	ProposalsCreated int `json:"proposals_created"`
	VotesCast        int `json:"votes_cast"`
	FollowerCount    int `json:"follower_count"`
}

type LeaderboardEntry struct {
	UserWithStats

	CommunityScore int `json:"community_score"`
}

// ============================================================================
// Proposals
// ============================================================================

type Tally struct {
	Yes     int `json:"yes"`
	No      int `json:"no"`
	Abstain int `json:"abstain"`
}

type Proposal struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Deadline    time.Time `json:"deadline"`
}

// ProposalSummary is a list entry: the proposal plus its tally and comment count.
type ProposalSummary struct {
	Proposal

	Votes        Tally `json:"votes"`
	CommentCount int   `json:"comment_count"`
}

// ProposalDetails adds every vote (cast order) and every comment (newest first).
type ProposalDetails struct {
	ProposalSummary

	VoteList []Vote    `json:"vote_list"`
	Comments []Comment `json:"comments"`
}

type Vote struct {
	ID         int64     `json:"id"`
	ProposalID int64     `json:"proposal_id"`
	VoterID    int64     `json:"voter_id"`
	VoterName  string    `json:"voter_name"`
	Option     string    `json:"option"`
	CreatedAt  time.Time `json:"created_at"`
}

type Comment struct {
	ID         int64     `json:"id"`
	ProposalID int64     `json:"proposal_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateProposalRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=10000"`
	Tags        []string `json:"tags,omitempty" validate:"max=20,dive,max=50"`
}

type CastVoteRequest struct {
	Option string `json:"option" validate:"required,max=16"`
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListProposalsParams filters GET /v1/proposals. Zero values mean no filter.
type ListProposalsParams struct {
	Status string
	Tags   []string
	Search string
	Sort   string // "newest" (default) or "ending_soon"
}

// ============================================================================
// Notifications
// ============================================================================

type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	LinkID    *int64    `json:"link_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
