package ballotsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient talks to a ballot server. It serves the anonymous reads and hands
// out Sessions for everything else.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges a display name (case-insensitive) for a session.
func (c *SDKClient) Login(ctx context.Context, name string) (*Session, error) {
	resp, err := call[SessionResponse](ctx, c, http.MethodPost, "/v1/session", "", SessionRequest{Name: name}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, resp), nil
}

// NewSessionFromToken wraps an access token obtained elsewhere.
func (c *SDKClient) NewSessionFromToken(accessToken string, user User) *Session {
	return &Session{client: c, token: accessToken, user: user}
}

func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return call[HealthResponse](ctx, c, http.MethodGet, "/livez", "", nil, http.StatusOK)
}

func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return call[HealthResponse](ctx, c, http.MethodGet, "/readyz", "", nil, http.StatusOK)
}

// ListProposals returns proposals with their tallies, filtered by params.
func (c *SDKClient) ListProposals(ctx context.Context, params ListProposalsParams) ([]ProposalSummary, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	for _, t := range params.Tags {
		q.Add("tag", t)
	}
	if params.Search != "" {
		q.Set("q", params.Search)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}

	path := "/v1/proposals"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	out, err := call[[]ProposalSummary](ctx, c, http.MethodGet, path, "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *SDKClient) GetProposal(ctx context.Context, id int64) (*ProposalDetails, error) {
	return call[ProposalDetails](ctx, c, http.MethodGet, fmt.Sprintf("/v1/proposals/%d", id), "", nil, http.StatusOK)
}

func (c *SDKClient) GetUser(ctx context.Context, id int64) (*UserWithStats, error) {
	return call[UserWithStats](ctx, c, http.MethodGet, fmt.Sprintf("/v1/users/%d", id), "", nil, http.StatusOK)
}

// GetLeaderboard returns every user ranked by community score.
func (c *SDKClient) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	out, err := call[[]LeaderboardEntry](ctx, c, http.MethodGet, "/v1/leaderboard", "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
