package ballotsdk

import (
	"context"
	"fmt"
	"net/http"
)

// Session acts as one logged in user. Tokens are not refreshed; log in again
// once ExpiresIn has passed.
type Session struct {
	client *SDKClient
	token  string
	user   User
}

func newSession(c *SDKClient, resp *SessionResponse) *Session {
	return &Session{client: c, token: resp.AccessToken, user: resp.User}
}

// User is the user as of login.
func (s *Session) User() User { return s.user }

// AccessToken returns the bearer token.
func (s *Session) AccessToken() string { return s.token }

func (s *Session) CreateProposal(ctx context.Context, req CreateProposalRequest) (*Proposal, error) {
	return call[Proposal](ctx, s.client, http.MethodPost, "/v1/proposals", s.token, req, http.StatusCreated)
}

// CastVote votes yes, no or abstain.
func (s *Session) CastVote(ctx context.Context, proposalID int64, option string) (*Vote, error) {
	return call[Vote](ctx, s.client, http.MethodPost, fmt.Sprintf("/v1/proposals/%d/votes", proposalID),
		s.token, CastVoteRequest{Option: option}, http.StatusCreated)
}

func (s *Session) AddComment(ctx context.Context, proposalID int64, content string) (*Comment, error) {
	return call[Comment](ctx, s.client, http.MethodPost, fmt.Sprintf("/v1/proposals/%d/comments", proposalID),
		s.token, AddCommentRequest{Content: content}, http.StatusCreated)
}

// SetProposalStatus requires the proposals:admin scope.
func (s *Session) SetProposalStatus(ctx context.Context, proposalID int64, status string) (*Proposal, error) {
	return call[Proposal](ctx, s.client, http.MethodPut, fmt.Sprintf("/v1/proposals/%d/status", proposalID),
		s.token, SetStatusRequest{Status: status}, http.StatusOK)
}

// DeleteProposal requires the proposals:admin scope.
func (s *Session) DeleteProposal(ctx context.Context, proposalID int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/v1/proposals/%d", proposalID), s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) Follow(ctx context.Context, userID int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/v1/users/%d/follow", userID), s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) Unfollow(ctx context.Context, userID int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/v1/users/%d/follow", userID), s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ListNotifications returns the feed, newest first.
func (s *Session) ListNotifications(ctx context.Context) ([]Notification, error) {
	out, err := call[[]Notification](ctx, s.client, http.MethodGet, "/v1/notifications", s.token, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *Session) MarkNotificationRead(ctx context.Context, id int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/notifications/%d/read", id), s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
