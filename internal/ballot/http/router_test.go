package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ballothttp "github.com/aussiebroadwan/ballot/internal/ballot/http"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/notify"
	"github.com/aussiebroadwan/ballot/internal/ballot/seed"
	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/internal/ballot/store/drivers/memory"
	"github.com/aussiebroadwan/ballot/pkg/ballotsdk"
	"github.com/aussiebroadwan/ballot/pkg/jwtx"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const issuer = "https://ballot.test"

// Seeded ids, in fixture order.
const (
	hariID   int64 = 1
	arunID   int64 = 2
	rajeshID int64 = 4
	anjaliID int64 = 7

	gardenID    int64 = 1
	muralID     int64 = 2
	recyclingID int64 = 3
)

type testServer struct {
	client  *ballotsdk.SDKClient
	url     string
	metrics *metrics.Metrics
}

// newServer serves the seeded community on an httptest server. configure, if
// set, runs before routes are applied.
func newServer(t *testing.T, configure func(*ballothttp.Router)) *testServer {
	t.Helper()
	ctx := context.Background()

	st := memory.NewStore()
	t.Cleanup(func() { _ = st.Close() })

	fx, err := seed.Default()
	require.NoError(t, err)
	_, err = seed.Apply(ctx, st, fx, time.Now().UTC())
	require.NoError(t, err)

	km, err := jwtx.NewEphemeralKeyManager(issuer)
	require.NoError(t, err)

	m := metrics.New()
	notes := &service.NotificationService{Store: st, Publisher: notify.Noop{}, Metrics: m}

	r := ballothttp.NewRouter(km, issuer, "test", st, m, slogx.Discard())
	r.ProposalService = &service.ProposalService{Store: st, Notifications: notes, Metrics: m}
	r.VoteService = &service.VoteService{Store: st, Notifications: notes, Metrics: m}
	r.CommentService = &service.CommentService{Store: st, Metrics: m}
	r.UserService = &service.UserService{Store: st, Notifications: notes}
	r.LeaderboardService = &service.LeaderboardService{Store: st}
	r.NotificationService = notes
	if configure != nil {
		configure(r)
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{client: ballotsdk.NewSDKClient(srv.URL), url: srv.URL, metrics: m}
}

func (s *testServer) login(t *testing.T, name string) *ballotsdk.Session {
	t.Helper()
	sess, err := s.client.Login(context.Background(), name)
	require.NoError(t, err)
	return sess
}

func requireAPIError(t *testing.T, err error, want *ballotsdk.APIError) {
	t.Helper()
	require.ErrorIs(t, err, want)
	var apiErr *ballotsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, want.StatusCode, apiErr.StatusCode)
}

func TestHealth(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()

	live, err := s.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, &ballotsdk.HealthChecks{Database: "ok", Signer: "ok"}, ready.Checks)
}

func TestSession(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()

	t.Run("name is case-insensitive", func(t *testing.T) {
		sess := s.login(t, "  hari g ")
		require.Equal(t, hariID, sess.User().ID)
		require.Equal(t, "Hari G", sess.User().Name)
		require.Equal(t, []int64{arunID, 3}, sess.User().Following)
		require.NotEmpty(t, sess.AccessToken())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := s.client.Login(ctx, "nobody")
		requireAPIError(t, err, ballotsdk.ErrUnauthenticated)
	})

	t.Run("missing name reports the field", func(t *testing.T) {
		_, err := s.client.Login(ctx, "")
		requireAPIError(t, err, ballotsdk.ErrValidationFailed)
		var apiErr *ballotsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Contains(t, apiErr.Details, "name")
	})

	t.Run("forged token", func(t *testing.T) {
		fake := s.client.NewSessionFromToken("not.a.jwt", ballotsdk.User{})
		_, err := fake.ListNotifications(ctx)
		requireAPIError(t, err, ballotsdk.ErrUnauthenticated)
	})
}

func TestWritesRequireLogin(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/v1/proposals/1/votes", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
}

func TestVoting(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()
	hari := s.login(t, "Hari G")

	v, err := hari.CastVote(ctx, gardenID, "Yes")
	require.NoError(t, err)
	require.Equal(t, "yes", v.Option)
	require.Equal(t, hariID, v.VoterID)
	require.Equal(t, "Hari G", v.VoterName)

	_, err = hari.CastVote(ctx, gardenID, "no")
	requireAPIError(t, err, ballotsdk.ErrAlreadyVoted)

	anjali := s.login(t, "Anjali Mehta")
	_, err = anjali.CastVote(ctx, recyclingID, "yes")
	requireAPIError(t, err, ballotsdk.ErrVotingClosed)

	_, err = anjali.CastVote(ctx, gardenID, "maybe")
	requireAPIError(t, err, ballotsdk.ErrValidationFailed)

	_, err = anjali.CastVote(ctx, 999, "yes")
	requireAPIError(t, err, ballotsdk.ErrNotFound)

	p, err := s.client.GetProposal(ctx, gardenID)
	require.NoError(t, err)
	require.Equal(t, ballotsdk.Tally{Yes: 3, No: 1}, p.Votes)
	require.Len(t, p.VoteList, 4)
	require.Equal(t, hariID, p.VoteList[3].VoterID)
}

func TestCreateAndListProposals(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()
	anjali := s.login(t, "Anjali Mehta")

	created, err := anjali.CreateProposal(ctx, ballotsdk.CreateProposalRequest{
		Title:       "  Night <b>market</b> ",
		Description: "Monthly stalls in the town square.",
		Tags:        []string{"community", " food ", "community"},
	})
	require.NoError(t, err)
	require.Equal(t, "Night market", created.Title)
	require.Equal(t, []string{"community", "food"}, created.Tags)
	require.Equal(t, "active", created.Status)
	require.Equal(t, anjaliID, created.AuthorID)
	require.WithinDuration(t, created.CreatedAt.Add(service.DefaultVotingWindow), created.Deadline, time.Second)

	all, err := s.client.ListProposals(ctx, ballotsdk.ListProposalsParams{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, created.ID, all[0].ID)

	community, err := s.client.ListProposals(ctx, ballotsdk.ListProposalsParams{Tags: []string{"community", "parks"}})
	require.NoError(t, err)
	require.Len(t, community, 1)
	require.Equal(t, gardenID, community[0].ID)
	require.Equal(t, 2, community[0].CommentCount)

	closed, err := s.client.ListProposals(ctx, ballotsdk.ListProposalsParams{Status: "closed"})
	require.NoError(t, err)
	require.Len(t, closed, 1)
	require.Equal(t, recyclingID, closed[0].ID)

	found, err := s.client.ListProposals(ctx, ballotsdk.ListProposalsParams{Search: "LIBRARY"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, muralID, found[0].ID)

	soon, err := s.client.ListProposals(ctx, ballotsdk.ListProposalsParams{Sort: "ending_soon"})
	require.NoError(t, err)
	require.Equal(t, gardenID, soon[0].ID)

	_, err = s.client.ListProposals(ctx, ballotsdk.ListProposalsParams{Sort: "oldest"})
	requireAPIError(t, err, ballotsdk.ErrValidationFailed)

	_, err = anjali.CreateProposal(ctx, ballotsdk.CreateProposalRequest{Title: "no description"})
	requireAPIError(t, err, ballotsdk.ErrValidationFailed)
}

func TestComments(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()
	arun := s.login(t, "arun kumar")

	c, err := arun.AddComment(ctx, recyclingID, "Still worth revisiting.")
	require.NoError(t, err)
	require.Equal(t, arunID, c.AuthorID)

	p, err := s.client.GetProposal(ctx, recyclingID)
	require.NoError(t, err)
	require.Len(t, p.Comments, 2)
	require.Equal(t, c.ID, p.Comments[0].ID)

	_, err = arun.AddComment(ctx, recyclingID, "   ")
	requireAPIError(t, err, ballotsdk.ErrValidationFailed)
}

func TestAdminRoutes(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()

	hari := s.login(t, "Hari G")
	_, err := hari.SetProposalStatus(ctx, gardenID, "closed")
	requireAPIError(t, err, ballotsdk.ErrForbidden)
	requireAPIError(t, hari.DeleteProposal(ctx, muralID), ballotsdk.ErrForbidden)

	admin := s.login(t, "ADMIN")
	p, err := admin.SetProposalStatus(ctx, gardenID, "closed")
	require.NoError(t, err)
	require.Equal(t, "closed", p.Status)

	_, err = admin.SetProposalStatus(ctx, gardenID, "archived")
	requireAPIError(t, err, ballotsdk.ErrValidationFailed)

	require.NoError(t, admin.DeleteProposal(ctx, muralID))
	_, err = s.client.GetProposal(ctx, muralID)
	requireAPIError(t, err, ballotsdk.ErrNotFound)
	requireAPIError(t, admin.DeleteProposal(ctx, muralID), ballotsdk.ErrNotFound)

	hariProfile, err := s.client.GetUser(ctx, hariID)
	require.NoError(t, err)
	require.Equal(t, 1, hariProfile.ProposalsCreated)
	require.Equal(t, 1, hariProfile.VotesCast)
}

func TestFollowAndNotifications(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()
	anjali := s.login(t, "Anjali Mehta")

	require.NoError(t, anjali.Follow(ctx, hariID))
	require.NoError(t, anjali.Follow(ctx, hariID))

	hari, err := s.client.GetUser(ctx, hariID)
	require.NoError(t, err)
	require.Equal(t, []int64{arunID, rajeshID, anjaliID}, hari.Followers)
	require.Equal(t, 3, hari.FollowerCount)

	requireAPIError(t, anjali.Follow(ctx, anjaliID), ballotsdk.ErrValidationFailed)
	requireAPIError(t, anjali.Follow(ctx, 999), ballotsdk.ErrNotFound)

	feed, err := anjali.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	require.Equal(t, "new_follower", feed[0].Type)
	require.Equal(t, "Anjali Mehta started following you.", feed[0].Message)
	require.False(t, feed[0].Read)
	require.Nil(t, feed[0].LinkID)

	require.NoError(t, anjali.MarkNotificationRead(ctx, feed[0].ID))
	require.NoError(t, anjali.MarkNotificationRead(ctx, 999))

	feed, err = anjali.ListNotifications(ctx)
	require.NoError(t, err)
	require.True(t, feed[0].Read)

	require.NoError(t, anjali.Unfollow(ctx, hariID))
	require.NoError(t, anjali.Unfollow(ctx, hariID))
	hari, err = s.client.GetUser(ctx, hariID)
	require.NoError(t, err)
	require.Equal(t, 2, hari.FollowerCount)
}

func TestLeaderboard(t *testing.T) {
	s := newServer(t, nil)

	board, err := s.client.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 8)
	require.Equal(t, hariID, board[0].ID)
	require.Equal(t, 11, board[0].CommunityScore)
	for i := 1; i < len(board); i++ {
		require.LessOrEqual(t, board[i].CommunityScore, board[i-1].CommunityScore)
	}
}

func TestBadPathID(t *testing.T) {
	s := newServer(t, nil)

	_, err := s.client.GetUser(context.Background(), -3)
	requireAPIError(t, err, ballotsdk.ErrNotFound)

	resp, err := http.Get(s.url + "/v1/proposals/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newServer(t, func(r *ballothttp.Router) {
		r.RateLimits.Strict.Burst = 2
		r.RateLimits.Strict.RequestsPerWindow = 1
		r.RateLimits.Strict.Window = time.Hour
	})
	ctx := context.Background()

	for range 2 {
		_, err := s.client.Login(ctx, "Hari G")
		require.NoError(t, err)
	}
	_, err := s.client.Login(ctx, "Hari G")
	requireAPIError(t, err, ballotsdk.ErrRateLimited)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()

	_, err := s.client.ListProposals(ctx, ballotsdk.ListProposalsParams{})
	require.NoError(t, err)
	_, err = s.login(t, "Hari G").CastVote(ctx, gardenID, "abstain")
	require.NoError(t, err)

	resp, err := http.Get(s.url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Contains(t, string(body), `ballot_http_requests_total{method="GET",route="GET /v1/proposals",status="200"} 1`)
	require.Contains(t, string(body), `ballot_votes_cast_total{option="abstain"} 1`)
}

func TestSwaggerIsServed(t *testing.T) {
	s := newServer(t, nil)

	resp, err := http.Get(s.url + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `"/v1/proposals/{id}/votes"`)
}
