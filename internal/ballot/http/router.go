package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/httpx"
	"github.com/aussiebroadwan/ballot/pkg/jwtx"
	"github.com/aussiebroadwan/ballot/pkg/slogx"

	_ "github.com/aussiebroadwan/ballot/api/ballot" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	signer       jwtx.Signer
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	SessionTTL time.Duration
	RateLimits httpx.RateLimits
	Metrics    *metrics.Metrics

	ProposalService     *service.ProposalService
	VoteService         *service.VoteService
	CommentService      *service.CommentService
	UserService         *service.UserService
	LeaderboardService  *service.LeaderboardService
	NotificationService *service.NotificationService
}

func NewRouter(
	km *jwtx.KeyManager,
	issuer, buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         km.KeySet,
		signer:       km.Signer,
		verifier:     km.Verifier,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		SessionTTL:   jwtx.DefaultSessionTTL,
		RateLimits:   httpx.DefaultRateLimits(),
		Metrics:      m,
	}

	// The metrics middleware sits innermost so it sees the matched pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		m.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerProposals()
	r.registerUsers()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Ballot API
//	@version					0.1.0
//	@description				Community proposals, voting and discussion.
//	@description
//	@description				Writes need a bearer token from POST /v1/session. Reads are public.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/ballot
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				EdDSA signed JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSession() {
	h := &SessionHandler{
		UserService: r.UserService,
		Signer:      r.signer,
		Issuer:      r.issuer,
		TTL:         r.SessionTTL,
	}

	// Login is name only, so keep it on the strict profile.
	r.Mux.Handle("POST /v1/session",
		httpx.Chain(h, httpx.RateLimitByIP(r.RateLimits.Strict)),
	)
}

func (r *Router) registerProposals() {
	h := &ProposalHandler{
		Proposals: r.ProposalService,
		Votes:     r.VoteService,
		Comments:  r.CommentService,
	}
	authn := httpx.AuthnMiddleware(r.verifier)
	admin := httpx.RequireAnyScope(domain.ScopeProposalsAdmin)

	r.Mux.Handle("GET /v1/proposals",
		httpx.Chain(http.HandlerFunc(h.List), httpx.RateLimitByIP(r.RateLimits.Public)),
	)
	r.Mux.Handle("GET /v1/proposals/{id}",
		httpx.Chain(http.HandlerFunc(h.Get), httpx.RateLimitByIP(r.RateLimits.Public)),
	)

	r.Mux.Handle("POST /v1/proposals",
		httpx.Chain(http.HandlerFunc(h.Create), authn, httpx.RateLimitByUser(r.RateLimits.Moderate)),
	)
	r.Mux.Handle("POST /v1/proposals/{id}/votes",
		httpx.Chain(http.HandlerFunc(h.CastVote), authn, httpx.RateLimitByUser(r.RateLimits.Moderate)),
	)
	r.Mux.Handle("POST /v1/proposals/{id}/comments",
		httpx.Chain(http.HandlerFunc(h.AddComment), authn, httpx.RateLimitByUser(r.RateLimits.Moderate)),
	)

	r.Mux.Handle("PUT /v1/proposals/{id}/status",
		httpx.Chain(http.HandlerFunc(h.SetStatus), authn, admin, httpx.RateLimitByUser(r.RateLimits.Moderate)),
	)
	r.Mux.Handle("DELETE /v1/proposals/{id}",
		httpx.Chain(http.HandlerFunc(h.Delete), authn, admin, httpx.RateLimitByUser(r.RateLimits.Moderate)),
	)
}

func (r *Router) registerUsers() {
	h := &UserHandler{
		Users:       r.UserService,
		Leaderboard: r.LeaderboardService,
	}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("GET /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.Get), httpx.RateLimitByIP(r.RateLimits.Public)),
	)
	r.Mux.Handle("PUT /v1/users/{id}/follow",
		httpx.Chain(http.HandlerFunc(h.Follow), authn, httpx.RateLimitByUser(r.RateLimits.Moderate)),
	)
	r.Mux.Handle("DELETE /v1/users/{id}/follow",
		httpx.Chain(http.HandlerFunc(h.Unfollow), authn, httpx.RateLimitByUser(r.RateLimits.Moderate)),
	)
	r.Mux.Handle("GET /v1/leaderboard",
		httpx.Chain(http.HandlerFunc(h.GetLeaderboard), httpx.RateLimitByIP(r.RateLimits.Public)),
	)
}

func (r *Router) registerNotifications() {
	h := &NotificationHandler{Notifications: r.NotificationService}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("GET /v1/notifications",
		httpx.Chain(http.HandlerFunc(h.List), authn, httpx.RateLimitByUser(r.RateLimits.Public)),
	)
	r.Mux.Handle("POST /v1/notifications/{id}/read",
		httpx.Chain(http.HandlerFunc(h.MarkRead), authn, httpx.RateLimitByUser(r.RateLimits.Moderate)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), httpx.RateLimitByIP(r.RateLimits.Public)),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys), httpx.RateLimitByIP(r.RateLimits.Public)),
	)
	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	}
}
