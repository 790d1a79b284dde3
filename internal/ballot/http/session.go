package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/pkg/ballotsdk"
	"github.com/aussiebroadwan/ballot/pkg/httpx"
	"github.com/aussiebroadwan/ballot/pkg/jwtx"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
	"github.com/google/uuid"
)

type SessionHandler struct {
	UserService *service.UserService
	Signer      jwtx.Signer
	Issuer      string
	TTL         time.Duration
	Now         func() time.Time
}

// ServeHTTP logs a user in by display name.
//
//	@Summary		Log in
//	@Description	Looks the user up by display name (case-insensitive) and issues a bearer token.
//	@Description	Admins receive the proposals:admin scope.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ballotsdk.SessionRequest	true	"Display name"
//	@Success		200		{object}	ballotsdk.SessionResponse
//	@Failure		400		{object}	ballotsdk.ErrorResponse	"Missing name"
//	@Failure		401		{object}	ballotsdk.ErrorResponse	"No user with that name"
//	@Failure		429		{object}	ballotsdk.ErrorResponse
//	@Router			/v1/session [post].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ballotsdk.SessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.FindByName(ctx, req.Name)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, ballotsdk.ErrorCodeUnauthenticated, "no user with that name")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	ttl := h.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	token, err := h.Signer.Sign(jwtx.NewSessionClaims(jwtx.SessionParams{
		UserID:    u.ID,
		SessionID: uuid.NewString(),
		Name:      u.Name,
		Role:      string(u.Role),
		Scopes:    u.Role.Scopes(),
		Issuer:    h.Issuer,
		TTL:       ttl,
		Now:       now,
	}))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("session issued", "user_id", u.ID)
	httpx.WriteJSON(w, http.StatusOK, ballotsdk.SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        toUser(u),
	})
}
