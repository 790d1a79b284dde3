package http

import (
	"net/http"

	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/pkg/httpx"
)

type UserHandler struct {
	Users       *service.UserService
	Leaderboard *service.LeaderboardService
}

// Get godoc
//
//	@Summary	Get a user profile
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	ballotsdk.UserWithStats
//	@Failure	404	{object}	ballotsdk.ErrorResponse
//	@Router		/v1/users/{id} [get].
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := h.Users.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserWithStats(u))
}

// Follow godoc
//
//	@Summary		Follow a user
//	@Description	Following someone you already follow is a no-op.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	int	true	"User to follow"
//	@Success		204
//	@Failure		400	{object}	ballotsdk.ErrorResponse	"Following yourself"
//	@Failure		401	{object}	ballotsdk.ErrorResponse
//	@Failure		404	{object}	ballotsdk.ErrorResponse
//	@Router			/v1/users/{id}/follow [put].
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Users.Follow(r.Context(), httpx.UserID(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unfollow godoc
//
//	@Summary	Unfollow a user
//	@Tags		Users
//	@Security	BearerAuth
//	@Param		id	path	int	true	"User to unfollow"
//	@Success	204
//	@Failure	400	{object}	ballotsdk.ErrorResponse
//	@Failure	401	{object}	ballotsdk.ErrorResponse
//	@Failure	404	{object}	ballotsdk.ErrorResponse
//	@Router		/v1/users/{id}/follow [delete].
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Users.Unfollow(r.Context(), httpx.UserID(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLeaderboard godoc
//
//	@Summary		Community leaderboard
//	@Description	Every user ranked by community score, ties in registration order.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}	ballotsdk.LeaderboardEntry
//	@Router			/v1/leaderboard [get].
func (h *UserHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Leaderboard.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLeaderboard(entries))
}
