package http

import (
	"net/http"

	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/pkg/ballotsdk"
	"github.com/aussiebroadwan/ballot/pkg/httpx"
)

type NotificationHandler struct {
	Notifications *service.NotificationService
}

// List godoc
//
//	@Summary	Notification feed
//	@Tags		Notifications
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		ballotsdk.Notification
//	@Failure	401	{object}	ballotsdk.ErrorResponse
//	@Router		/v1/notifications [get].
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Notifications.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]ballotsdk.Notification, len(list))
	for i, n := range list {
		out[i] = toNotification(n)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// MarkRead godoc
//
//	@Summary		Mark a notification read
//	@Description	Unknown ids are accepted and ignored.
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Notification ID"
//	@Success		204
//	@Failure		401	{object}	ballotsdk.ErrorResponse
//	@Router			/v1/notifications/{id}/read [post].
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Notifications.MarkRead(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
