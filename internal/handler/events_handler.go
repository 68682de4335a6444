package handler

import (
	"encoding/json"
	"io"
	"time"

	"gamebase/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

// keepAliveInterval spaces comment lines that keep idle proxies from closing
// the stream.
var keepAliveInterval = 25 * time.Second

// StreamInvitationEvents godoc
// @Summary      Follow an invitation's roster
// @Description  Server-sent events stream of roster changes (player_joined, player_left, player_removed, invitation_updated, invitation_deleted). The stream ends after invitation_deleted.
// @Tags         invitations
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id path int true "Invitation ID"
// @Success      200 {string} string "event stream"
// @Failure      404 {object} ErrorResponse
// @Router       /invitations/{id}/events [get]
func StreamInvitationEvents(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, err := rosterService().Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(id, client)
	defer hub.GlobalHub.Unsubscribe(id, client)

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("roster", string(msg))
			return !isDeleted(msg)
		case <-ticker.C:
			_, err := io.WriteString(w, ": keep-alive\n\n")
			return err == nil
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// isDeleted reports whether msg is the last event an invitation publishes.
func isDeleted(msg []byte) bool {
	var event struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(msg, &event) == nil && event.Type == hub.EventInvitationDeleted
}
