// internal/handlers/events.go
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wl-sites/offgrid-biz-flow/internal/realtime"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

type EventsHandler struct {
	publisher *realtime.Publisher
}

func NewEventsHandler(publisher *realtime.Publisher) *EventsHandler {
	return &EventsHandler{
		publisher: publisher,
	}
}

// Stream sends the caller's change feed as server-sent events. Each mutation
// published for the user becomes one "change" event; the connection stays open
// until the client disconnects or the subscription is torn down.
//
// GET /events
func (h *EventsHandler) Stream(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sub, err := h.publisher.Subscribe(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "REALTIME_DISABLED", err.Error(), nil)
		return
	}
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ch := sub.Channel()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("change", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
