package http

import (
	"net/http"
	"strings"

	"flipboard/internal/api/ws"
	"flipboard/internal/room"

	"github.com/gin-gonic/gin"
)

func HealthHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":          true,
			"connections": hub.Connections(),
			"rooms":       rm.Count(),
		})
	}
}

// RoomHandler returns a snapshot of one live room.
func RoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
		rx, ok := rm.Get(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": room.ErrRoomNotFound.Message})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": rx.Snapshot()})
	}
}
