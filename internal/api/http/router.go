package http

import (
	"flipboard/internal/api/ws"
	"flipboard/internal/config"
	"flipboard/internal/room"

	"github.com/gin-gonic/gin"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// WebSocket session gateway
	r.GET("/ws", hub.HandleWS)

	r.GET("/healthz", HealthHandler(rm, hub))
	r.GET("/rooms/:code", RoomHandler(rm))
	r.GET("/config", ConfigHandler(cfg))

	return r
}
