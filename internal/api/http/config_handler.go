package http

import (
	"net/http"

	"flipboard/internal/config"
	"flipboard/internal/game"

	"github.com/gin-gonic/gin"
)

// ConfigHandler exposes the round settings clients need to render a game.
func ConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		capacities := []int{}
		for n := 2; n <= game.BoardCells; n++ {
			if game.ValidCapacity(n) {
				capacities = append(capacities, n)
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"boardCells":   game.BoardCells,
			"roundSeconds": int(cfg.RoundDuration.Seconds()),
			"capacities":   capacities,
		})
	}
}
