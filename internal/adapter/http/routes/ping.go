package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", ping)
}

// ping answers liveness checks.
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200
//	@Router		/ping [get]
func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
