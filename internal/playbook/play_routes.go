package playbook

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/gridiron/config"
)

// PlayRoutes sets up playbook routes on an authenticated group.
func PlayRoutes(router *gin.RouterGroup, service *Service, appConfig *config.Config) {
	playController := NewPlayController(service, appConfig)

	router.GET("/plays", playController.ListPlays)
	router.GET("/plays/next-code", playController.NextCode)
	router.GET("/plays/:play_id", playController.GetPlay)
	router.PUT("/plays/:play_id/archive", playController.ArchivePlay)
}
