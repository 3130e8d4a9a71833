package team

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/gridiron/config"
)

// TeamRoutes sets up all team-related routes. The group is expected to be
// behind the auth middleware.
func TeamRoutes(router *gin.RouterGroup, repo TeamRepository, appConfig *config.Config) {
	teamController := NewTeamController(repo, appConfig)

	router.POST("/teams", teamController.CreateTeam)
	router.GET("/teams/:team_id", teamController.GetTeamByID)
	router.GET("/users/me/teams", teamController.GetMyTeams)

	// Authorization for these actions is handled within the controller methods
	router.POST("/teams/:team_id/members", teamController.AddTeamMember)
	router.DELETE("/teams/:team_id/members/:user_id", teamController.RemoveTeamMember)
}
