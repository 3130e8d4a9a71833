package film

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/gridiron/config"
)

// FilmRoutes sets up game film routes on an authenticated group.
func FilmRoutes(router *gin.RouterGroup, repo FilmRepository, members MembershipChecker, plays PlayReader, appConfig *config.Config) {
	filmController := NewFilmController(repo, members, plays, appConfig)

	router.POST("/games", filmController.CreateGame)
	router.GET("/games", filmController.GetGames)
	router.GET("/games/:game_id", filmController.GetGameByID)
	router.POST("/games/:game_id/tags", filmController.CreateTag)
	router.GET("/games/:game_id/tags", filmController.GetGameTags)
	router.GET("/plays/:play_id/tags", filmController.GetPlayTags)
}
