package session

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/gridiron/config"
)

// EditorRoutes sets up editor session routes on an authenticated group.
func EditorRoutes(router *gin.RouterGroup, store *Store, catalog Catalog, plays PlayStore, appConfig *config.Config) {
	editorController := NewEditorController(store, catalog, plays, appConfig)

	sessions := router.Group("/editor/sessions")
	{
		sessions.POST("", editorController.CreateSession)
		sessions.GET("/:session_id", editorController.GetSession)
		sessions.DELETE("/:session_id", editorController.DeleteSession)

		sessions.POST("/:session_id/formation", editorController.LoadFormation)
		sessions.PUT("/:session_id/play-type", editorController.SetPlayType)

		sessions.POST("/:session_id/routes", editorController.BeginRoute)
		sessions.POST("/:session_id/routes/points", editorController.AddRoutePoint)
		sessions.POST("/:session_id/routes/finish", editorController.FinishRoute)
		sessions.POST("/:session_id/routes/confirm", editorController.ConfirmAssignment)
		sessions.POST("/:session_id/routes/cancel", editorController.CancelRoute)
		sessions.DELETE("/:session_id/routes/:route_id", editorController.DeleteRoute)

		sessions.PUT("/:session_id/tokens/:token_id", editorController.MoveToken)
		sessions.GET("/:session_id/assignments", editorController.AssignmentOptions)
		sessions.POST("/:session_id/save", editorController.SavePlay)
	}
}
