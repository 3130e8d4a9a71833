package formation

import "github.com/gin-gonic/gin"

// RegisterFormationRoutes mounts the public catalog routes.
func RegisterFormationRoutes(router *gin.RouterGroup, catalog *Catalog) {
	fc := NewFormationController(catalog)

	formations := router.Group("/formations")
	{
		formations.GET("", fc.ListFormations)
		formations.GET("/:odk/:name", fc.GetFormation)
	}
}
