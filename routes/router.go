package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/gridiron/config"
	"github.com/DhavalSuthar-24/gridiron/internal/film"
	"github.com/DhavalSuthar-24/gridiron/internal/formation"
	"github.com/DhavalSuthar-24/gridiron/internal/middleware"
	"github.com/DhavalSuthar-24/gridiron/internal/playbook"
	"github.com/DhavalSuthar-24/gridiron/internal/session"
	"github.com/DhavalSuthar-24/gridiron/internal/team"
	"github.com/DhavalSuthar-24/gridiron/pkg/token"
)

// SetupRoutes builds the engine. The team repository doubles as the
// membership check for plays and film.
func SetupRoutes(cfg *config.Config, db *gorm.DB, catalog *formation.Catalog, store *session.Store) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	teamRepo := team.NewTeamRepository(db)
	playService := playbook.NewService(playbook.NewPlayRepository(db), teamRepo)
	filmRepo := film.NewFilmRepository(db)
	verifier := token.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	// API routes
	api := r.Group("/api")
	formation.RegisterFormationRoutes(api, catalog)

	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(verifier))
	team.TeamRoutes(authGroup, teamRepo, cfg)
	playbook.PlayRoutes(authGroup, playService, cfg)
	session.EditorRoutes(authGroup, store, catalog, playService, cfg)
	film.FilmRoutes(authGroup, filmRepo, teamRepo, playService, cfg)

	return r
}
