package main

import (
	"log"

	"github.com/DhavalSuthar-24/gridiron/config"
	_ "github.com/DhavalSuthar-24/gridiron/docs"
	"github.com/DhavalSuthar-24/gridiron/internal/film"
	"github.com/DhavalSuthar-24/gridiron/internal/formation"
	"github.com/DhavalSuthar-24/gridiron/internal/playbook"
	"github.com/DhavalSuthar-24/gridiron/internal/session"
	"github.com/DhavalSuthar-24/gridiron/internal/team"
	"github.com/DhavalSuthar-24/gridiron/routes"
)

// @title Gridiron Playbook API
// @version 1.0
// @description Play diagrams, playbooks and film tags for football coaching staffs.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	err = db.AutoMigrate(
		&team.Team{}, &team.TeamMember{},
		&playbook.Play{},
		&film.Game{}, &film.PlayTag{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	catalog, err := formation.Load(cfg.Editor.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load formation catalog: %v", err)
	}

	store, err := session.NewStore(int64(cfg.Editor.MaxSessions), cfg.SessionTTL())
	if err != nil {
		log.Fatalf("Failed to create editor session store: %v", err)
	}
	defer store.Close()

	r := routes.SetupRoutes(cfg, db, catalog, store)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
