package main

import (
	"log"

	"github.com/hackmatehq/hackmate/config"
	_ "github.com/hackmatehq/hackmate/docs"
	"github.com/hackmatehq/hackmate/internal/event"
	"github.com/hackmatehq/hackmate/internal/profile"
	"github.com/hackmatehq/hackmate/internal/team"
	"github.com/hackmatehq/hackmate/routes"
)

// @title HackMate REST API
// @version 1.0
// @description Team formation service for hackathons: profiles, teams, join requests and leader elections.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&profile.Profile{},
		&team.Team{}, &team.TeamMember{}, &team.JoinRequest{},
		&team.VotingRound{}, &team.Vote{},
		&event.Activity{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
