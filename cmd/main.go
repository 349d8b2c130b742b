package main

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/gangamma-trust/registration-portal/internal/config"
	"github.com/gangamma-trust/registration-portal/internal/db"
	"github.com/gangamma-trust/registration-portal/internal/handlers"
	"github.com/gangamma-trust/registration-portal/internal/logger"
	"github.com/gangamma-trust/registration-portal/internal/repos"
	"github.com/gangamma-trust/registration-portal/internal/server"
	"github.com/gangamma-trust/registration-portal/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading configuration...")
	cfg := config.Load(log)

	// Postgres. A failed connection is tolerated: the process keeps
	// serving and submissions report the store as unavailable until it
	// comes back at the next restart.
	var theDB *gorm.DB
	postgresService, err := db.NewPostgresService(cfg.PostgresDSN, log)
	if err != nil {
		log.Warn("Postgres init failed, serving without a store", "error", err)
	} else {
		if err := postgresService.AutoMigrate(cfg.Variant); err != nil {
			log.Warn("Postgres auto migration failed, serving without a store", "error", err)
		} else {
			theDB = postgresService.DB()
		}
	}

	// Repos
	log.Info("Setting up repos...")
	donorRepo := repos.NewDonorRepo(theDB, log)
	memberRepo := repos.NewMemberRepo(theDB, log)

	// Services
	log.Info("Setting up services...")
	registrationService := services.NewRegistrationService(theDB, log, donorRepo, memberRepo, cfg.Variant)

	// Handlers
	log.Info("Setting up handlers...")
	registrationHandler := handlers.NewRegistrationHandler(log, registrationService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		SessionSecret:       cfg.SessionSecret,
		CORSOrigins:         cfg.CORSOrigins,
		RegistrationHandler: registrationHandler,
	})

	log.Info("Server listening", "port", cfg.Port, "variant", string(cfg.Variant))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
