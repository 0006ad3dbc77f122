package main

import (
	"github.com/Dennisdaviddante/teissi-app/internal/config"
	"github.com/Dennisdaviddante/teissi-app/internal/database"
	logger "github.com/Dennisdaviddante/teissi-app/internal/logging"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/Dennisdaviddante/teissi-app/internal/router"
	"github.com/Dennisdaviddante/teissi-app/internal/services"
	"github.com/Dennisdaviddante/teissi-app/internal/utils"

	"go.uber.org/zap"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Tokens signed with an ephemeral secret stop verifying after a
	// restart, so a configured secret is strongly preferred.
	if config.Conf.Auth.JWTSecret == "" {
		secret, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatal("Failed to generate JWT secret", zap.Error(err))
		}
		config.Conf.Auth.JWTSecret = secret
		log.Warn("No JWT secret configured; generated an ephemeral one")
	}

	// Initialize Database
	database.Init(log)

	// Load the interview catalog at startup
	interview, err := models.LoadInterview("config/interview.yaml")
	if err != nil {
		log.Fatal("Failed to load interview catalog", zap.Error(err))
	}

	// Periodic consistency audit of stored risk levels
	services.NewAuditor(log).Start()

	// Setup router, passing the logger to it
	r := router.Setup(log, interview)

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
