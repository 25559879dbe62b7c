package main

import (
	"taskhive-api/internal/config"
	"taskhive-api/internal/database"
	"taskhive-api/internal/logging"
	"taskhive-api/internal/routes"
)

func main() {
	cfg := config.Load()

	logging.Init(cfg.LogFile)

	// Init database (migrations + default company/admin seed)
	database.InitDB(cfg.DBPath, cfg.CompanyName, cfg.CompanyCode)

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	addr := ":" + cfg.Port
	logging.Logger.Infof("Server starting on %s", addr)

	if err := ginRoutes.Run(addr); err != nil {
		logging.Logger.Fatal("Failed to start server: ", err)
	}
}
