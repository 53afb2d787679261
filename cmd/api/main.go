package main

import (
	"log"

	_ "remodel_calc/docs"
	"remodel_calc/internal/adapter/http/routes"
	"remodel_calc/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Remodel Calc API
// @version         1.0
// @description     Remodeling cost estimates, payment ledgers and exports backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := routes.Run(cfg); err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}
}
