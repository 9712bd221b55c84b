package main

import (
	"log"

	"github.com/joho/godotenv"

	"solareda/api"
	"solareda/internal/config"
)

func main() {
	// Optional .env for local development; environment wins when both set
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := api.NewApp(cfg)
	if err := app.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
