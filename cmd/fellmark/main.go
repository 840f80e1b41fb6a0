package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"fellmark/internal/config"
	"fellmark/internal/game"
)

func main() {
	// .env is optional; it can point FELLMARK_CONFIG at a config file.
	_ = godotenv.Load()

	path := os.Getenv("FELLMARK_CONFIG")
	if path == "" {
		path = "config/fellmark.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	game.New(cfg).Run()
}
