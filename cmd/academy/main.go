package main

import (
	"log"

	"github.com/prestige-strategies/academy/internal/academy/app"
)

func main() {
	cfg, err := app.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
