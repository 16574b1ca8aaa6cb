// Command api serves relationship discovery over HTTP.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/battyone/beyond-correlation/adapters/postgres"
	"github.com/battyone/beyond-correlation/adapters/rforest"
	"github.com/battyone/beyond-correlation/app"
	"github.com/battyone/beyond-correlation/internal"
	"github.com/battyone/beyond-correlation/internal/config"
	"github.com/battyone/beyond-correlation/ports"
	"github.com/battyone/beyond-correlation/ui"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var repo ports.ResultRepository
	if cfg.HasDatabase() {
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(db); err != nil {
			log.Fatalf("database: %v", err)
		}
		repo = postgres.NewRunRepository(db)
		log.Printf("run persistence enabled")
	} else {
		log.Printf("DATABASE_URL not set, run persistence disabled")
	}

	service := app.NewDiscoveryService(rforest.NewFactory(), repo, internal.DefaultLogger)
	server := ui.NewApp(service)

	log.Printf("API server listening on :%s", cfg.Port)
	if err := server.Start(ui.Config{Port: cfg.Port}); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
