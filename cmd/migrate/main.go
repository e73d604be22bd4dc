// Command migrate applies the database schema for SIAP. Production deploys
// run this explicitly; development connections auto-migrate on startup.
package main

import (
	"log"

	"siap/internal/config"
	"siap/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration completed")
}
