// Command main runs the database seeder for SIAP.
package main

import (
	"flag"
	"log"

	"siap/internal/config"
	"siap/internal/database"
	"siap/internal/seed"
)

func main() {
	numPegawai := flag.Int("pegawai", 10, "Number of pegawai accounts to create")
	numPermintaan := flag.Int("permintaan", 30, "Number of historical requests to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("SIAP Database Seeder")
	log.Printf("Target: %d pegawai, %d permintaan, clean=%v\n", *numPegawai, *numPermintaan, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB, seed.Options{
		NumPegawai:    *numPegawai,
		NumPermintaan: *numPermintaan,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. All seeded accounts use the password: " + seed.DefaultPassword)
}
