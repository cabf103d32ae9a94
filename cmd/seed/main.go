// Command main runs the database seeder for AccessDesk.
package main

import (
	"flag"
	"log"

	"accessdesk/internal/config"
	"accessdesk/internal/database"
	"accessdesk/internal/seed"
)

func main() {
	numEmployees := flag.Int("employees", 25, "Number of employee accounts to create")
	numSoftware := flag.Int("software", 15, "Number of catalog entries to create")
	perUser := flag.Int("requests", 3, "Number of access requests per employee")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (dev speedup)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d employees, %d catalog entries, %d requests each, clean=%v\n",
		*numEmployees, *numSoftware, *perUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeederWithOptions(db, seed.Options{SkipBcrypt: *skipBcrypt})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(*numEmployees, *numSoftware, *perUser); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Println("📧 All seeded accounts have the password: password123")
}
