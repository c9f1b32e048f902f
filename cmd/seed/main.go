// Command main runs the database seeder for Tinfoil.
package main

import (
	"flag"
	"log"

	"tinfoil/internal/config"
	"tinfoil/internal/database"
	"tinfoil/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	adminOnly := flag.Bool("admin-only", false, "Only create the bootstrap admin account")
	flag.Parse()

	// .env is optional; real deployments configure through the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Admin(db); err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	}
	if *adminOnly {
		log.Println("Admin-only seeding complete")
		return
	}

	if err := seed.Seed(db, seed.Options{NumUsers: *numUsers, ShouldClean: *shouldClean}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Test users share the password: password123")
}
