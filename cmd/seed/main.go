// Command main runs the database seeder for FitTrack.
package main

import (
	"flag"
	"log"

	"fittrack/internal/config"
	"fittrack/internal/database"
	"fittrack/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	workoutsPerUser := flag.Int("workouts", 12, "Number of workouts per user")
	goalsPerUser := flag.Int("goals", 4, "Number of goals per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d workouts each, %d goals each, clean=%v\n",
		*numUsers, *workoutsPerUser, *goalsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedUsers(*numUsers, *workoutsPerUser, *goalsPerUser); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
