// Command seed runs the database seeder for Khabri.
package main

import (
	"flag"
	"log"
	"strings"

	"khabri/internal/config"
	"khabri/internal/database"
	"khabri/internal/seed"
)

func main() {
	// Parse command line flags
	numPosts := flag.Int("posts", 50, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named seeder preset (e.g., NewsDay)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	if *preset != "" {
		log.Printf("Applying preset: %s (ignoring other flags)\n", *preset)
	} else {
		log.Printf("Target: %d posts, clean=%v\n", *numPosts, *shouldClean)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		log.Fatal("❌ Refusing to seed a production database")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *preset != "" {
		s := seed.NewSeeder(db)
		if *shouldClean {
			if err := s.ClearAll(); err != nil {
				log.Fatalf("❌ Cleanup failed: %v", err)
			}
		}
		if err := s.EnsureAdmin("admin", "admin12345"); err != nil {
			log.Fatalf("❌ Admin seeding failed: %v", err)
		}
		if err := s.ApplyPreset(*preset); err != nil {
			log.Fatalf("❌ Preset seeding failed: %v (available: %s)",
				err, strings.Join(seed.PresetNames(), ", "))
		}
	} else {
		if err := seed.Seed(db, seed.Options{
			NumPosts:    *numPosts,
			ShouldClean: *shouldClean,
		}); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	log.Println("✅ Done")
}
