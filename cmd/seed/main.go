// Command main runs the data seeder for Inkstream.
package main

import (
	"context"
	"flag"
	"log"

	"inkstream/internal/config"
	"inkstream/internal/database"
	"inkstream/internal/middleware"
	"inkstream/internal/poststore"
	"inkstream/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	maxDays := flag.Int("max-days", 90, "Spread post timestamps over this many days")
	flag.Parse()

	log.Println("Data Seeder")
	log.Printf("Target: %d users, %d posts\n", *numUsers, *numPosts)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store, err := poststore.NewFileStore(cfg.PostsDir, middleware.Logger)
	if err != nil {
		log.Fatalf("Failed to open post store: %v", err)
	}

	s := seed.NewSeeder(db, store, seed.Options{
		Users:   *numUsers,
		Posts:   *numPosts,
		MaxDays: *maxDays,
	})
	if err := s.Run(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Test users share the password: password123")
}
