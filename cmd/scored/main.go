// scored serves the completion-time leaderboard backed by Postgres, with
// an optional Redis scoreboard cache.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"crosswarped.com/cluegen/internal/leaderboard"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	if err := leaderboard.Migrate(databaseURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	store, err := leaderboard.NewPGStore(ctx, databaseURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer store.Close()

	var cache *leaderboard.Cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache = leaderboard.NewCache(redisURL, 5*time.Minute)
		defer cache.Close()
		log.Println("Scoreboard cache enabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := leaderboard.NewServer(store, cache)
	log.Printf("Leaderboard listening on :%s", port)
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		log.Fatal(err)
	}
}
