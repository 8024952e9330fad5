package utils

import (
	"context"
	"log"
	"time"

	"debatematch/models"
	"debatematch/store"
)

// SeedTestUsers creates a handful of test profiles when the store is empty.
// Intended for local development only.
func SeedTestUsers(ctx context.Context, st store.Store) {
	existing, err := st.ListProfilesByRating(ctx, 1)
	if err != nil {
		log.Printf("Skipping seed, failed to check for existing users: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	testUsers := []models.User{
		{
			Email:       "user1@example.com",
			DisplayName: "DebateMaster",
			Bio:         "Experienced debater",
			EloRating:   models.InitialEloRating,
		},
		{
			Email:       "user2@example.com",
			DisplayName: "LogicLord",
			Bio:         "Lover of logical arguments",
			EloRating:   models.InitialEloRating,
		},
		{
			Email:       "user3@example.com",
			DisplayName: "DevilsAdvocate",
			Bio:         "Will argue the other side on principle",
			EloRating:   models.InitialEloRating,
		},
	}

	for i := range testUsers {
		testUsers[i].CurrentRank = models.RankForRating(testUsers[i].EloRating)
		testUsers[i].CreatedAt = time.Now()
		if err := st.CreateProfile(ctx, &testUsers[i]); err != nil {
			log.Printf("Failed to seed user %s: %v", testUsers[i].DisplayName, err)
		}
	}
	log.Printf("Seeded %d test users", len(testUsers))
}
