// Command admin_seed provisions demo data for local development: a
// handful of user spending profiles and a small IP denylist, matching
// the fixtures the scoring engine is usually demonstrated with.
package main

import (
	"context"
	"log"

	"frauddetect/internal/config"
	"frauddetect/internal/models"
	"frauddetect/internal/repositories"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	ctx := context.Background()
	profiles := repositories.NewUserProfileRepository(repositories.DB)
	blacklist := repositories.NewBlacklistRepository(repositories.DB)

	demoProfiles := []models.UserProfile{
		{
			UserID:               "user_001",
			AvgTransactionAmount: 150.0,
			PreferredLocations:   []string{"New York", "Brooklyn"},
			PreferredMerchants:   []string{"grocery", "restaurant", "gas_station"},
			AccountAgeDays:       730,
		},
		{
			UserID:               "user_002",
			AvgTransactionAmount: 75.5,
			PreferredLocations:   []string{"San Francisco"},
			PreferredMerchants:   []string{"online_retail", "streaming"},
			AccountAgeDays:       365,
		},
		{
			UserID:               "user_003",
			AvgTransactionAmount: 2200.0,
			PreferredLocations:   []string{"Chicago", "Miami"},
			PreferredMerchants:   []string{"travel", "hotel", "restaurant"},
			AccountAgeDays:       1460,
		},
	}

	for i := range demoProfiles {
		if err := profiles.Upsert(ctx, &demoProfiles[i]); err != nil {
			log.Fatalf("Failed to seed profile %s: %v", demoProfiles[i].UserID, err)
		}
	}

	demoBlacklist := []models.BlacklistedIP{
		{IPAddress: "192.168.1.100", Reason: "known fraud source", AddedBy: "seed"},
		{IPAddress: "10.0.0.50", Reason: "repeated chargebacks", AddedBy: "seed"},
		{IPAddress: "203.0.113.42", Reason: "proxy exit node", AddedBy: "seed"},
	}

	for i := range demoBlacklist {
		if err := blacklist.Add(ctx, &demoBlacklist[i]); err != nil {
			log.Fatalf("Failed to seed blacklist entry %s: %v", demoBlacklist[i].IPAddress, err)
		}
	}

	log.Println("✅ Seed data created successfully!")
}
