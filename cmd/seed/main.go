package main

import (
	"fmt"
	"log"

	"gigboard/internal/database"
	"gigboard/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("gigboard.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM bids")
	db.Exec("DELETE FROM gigs")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	owner := domain.User{
		Username:     "acme",
		Email:        "owner@gigboard.dev",
		PasswordHash: string(hash),
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Fatal(err)
	}

	freelancers := make([]domain.User, 0, 3)
	for i := 1; i <= 3; i++ {
		f := domain.User{
			Username:     fmt.Sprintf("freelancer%d", i),
			Email:        fmt.Sprintf("freelancer%d@gigboard.dev", i),
			PasswordHash: string(hash),
		}
		if err := db.Create(&f).Error; err != nil {
			log.Fatal(err)
		}
		freelancers = append(freelancers, f)
	}

	log.Println("Creating gigs...")

	gigs := []domain.Gig{
		{
			OwnerID:     owner.ID,
			Title:       "Build a landing page",
			Description: "Responsive landing page for a product launch, design provided in Figma.",
			Budget:      500,
			Status:      domain.GigOpen,
		},
		{
			OwnerID:     owner.ID,
			Title:       "Fix payment webhook",
			Description: "Stripe webhook intermittently drops events, needs investigation and a fix.",
			Budget:      250,
			Status:      domain.GigOpen,
		},
		{
			OwnerID:     owner.ID,
			Title:       "Write API documentation",
			Description: "Document the public REST API, around 30 endpoints.",
			Budget:      300,
			Status:      domain.GigOpen,
		},
	}
	for i := range gigs {
		if err := db.Create(&gigs[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating bids...")

	for i, f := range freelancers {
		b := domain.Bid{
			GigID:        gigs[0].ID,
			FreelancerID: f.ID,
			Message:      fmt.Sprintf("Hi, I can deliver this within %d days.", i+2),
			Price:        float64(450 - i*50),
			Status:       domain.BidPending,
		}
		if err := db.Create(&b).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed complete.")
	log.Printf("Owner login: owner@gigboard.dev / password123")
	log.Printf("Freelancer logins: freelancer1..3@gigboard.dev / password123")
}
