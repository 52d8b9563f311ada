package main

import (
	"context"
	"log"
	"os"
	"time"

	"finance_tracker/internal/db"
	"finance_tracker/internal/domain"
	"finance_tracker/internal/repository"
	"finance_tracker/internal/service"
)

// Seeds a demo account with a few transactions and prints a ready-to-use
// bearer token. Local development only.
func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	service.InitJWT()

	ctx := context.Background()
	users := repository.NewUserRepository(pool)
	auth := service.NewAuthService(pool)

	email := "demo@example.com"

	// try to find existing user
	u, err := users.GetByEmail(ctx, email)
	var token string
	if err == nil {
		log.Printf("user already exists id=%d\n", u.ID)
		token, err = service.GenerateJWT(u.ID)
		if err != nil {
			log.Fatalf("failed to generate token: %v", err)
		}
	} else {
		u, token, err = auth.Register(ctx, "demo", email, "demo-password")
		if err != nil {
			log.Fatalf("register failed: %v", err)
		}
		log.Printf("user created id=%d\n", u.ID)

		txRepo := repository.NewTransactionRepository(pool)
		now := time.Now()
		samples := []*domain.Transaction{
			{UserID: u.ID, Date: now.AddDate(0, 0, -3), Description: "Salary", Amount: 3000, Category: "Salary", Type: domain.TypeIncome},
			{UserID: u.ID, Date: now.AddDate(0, 0, -2), Description: "Grocery", Amount: 54.20, Category: "Food", Type: domain.TypeExpense},
			{UserID: u.ID, Date: now.AddDate(0, 0, -1), Description: "Bus pass", Amount: 29.90, Category: "Transport", Type: domain.TypeExpense},
		}
		for _, tx := range samples {
			if err := txRepo.Create(ctx, tx); err != nil {
				log.Fatalf("seed transaction failed: %v", err)
			}
		}
		log.Printf("seeded %d transactions\n", len(samples))
	}

	log.Printf("token=%s\n", token)
}
