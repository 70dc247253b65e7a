package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"khola-chithi/engine/internal/db"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/services"
	"khola-chithi/engine/internal/store"
)

// One-shot payout runner. Computes and persists moderator payouts for a
// month, or user rewards for a half-year, then prints the report.
func main() {
	var (
		month  = flag.String("month", time.Now().Format("2006-01"), "payout month, YYYY-MM")
		year   = flag.Int("year", 0, "reward year; enables reward mode together with -half")
		half   = flag.String("half", "", "reward half, H1 or H2")
		dbPath = flag.String("db", "engine.db", "sqlite database path")
	)
	flag.Parse()

	orm, err := db.InitSQLiteORM(*dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	docs, err := store.NewGormStore(orm)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	ctx := context.Background()
	users := repositories.NewUserRepository(ctx, docs)
	revenue := repositories.NewRevenueRepository(ctx, docs)
	payouts := repositories.NewModeratorPayoutRepository(ctx, docs)
	rewards := repositories.NewUserRewardRepository(ctx, docs)
	settings := repositories.NewSettingsRepository(ctx, docs)

	svc := services.NewPayoutService(users, revenue, payouts, rewards, settings)

	if *year != 0 || *half != "" {
		report, err := svc.CalculateAndSetUserRewards(ctx, *year, *half)
		if err != nil {
			log.Fatalf("reward run: %v", err)
		}
		fmt.Printf("Rewards %d %s: pool=%.2f points=%d participants=%d\n",
			report.Year, report.Half, report.Pool, report.TotalPoints, report.Participants)
		os.Exit(0)
	}

	report, err := svc.CalculateAndSetModeratorPayouts(ctx, *month)
	if err != nil {
		log.Fatalf("payout run: %v", err)
	}
	fmt.Printf("Payouts %s: pool=%.2f points=%d participants=%d\n",
		report.Month, report.Pool, report.TotalPoints, report.Participants)
}
