package main

// Apply, roll back or inspect database migrations:
//   go run ./cmd/migrate            (up)
//   go run ./cmd/migrate down
//   go run ./cmd/migrate status

import (
	"context"
	"flag"
	"log"
	"os"

	"resume-studio/internal/shared/config"
	"resume-studio/internal/shared/storage/db"
)

func main() {
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Printf("connect: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch command {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	case "status":
		err = db.MigrationStatus(ctx, sqlDB)
	default:
		log.Printf("unknown command %q (want up, down or status)", command)
		os.Exit(2)
	}
	if err != nil {
		log.Printf("%s: %v", command, err)
		os.Exit(1)
	}
}
