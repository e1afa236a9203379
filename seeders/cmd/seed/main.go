package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"backoffice/migrations"
	"backoffice/pkg/config"
	"backoffice/pkg/database/postgresql"
	"backoffice/seeders"
)

func main() {
	runRoles := flag.Bool("roles", false, "seed base roles")
	runClaims := flag.Bool("claims", false, "seed dynamic permission claims")
	runAdmin := flag.Bool("admin", false, "create the initial admin user")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runRoles && !*runClaims && !*runAdmin && !*runAll {
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	if err := postgresql.Migrate(cfg.Postgres.DSN, migrations.FS); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgresql.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if *runRoles || *runAll {
		if err := seeders.SeedRoles(ctx, db); err != nil {
			log.Fatalf("role seeding failed: %v", err)
		}
		log.Println("roles seeded")
	}
	if *runClaims || *runAll {
		if err := seeders.SeedClaims(ctx, db); err != nil {
			log.Fatalf("claim seeding failed: %v", err)
		}
		log.Println("claims seeded")
	}
	if *runAdmin || *runAll {
		username := envOr("ADMIN_USERNAME", "admin")
		password := envOr("ADMIN_PASSWORD", "")
		if password == "" {
			log.Fatal("ADMIN_PASSWORD must be set to create the admin user")
		}
		if err := seeders.SeedAdmin(ctx, db, username, password); err != nil {
			log.Fatalf("admin seeding failed: %v", err)
		}
		log.Println("admin user ready")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
