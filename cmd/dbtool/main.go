package main

import (
	"cleaning-route-service/internal/adapters/repositories"
	"cleaning-route-service/internal/platform/db"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", envOr("SEED_PATH", "data/seeds/cleaning_locations.json"), "JSON file with cleaning jobs to upsert")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL, db.Options{MaxOpenConns: 2})
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := initAndSeed(ctx, database, *seedPath, *schemaOnly); err != nil {
		log.Error().Err(err).Msg("dbtool failed")
		database.Close()
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, database *sql.DB, seedPath string, schemaOnly bool) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info().Msg("schema ready")

	if schemaOnly {
		return nil
	}

	log.Info().Str("seed", seedPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(ctx, database, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info().Msg("seeding complete")

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
