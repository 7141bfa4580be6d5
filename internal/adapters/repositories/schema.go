package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// InitSchema creates the cleaning_locations table and its lookup index.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS cleaning_locations (
		cleaning_id    TEXT PRIMARY KEY,
		cleaning_date  DATE NOT NULL,
		status         TEXT NOT NULL DEFAULT '',
		prefecture_id  TEXT NOT NULL DEFAULT '',
		room_name      TEXT NOT NULL,
		building_name  TEXT,
		cleaning_by    TEXT NOT NULL,
		placement_type TEXT NOT NULL,
		latitude       DOUBLE PRECISION,
		longitude      DOUBLE PRECISION,
		attended_only  BOOLEAN NOT NULL DEFAULT FALSE,
		has_check_in   BOOLEAN NOT NULL DEFAULT FALSE,
		is_disabled    BOOLEAN NOT NULL DEFAULT FALSE,
		photo_tour_id  TEXT
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_cleaning_locations_date_crew
	ON cleaning_locations(cleaning_date, cleaning_by, placement_type);
	`

	statements := []string{
		createLocationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LocationSeed struct {
	CleaningID    string   `json:"cleaning_id"`
	CleaningDate  string   `json:"cleaning_date"`
	Status        string   `json:"status"`
	PrefectureID  string   `json:"prefecture_id"`
	RoomName      string   `json:"room_name"`
	BuildingName  string   `json:"building_name"`
	CleaningBy    string   `json:"cleaning_by"`
	PlacementType string   `json:"placement_type"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	AttendedOnly  bool     `json:"attended_only"`
	HasCheckIn    bool     `json:"has_check_in"`
	IsDisabled    bool     `json:"is_disabled"`
	PhotoTourID   string   `json:"photo_tour_id"`
}

// SeedFromJSON upserts cleaning jobs from a JSON array file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed locations: read %q: %w", jsonPath, err)
	}

	var data []LocationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed locations: parse json: %w", err)
	}

	if err := validateSeeds(data); err != nil {
		return fmt.Errorf("seed locations: %w", err)
	}
	if db == nil {
		return errors.New("seed locations: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO cleaning_locations (
		cleaning_id,
		cleaning_date,
		status,
		prefecture_id,
		room_name,
		building_name,
		cleaning_by,
		placement_type,
		latitude,
		longitude,
		attended_only,
		has_check_in,
		is_disabled,
		photo_tour_id
	)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''))
	ON CONFLICT (cleaning_id) DO UPDATE SET
		cleaning_date  = EXCLUDED.cleaning_date,
		status         = EXCLUDED.status,
		prefecture_id  = EXCLUDED.prefecture_id,
		room_name      = EXCLUDED.room_name,
		building_name  = EXCLUDED.building_name,
		cleaning_by    = EXCLUDED.cleaning_by,
		placement_type = EXCLUDED.placement_type,
		latitude       = EXCLUDED.latitude,
		longitude      = EXCLUDED.longitude,
		attended_only  = EXCLUDED.attended_only,
		has_check_in   = EXCLUDED.has_check_in,
		is_disabled    = EXCLUDED.is_disabled,
		photo_tour_id  = EXCLUDED.photo_tour_id;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range data {
		_, err := stmt.ExecContext(ctx,
			s.CleaningID,
			s.CleaningDate,
			s.Status,
			s.PrefectureID,
			s.RoomName,
			s.BuildingName,
			s.CleaningBy,
			s.PlacementType,
			s.Latitude,
			s.Longitude,
			s.AttendedOnly,
			s.HasCheckIn,
			s.IsDisabled,
			s.PhotoTourID,
		)
		if err != nil {
			return fmt.Errorf("seed locations: insert cleaning_id=%s: %w", s.CleaningID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}

func validateSeeds(data []LocationSeed) error {
	seen := make(map[string]struct{}, len(data))
	for i := range data {
		s := &data[i]
		s.CleaningID = strings.TrimSpace(s.CleaningID)
		if s.CleaningID == "" {
			return fmt.Errorf("item at index %d: cleaning_id cannot be empty", i+1)
		}
		if _, dup := seen[s.CleaningID]; dup {
			return fmt.Errorf("item at index %d: duplicate cleaning_id %q", i+1, s.CleaningID)
		}
		seen[s.CleaningID] = struct{}{}

		if _, err := time.Parse("2006-01-02", s.CleaningDate); err != nil {
			return fmt.Errorf("item %q: cleaning_date %q is not YYYY-MM-DD", s.CleaningID, s.CleaningDate)
		}
		if strings.TrimSpace(s.CleaningBy) == "" || strings.TrimSpace(s.PlacementType) == "" {
			return fmt.Errorf("item %q: cleaning_by and placement_type cannot be empty", s.CleaningID)
		}
	}
	return nil
}
