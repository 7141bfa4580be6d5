package repositories

import (
	"cleaning-route-service/internal/domain"
	"cleaning-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// LocationFilter narrows the day's cleaning jobs to what one crew can serve.
type LocationFilter struct {
	CleaningBy    string
	PlacementType string

	// PrefectureID limits jobs to one prefecture; empty means all.
	PrefectureID string

	// ExcludedNamePrefixes drops jobs whose room name starts with any prefix.
	ExcludedNamePrefixes []string

	// IncludeAttendedOnly keeps jobs that cannot take unattended drop-off.
	IncludeAttendedOnly bool
}

// PostgresLocationRepository implements ports.LocationSource.
type PostgresLocationRepository struct {
	DB     *sql.DB
	Filter LocationFilter
}

func NewPostgresLocationRepository(db *sql.DB, filter LocationFilter) *PostgresLocationRepository {
	return &PostgresLocationRepository{DB: db, Filter: filter}
}

// ListLocations returns the planning day's jobs, same-day check-ins first.
func (r *PostgresLocationRepository) ListLocations(
	ctx context.Context,
	planningDate time.Time,
) (_ []domain.LocationRecord, err error) {
	defer obs.Time(ctx, "repositories.ListLocations")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres location repository: DB is nil")
	}

	query := `
	SELECT
		cleaning_id,
		room_name,
		building_name,
		prefecture_id,
		status,
		latitude,
		longitude,
		attended_only,
		has_check_in
	FROM cleaning_locations
	WHERE cleaning_date = $1
	  AND photo_tour_id IS NULL
	  AND is_disabled = FALSE
	  AND cleaning_by = $2
	  AND placement_type = $3
	  AND ($4::text = '' OR prefecture_id = $4)
	  AND ($5::boolean OR attended_only = FALSE)
	  AND NOT (room_name LIKE ANY($6::text[]))
	ORDER BY has_check_in DESC, cleaning_id;
	`

	rows, err := r.DB.QueryContext(ctx, query,
		planningDate.UTC().Format("2006-01-02"),
		r.Filter.CleaningBy,
		r.Filter.PlacementType,
		strings.TrimSpace(r.Filter.PrefectureID),
		r.Filter.IncludeAttendedOnly,
		likePrefixPatterns(r.Filter.ExcludedNamePrefixes),
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: query cleaning_locations: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.LocationRecord, 0, 64)
	for rows.Next() {
		var (
			rec      domain.LocationRecord
			building sql.NullString
			lat, lng sql.NullFloat64
		)
		err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&building,
			&rec.PrefectureID,
			&rec.Status,
			&lat,
			&lng,
			&rec.AttendedOnly,
			&rec.HasCheckIn,
		)
		if err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}

		rec.BuildingName = building.String
		if lat.Valid {
			rec.Latitude = &lat.Float64
		}
		if lng.Valid {
			rec.Longitude = &lng.Float64
		}
		locations = append(locations, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}

// likePrefixPatterns escapes LIKE metacharacters in each prefix and appends
// the trailing wildcard. Blank prefixes are dropped.
func likePrefixPatterns(prefixes []string) []string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	patterns := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		patterns = append(patterns, escaper.Replace(p)+"%")
	}
	return patterns
}
