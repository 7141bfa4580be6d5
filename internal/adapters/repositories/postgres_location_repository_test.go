package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLikePrefixPatterns(t *testing.T) {
	got := likePrefixPatterns([]string{"stayme", " Elm ", "", "50%_off", `back\slash`})
	require.Equal(t, []string{"stayme%", "Elm%", `50\%\_off%`, `back\\slash%`}, got)

	require.Empty(t, likePrefixPatterns(nil))
	require.NotNil(t, likePrefixPatterns(nil))
}

func TestListLocationsRequiresDB(t *testing.T) {
	repo := NewPostgresLocationRepository(nil, LocationFilter{})
	_, err := repo.ListLocations(context.Background(), time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}

func TestSeedFromJSONRejectsInvalidItems(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"empty id", `[{"cleaning_id":" ","cleaning_date":"2024-02-13","cleaning_by":"in-house","placement_type":"room"}]`},
		{"duplicate id", `[
			{"cleaning_id":"1","cleaning_date":"2024-02-13","cleaning_by":"in-house","placement_type":"room"},
			{"cleaning_id":"1","cleaning_date":"2024-02-13","cleaning_by":"in-house","placement_type":"room"}
		]`},
		{"bad date", `[{"cleaning_id":"1","cleaning_date":"13/02/2024","cleaning_by":"in-house","placement_type":"room"}]`},
		{"missing crew", `[{"cleaning_id":"1","cleaning_date":"2024-02-13","placement_type":"room"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o600))

			// validation fails before the DB is touched
			err := SeedFromJSON(context.Background(), nil, path)
			require.Error(t, err)
		})
	}
}
