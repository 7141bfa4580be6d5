package roster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleRoster = `
drivers:
  - name: Driver1
    start_hour: "8"
    start_minute: "0"
    end_hour: "17"
    end_minute: "0"
    capacity: "10"
    hourly_cost: "1000"
  - name: Driver2
    start_hour: 9
    start_minute: 0
    end_hour: 18
    end_minute: 0
    capacity: 8
    hourly_cost: 900
    disabled: true
`

func writeRoster(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drivers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestYAMLDriverRosterListDrivers(t *testing.T) {
	r := NewYAMLDriverRoster(writeRoster(t, sampleRoster))

	drivers, err := r.ListDrivers(context.Background())
	require.NoError(t, err)
	require.Len(t, drivers, 2)

	require.Equal(t, "Driver1", drivers[0].Name)
	require.Equal(t, "8", drivers[0].StartHour)
	require.Equal(t, "1000", drivers[0].HourlyCost)
	require.False(t, drivers[0].Disabled)

	// unquoted scalars keep their literal text
	require.Equal(t, "9", drivers[1].StartHour)
	require.Equal(t, "900", drivers[1].HourlyCost)
	require.True(t, drivers[1].Disabled)
}

func TestYAMLDriverRosterEmptyFile(t *testing.T) {
	drivers, err := NewYAMLDriverRoster(writeRoster(t, "")).ListDrivers(context.Background())
	require.NoError(t, err)
	require.Empty(t, drivers)
}

func TestYAMLDriverRosterErrors(t *testing.T) {
	_, err := NewYAMLDriverRoster("").ListDrivers(context.Background())
	require.Error(t, err)

	_, err = NewYAMLDriverRoster(filepath.Join(t.TempDir(), "missing.yaml")).ListDrivers(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewYAMLDriverRoster(writeRoster(t, "drivers:\n  - name: D\n    shift: all day\n")).ListDrivers(context.Background())
	require.Error(t, err)
}
