package roster

import (
	"bytes"
	"cleaning-route-service/internal/domain"
	"cleaning-route-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type rosterFile struct {
	Drivers []driverEntry `yaml:"drivers"`
}

// Clock, capacity and cost values stay strings; the vehicle compiler owns
// their validation.
type driverEntry struct {
	Name        string `yaml:"name"`
	StartHour   string `yaml:"start_hour"`
	StartMinute string `yaml:"start_minute"`
	EndHour     string `yaml:"end_hour"`
	EndMinute   string `yaml:"end_minute"`
	Capacity    string `yaml:"capacity"`
	HourlyCost  string `yaml:"hourly_cost"`
	Disabled    bool   `yaml:"disabled"`
}

// YAMLDriverRoster reads the driver roster from a YAML file on every call,
// so roster edits apply to the next request without a restart.
type YAMLDriverRoster struct {
	Path string
}

func NewYAMLDriverRoster(path string) *YAMLDriverRoster {
	return &YAMLDriverRoster{Path: path}
}

func (r *YAMLDriverRoster) ListDrivers(ctx context.Context) (_ []domain.DriverRecord, err error) {
	defer obs.Time(ctx, "roster.ListDrivers")(&err)

	if r.Path == "" {
		return nil, errors.New("yaml driver roster: path is empty")
	}

	raw, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("list drivers: read %q: %w", r.Path, err)
	}

	drivers, err := decodeRoster(raw)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %q: %w", r.Path, err)
	}
	return drivers, nil
}

func decodeRoster(raw []byte) ([]domain.DriverRecord, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var file rosterFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	drivers := make([]domain.DriverRecord, 0, len(file.Drivers))
	for _, d := range file.Drivers {
		drivers = append(drivers, domain.DriverRecord{
			Name:        d.Name,
			StartHour:   d.StartHour,
			StartMinute: d.StartMinute,
			EndHour:     d.EndHour,
			EndMinute:   d.EndMinute,
			Capacity:    d.Capacity,
			HourlyCost:  d.HourlyCost,
			Disabled:    d.Disabled,
		})
	}
	return drivers, nil
}
