package services

import (
	"cleaning-route-service/internal/domain"
	"testing"
	"time"
)

func coord(v float64) *float64 { return &v }

func TestCompileVisitsSkipsRowsWithoutCoordinates(t *testing.T) {
	rows := []domain.LocationRecord{
		{ID: "1", Name: "A", Latitude: coord(35.0), Longitude: coord(139.0)},
		{ID: "2", Name: "B", Latitude: coord(35.1), Longitude: coord(139.1)},
		{ID: "3", Name: "C", Latitude: nil, Longitude: coord(139.2)},
		{ID: "4", Name: "D", Latitude: coord(35.3), Longitude: coord(139.3)},
		{ID: "5", Name: "E", Latitude: coord(35.4), Longitude: coord(139.4)},
	}

	policy := domain.DefaultPolicy()
	stops, skipped := CompileVisits(rows, 6*time.Minute, policy)

	if len(stops) != 4 {
		t.Fatalf("expected 4 stops, got %d", len(stops))
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}

	want := []string{"A", "B", "D", "E"}
	for i, s := range stops {
		if s.Label != want[i] {
			t.Fatalf("stop %d label = %q, want %q", i, s.Label, want[i])
		}
	}
}

func TestCompileVisitsStopFields(t *testing.T) {
	rows := []domain.LocationRecord{
		{ID: "42", Name: "Room 301", Latitude: coord(35.68), Longitude: coord(139.76), AttendedOnly: true},
	}

	policy := domain.DefaultPolicy()
	stops, skipped := CompileVisits(rows, 360*time.Second, policy)
	if skipped != 0 || len(stops) != 1 {
		t.Fatalf("expected 1 stop and 0 skipped, got %d and %d", len(stops), skipped)
	}

	s := stops[0]
	if s.Location.Lat != 35.68 || s.Location.Lng != 139.76 {
		t.Fatalf("location = %+v, want {35.68 139.76}", s.Location)
	}
	if s.ServiceDuration != 6*time.Minute {
		t.Fatalf("service duration = %s, want 6m0s", s.ServiceDuration)
	}
	if s.LoadDemand != 1 {
		t.Fatalf("load demand = %d, want 1", s.LoadDemand)
	}
	if len(s.AllowedWindows) != 1 || s.AllowedWindows[0] != policy.VisitWindow {
		t.Fatalf("allowed windows = %v, want [%s]", s.AllowedWindows, policy.VisitWindow)
	}
	if !s.Flags.RequiresAttendedDelivery {
		t.Fatalf("expected attended-only flag to be carried over")
	}
}

func TestCompileVisitsLabelsStayUnique(t *testing.T) {
	rows := []domain.LocationRecord{
		{ID: "10", Name: "Shibuya 201", Latitude: coord(35), Longitude: coord(139)},
		{ID: "11", Name: "Shibuya 201", Latitude: coord(35), Longitude: coord(139)},
		{ID: "12", Name: "  ", Latitude: coord(35), Longitude: coord(139)},
		{ID: "", Name: "Shibuya 201", Latitude: coord(35), Longitude: coord(139)},
	}

	stops, _ := CompileVisits(rows, time.Minute, domain.DefaultPolicy())

	want := []string{"Shibuya 201", "Shibuya 201 (11)", "12", "Shibuya 201 #2"}
	if len(stops) != len(want) {
		t.Fatalf("expected %d stops, got %d", len(want), len(stops))
	}
	for i, s := range stops {
		if s.Label != want[i] {
			t.Fatalf("stop %d label = %q, want %q", i, s.Label, want[i])
		}
	}
}

func TestCompileVisitsEmpty(t *testing.T) {
	stops, skipped := CompileVisits(nil, time.Minute, domain.DefaultPolicy())
	if len(stops) != 0 || skipped != 0 {
		t.Fatalf("expected no stops and no skips, got %d and %d", len(stops), skipped)
	}
}

func TestCompileVisitsLabelsRowsWithoutNameOrID(t *testing.T) {
	rows := []domain.LocationRecord{
		{Name: "", ID: "", Latitude: coord(35), Longitude: coord(139)},
		{Name: " ", ID: "", Latitude: coord(35), Longitude: coord(139)},
		{Name: "row 1", ID: "", Latitude: coord(35), Longitude: coord(139)},
	}

	stops, skipped := CompileVisits(rows, time.Minute, domain.DefaultPolicy())
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}

	want := []string{"row 1", "row 2", "row 1 #2"}
	for i, s := range stops {
		if s.Label == "" {
			t.Fatalf("stop %d has an empty label", i)
		}
		if s.Label != want[i] {
			t.Fatalf("stop %d label = %q, want %q", i, s.Label, want[i])
		}
	}
}
