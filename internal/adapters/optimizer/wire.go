package optimizer

import (
	"cleaning-route-service/internal/domain"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Request and response bodies of the optimizeTours method, in proto3 JSON form.
// Only the fields this service reads or writes are declared.

type optimizeToursRequest struct {
	Model shipmentModel `json:"model"`
}

type shipmentModel struct {
	Shipments       []shipment `json:"shipments"`
	Vehicles        []vehicle  `json:"vehicles"`
	GlobalStartTime string     `json:"globalStartTime"`
	GlobalEndTime   string     `json:"globalEndTime"`
}

type shipment struct {
	Deliveries []visitRequest `json:"deliveries"`
	Label      string         `json:"label,omitempty"`
}

type visitRequest struct {
	ArrivalLocation latLng          `json:"arrivalLocation"`
	Duration        string          `json:"duration"`
	Label           string          `json:"label"`
	LoadDemands     map[string]load `json:"loadDemands,omitempty"`
	TimeWindows     []timeWindow    `json:"timeWindows,omitempty"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// int64 fields travel as strings in proto3 JSON.
type load struct {
	Amount string `json:"amount"`
}

type loadLimit struct {
	MaxLoad string `json:"maxLoad"`
}

type timeWindow struct {
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type vehicle struct {
	DisplayName         string               `json:"displayName"`
	Label               string               `json:"label"`
	Ignore              bool                 `json:"ignore"`
	CostPerHour         float64              `json:"costPerHour"`
	CostPerKilometer    float64              `json:"costPerKilometer"`
	CostPerTraveledHour float64              `json:"costPerTraveledHour"`
	TravelMode          string               `json:"travelMode"`
	StartLocation       latLng               `json:"startLocation"`
	EndLocation         latLng               `json:"endLocation"`
	StartTimeWindows    []timeWindow         `json:"startTimeWindows,omitempty"`
	EndTimeWindows      []timeWindow         `json:"endTimeWindows,omitempty"`
	LoadLimits          map[string]loadLimit `json:"loadLimits,omitempty"`
}

type optimizeToursResponse struct {
	Routes []shipmentRoute `json:"routes"`
}

type shipmentRoute struct {
	VehicleIndex     int          `json:"vehicleIndex"`
	VehicleLabel     string       `json:"vehicleLabel"`
	VehicleStartTime string       `json:"vehicleStartTime"`
	VehicleEndTime   string       `json:"vehicleEndTime"`
	Visits           []routeVisit `json:"visits"`
}

type routeVisit struct {
	ShipmentIndex int    `json:"shipmentIndex"`
	IsPickup      bool   `json:"isPickup"`
	StartTime     string `json:"startTime"`
	ShipmentLabel string `json:"shipmentLabel"`
	VisitLabel    string `json:"visitLabel"`
}

func formatInstant(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func formatDuration(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10) + "s"
}

func toLatLng(c domain.Coordinates) latLng { return latLng{Latitude: c.Lat, Longitude: c.Lng} }

func toTimeWindows(ws []domain.TimeWindow) []timeWindow {
	out := make([]timeWindow, 0, len(ws))
	for _, w := range ws {
		out = append(out, timeWindow{StartTime: formatInstant(w.Start), EndTime: formatInstant(w.End)})
	}
	return out
}

// encodeModel serializes the problem; every stop becomes a delivery-only shipment.
func encodeModel(problem *domain.RoutingProblem, travelMode, loadType string) optimizeToursRequest {
	shipments := make([]shipment, 0, len(problem.Stops))
	for _, s := range problem.Stops {
		shipments = append(shipments, shipment{
			Label: s.Label,
			Deliveries: []visitRequest{{
				ArrivalLocation: toLatLng(s.Location),
				Duration:        formatDuration(s.ServiceDuration),
				Label:           s.Label,
				LoadDemands:     map[string]load{loadType: {Amount: strconv.FormatInt(s.LoadDemand, 10)}},
				TimeWindows:     toTimeWindows(s.AllowedWindows),
			}},
		})
	}

	vehicles := make([]vehicle, 0, len(problem.Vehicles))
	for _, v := range problem.Vehicles {
		vehicles = append(vehicles, vehicle{
			DisplayName:         v.DisplayName,
			Label:               v.Label,
			Ignore:              !v.Enabled,
			CostPerHour:         v.Cost.PerHour,
			CostPerKilometer:    v.Cost.PerKilometer,
			CostPerTraveledHour: v.Cost.PerTraveledHour,
			TravelMode:          travelMode,
			StartLocation:       toLatLng(v.Depot),
			EndLocation:         toLatLng(v.Depot),
			StartTimeWindows:    toTimeWindows(v.ShiftWindows.Arrive),
			EndTimeWindows:      toTimeWindows(v.ShiftWindows.Depart),
			LoadLimits:          map[string]loadLimit{loadType: {MaxLoad: strconv.FormatInt(v.Capacity, 10)}},
		})
	}

	return optimizeToursRequest{
		Model: shipmentModel{
			Shipments:       shipments,
			Vehicles:        vehicles,
			GlobalStartTime: formatInstant(problem.Horizon.Start),
			GlobalEndTime:   formatInstant(problem.Horizon.End),
		},
	}
}

// decodeTours maps solved routes back to tours. Labels omitted by the engine
// are recovered from the problem through the vehicle and shipment indexes.
func decodeTours(problem *domain.RoutingProblem, resp optimizeToursResponse) ([]domain.Tour, error) {
	tours := make([]domain.Tour, 0, len(resp.Routes))

	for i, r := range resp.Routes {
		label := r.VehicleLabel
		if label == "" {
			if r.VehicleIndex < 0 || r.VehicleIndex >= len(problem.Vehicles) {
				return nil, fmt.Errorf("route #%d: vehicle index %d out of range", i+1, r.VehicleIndex)
			}
			label = problem.Vehicles[r.VehicleIndex].Label
		}

		start, err := optionalInstant(r.VehicleStartTime)
		if err != nil {
			return nil, fmt.Errorf("route #%d (%q) start: %w", i+1, label, err)
		}
		end, err := optionalInstant(r.VehicleEndTime)
		if err != nil {
			return nil, fmt.Errorf("route #%d (%q) end: %w", i+1, label, err)
		}

		visits := make([]domain.VisitResult, 0, len(r.Visits))
		for j, v := range r.Visits {
			visitLabel := v.VisitLabel
			if visitLabel == "" {
				visitLabel = v.ShipmentLabel
			}
			if visitLabel == "" && v.ShipmentIndex >= 0 && v.ShipmentIndex < len(problem.Stops) {
				visitLabel = problem.Stops[v.ShipmentIndex].Label
			}

			var arrival time.Time
			if strings.TrimSpace(v.StartTime) != "" {
				arrival, err = domain.ParseInstant(v.StartTime)
				if err != nil {
					return nil, fmt.Errorf("route #%d (%q) visit #%d: %w", i+1, label, j+1, err)
				}
			}

			visits = append(visits, domain.VisitResult{VisitLabel: visitLabel, ArrivalTime: arrival})
		}

		tours = append(tours, domain.Tour{
			VehicleLabel: label,
			StartTime:    start,
			EndTime:      end,
			Visits:       visits,
		})
	}

	return tours, nil
}

func optionalInstant(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := domain.ParseInstant(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
