package dto

import (
	"cleaning-route-service/internal/domain"
	"time"
)

type VisitResponse struct {
	VisitLabel  string    `json:"visit_label"`
	ArrivalTime time.Time `json:"arrival_time"`
}

type ItineraryEntryResponse struct {
	DriverID  string          `json:"driver_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Visits    []VisitResponse `json:"visits"`
}

// NewItineraryResponse keeps entry and visit order; an empty itinerary
// encodes as [] rather than null.
func NewItineraryResponse(itinerary domain.Itinerary) []ItineraryEntryResponse {
	res := make([]ItineraryEntryResponse, 0, len(itinerary))
	for _, e := range itinerary {
		visits := make([]VisitResponse, 0, len(e.Visits))
		for _, v := range e.Visits {
			visits = append(visits, VisitResponse{
				VisitLabel:  v.VisitLabel,
				ArrivalTime: v.ArrivalTime,
			})
		}

		res = append(res, ItineraryEntryResponse{
			DriverID:  e.DriverID,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Visits:    visits,
		})
	}
	return res
}
