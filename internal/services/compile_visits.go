package services

import (
	"cleaning-route-service/internal/domain"
	"fmt"
	"strings"
	"time"
)

// CompileVisits turns location records into delivery stops.
//
// Every stop gets the same service duration, the policy's unit load demand and
// the single planning-day visit window. Rows without a latitude or longitude
// cannot be routed and are skipped; the number of skipped rows is returned so
// the caller can surface upstream data gaps. Output order follows input order.
func CompileVisits(
	rows []domain.LocationRecord,
	serviceDuration time.Duration,
	policy domain.Policy,
) ([]domain.Stop, int) {
	stops := make([]domain.Stop, 0, len(rows))
	used := make(map[string]struct{}, len(rows))
	skipped := 0

	for i, row := range rows {
		if row.Latitude == nil || row.Longitude == nil {
			skipped++
			continue
		}

		label := visitLabel(row, i, used)
		used[label] = struct{}{}

		stops = append(stops, domain.Stop{
			Label: label,
			Location: domain.Coordinates{
				Lat: *row.Latitude,
				Lng: *row.Longitude,
			},
			ServiceDuration: serviceDuration,
			LoadDemand:      policy.LoadUnitPerStop,
			AllowedWindows:  []domain.TimeWindow{policy.VisitWindow},
			Flags: domain.StopFlags{
				RequiresAttendedDelivery: row.AttendedOnly,
			},
		})
	}

	return stops, skipped
}

// visitLabel keeps labels unique and non-empty within one batch. The room
// name is preferred; an empty name falls back to the record id, then to the
// row position, and a repeated name is qualified with the id.
func visitLabel(row domain.LocationRecord, index int, used map[string]struct{}) string {
	name := strings.TrimSpace(row.Name)
	id := strings.TrimSpace(row.ID)

	label := name
	if label == "" {
		label = id
	}
	if label == "" {
		label = fmt.Sprintf("row %d", index+1)
	}
	if _, taken := used[label]; taken && id != "" && label != id {
		label = name + " (" + id + ")"
	}

	base := label
	for n := 2; ; n++ {
		if _, taken := used[label]; !taken {
			return label
		}
		label = fmt.Sprintf("%s #%d", base, n)
	}
}
