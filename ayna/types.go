package ayna

import (
	"strconv"
	"strings"

	"github.com/senan-sh/ayna-analytics/routegeo"
)

// Origin tags where a result came from.
type Origin string

const (
	OriginLiveAPI  Origin = "live-api"
	OriginSnapshot Origin = "snapshot-fallback"
)

// BusSummary identifies one bus line in the list view. Number defaults to the
// stringified id when the upstream record has none.
type BusSummary struct {
	ID     int    `json:"id"`
	Number string `json:"number"`
}

// busSummaryJSON tolerates the upstream list shape, where number may be a
// string, a number or absent.
type busSummaryJSON struct {
	ID     int `json:"id"`
	Number any `json:"number"`
}

func (raw busSummaryJSON) summary() BusSummary {
	number := ""
	switch n := raw.Number.(type) {
	case string:
		number = strings.TrimSpace(n)
	case float64:
		number = strconv.FormatFloat(n, 'f', -1, 64)
	}
	if number == "" {
		number = strconv.Itoa(raw.ID)
	}
	return BusSummary{ID: raw.ID, Number: number}
}

// BusList is the cached list result plus its origin tag.
type BusList struct {
	Buses  []BusSummary `json:"buses"`
	Source Origin       `json:"source"`
}

// FlowPoint is one raw route point in upstream lat/lng order.
type FlowPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BusRoute is one direction of a bus line as the upstream details endpoint
// reports it.
type BusRoute struct {
	ID              *int        `json:"id"`
	Code            string      `json:"code"`
	CustomerName    string      `json:"customerName"`
	Destination     string      `json:"destination"`
	DirectionTypeID *int        `json:"directionTypeId"`
	FlowCoordinates []FlowPoint `json:"flowCoordinates"`
}

// BusDetails is the full record for one bus line. The optional carrier,
// endpoint and tariff fields are independently nullable upstream. The JSON
// key durationMinuts is the upstream spelling.
type BusDetails struct {
	ID              int        `json:"id"`
	Number          string     `json:"number"`
	Carrier         *string    `json:"carrier"`
	FirstPoint      *string    `json:"firstPoint"`
	LastPoint       *string    `json:"lastPoint"`
	TariffStr       *string    `json:"tariffStr"`
	DurationMinutes *int       `json:"durationMinuts"`
	Routes          []BusRoute `json:"routes"`

	// Derived by the façade, not present upstream.
	Source   Origin             `json:"source,omitempty"`
	Features []routegeo.Feature `json:"features,omitempty"`
}
