package ayna

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/senan-sh/ayna-analytics/routegeo"
)

// FeaturesForBus projects one bus's route directions into canonical route
// features. Flow points arrive lat/lng and leave lng/lat; non-finite points
// are filtered and a direction with fewer than two valid points is dropped.
func FeaturesForBus(bus *BusDetails) []routegeo.Feature {
	if bus == nil {
		return nil
	}
	features := make([]routegeo.Feature, 0, len(bus.Routes))
	for i, rt := range bus.Routes {
		line := make([][]float64, 0, len(rt.FlowCoordinates))
		for _, p := range rt.FlowCoordinates {
			if !isFinite(p.Lat) || !isFinite(p.Lng) {
				continue
			}
			line = append(line, []float64{p.Lng, p.Lat})
		}
		if len(line) < 2 {
			continue
		}

		routeRef := strconv.Itoa(i)
		if rt.ID != nil {
			routeRef = strconv.Itoa(*rt.ID)
		}
		direction := 0
		if rt.DirectionTypeID != nil {
			direction = *rt.DirectionTypeID
		}

		number := strings.TrimSpace(rt.Code)
		if number == "" {
			number = strings.TrimSpace(rt.CustomerName)
		}
		if number == "" {
			number = strings.TrimSpace(bus.Number)
		}
		if number == "" {
			number = "Bus " + strconv.Itoa(bus.ID)
		}
		name := number
		if dest := strings.TrimSpace(rt.Destination); dest != "" {
			name = dest
		}

		features = append(features, routegeo.Feature{
			ID:       fmt.Sprintf("%d-%s-%d", bus.ID, routeRef, direction),
			Name:     name,
			Geometry: routegeo.Geometry{Type: routegeo.LineString, Line: line},
			Properties: map[string]any{
				"busId":           bus.ID,
				"number":          number,
				"directionTypeId": direction,
			},
		})
	}
	return features
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
