package routegeo

import (
	"strconv"
	"strings"

	"github.com/twpayne/go-polyline"
)

// geometry probe order for ad hoc coordinate fields.
var coordinateKeys = []string{"coordinates", "path", "route", "polyline"}

// NormalizePayload converts an arbitrary decoded payload into canonical
// features. Resolution order, first match wins:
//
//  1. {type: "FeatureCollection", features: [...]} — features used verbatim
//  2. a candidate array from the payload itself, payload.data,
//     payload.data.routes or payload.routes
//  3. each element mapped via explicit geometry, then the ad hoc probes
//
// Elements without valid geometry are dropped.
func NormalizePayload(payload any) []Feature {
	candidates := candidateArray(payload)
	features := make([]Feature, 0, len(candidates))
	for i, el := range candidates {
		if f := featureFromElement(el, i); f != nil {
			features = append(features, *f)
		}
	}
	return features
}

func candidateArray(payload any) []any {
	if m, ok := payload.(map[string]any); ok {
		if t, _ := m["type"].(string); t == "FeatureCollection" {
			if features, ok := m["features"].([]any); ok {
				return features
			}
		}
	}
	if arr, ok := payload.([]any); ok {
		return arr
	}
	m, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	if arr, ok := m["data"].([]any); ok {
		return arr
	}
	if data, ok := m["data"].(map[string]any); ok {
		if arr, ok := data["routes"].([]any); ok {
			return arr
		}
	}
	if arr, ok := m["routes"].([]any); ok {
		return arr
	}
	return nil
}

func featureFromElement(el any, ordinal int) *Feature {
	m, ok := el.(map[string]any)
	if !ok {
		return nil
	}
	geom := resolveGeometry(m)
	if geom == nil {
		return nil
	}

	id := stringValue(m["id"])
	if id == "" {
		id = stringValue(m["route_id"])
	}
	if id == "" {
		id = strconv.Itoa(ordinal)
	}

	name := stringValue(m["name"])
	if name == "" {
		name = stringValue(m["route_name"])
	}
	if name == "" {
		name = stringValue(m["number"])
	}
	if name == "" {
		name = "Route " + id
	}

	props, _ := m["properties"].(map[string]any)
	return &Feature{ID: id, Name: name, Geometry: *geom, Properties: props}
}

// resolveGeometry tries the explicit geometry field first, then probes the
// ad hoc coordinate fields in a fixed order.
func resolveGeometry(m map[string]any) *Geometry {
	if g, ok := m["geometry"].(map[string]any); ok {
		t, _ := g["type"].(string)
		coords := g["coordinates"]
		switch {
		case t == string(LineString) && IsLineCoords(coords):
			return &Geometry{Type: LineString, Line: toLine(coords)}
		case t == string(MultiLineString) && IsMultiLineCoords(coords):
			return &Geometry{Type: MultiLineString, MultiLine: toMultiLine(coords)}
		}
	}
	for _, key := range coordinateKeys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			if line, ok := decodePolyline(s); ok {
				return &Geometry{Type: LineString, Line: line}
			}
			continue
		}
		if IsMultiLineCoords(v) {
			return &Geometry{Type: MultiLineString, MultiLine: toMultiLine(v)}
		}
		if IsLineCoords(v) {
			return &Geometry{Type: LineString, Line: toLine(v)}
		}
	}
	return nil
}

// decodePolyline decodes a Google encoded polyline string. Encoded points are
// lat,lng; the canonical representation wants lng,lat.
func decodePolyline(s string) ([][]float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	coords, rest, err := polyline.DecodeCoords([]byte(s))
	if err != nil || len(rest) > 0 || len(coords) < 2 {
		return nil, false
	}
	line := make([][]float64, 0, len(coords))
	for _, c := range coords {
		line = append(line, []float64{c[1], c[0]})
	}
	return line, true
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
