package routegeo

import (
	"encoding/json"
	"errors"
)

// ErrValidation marks a payload missing the required structural shape.
var ErrValidation = errors.New("invalid payload shape")

// GeometryType is the subset of GeoJSON geometry kinds routes use.
type GeometryType string

const (
	LineString      GeometryType = "LineString"
	MultiLineString GeometryType = "MultiLineString"
)

// Geometry is either a single polyline or a multi-polyline. Coordinate pairs
// are lng,lat order.
type Geometry struct {
	Type      GeometryType
	Line      [][]float64
	MultiLine [][][]float64
}

// MarshalJSON emits the GeoJSON geometry shape.
func (g Geometry) MarshalJSON() ([]byte, error) {
	var coords any
	if g.Type == MultiLineString {
		coords = g.MultiLine
	} else {
		coords = g.Line
	}
	return json.Marshal(map[string]any{
		"type":        string(g.Type),
		"coordinates": coords,
	})
}

// Feature is one canonical route feature.
type Feature struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties,omitempty"`
}

// LatLngPaths returns the feature's polylines with every pair swapped to
// lat,lng order for the presentation boundary. A LineString yields one path.
func (f Feature) LatLngPaths() [][][2]float64 {
	lines := f.Geometry.MultiLine
	if f.Geometry.Type == LineString {
		lines = [][][]float64{f.Geometry.Line}
	}
	paths := make([][][2]float64, 0, len(lines))
	for _, line := range lines {
		path := make([][2]float64, 0, len(line))
		for _, pair := range line {
			path = append(path, [2]float64{pair[1], pair[0]})
		}
		paths = append(paths, path)
	}
	return paths
}
