package routegeo

import (
	"encoding/json"
	"fmt"
)

// ParseFeatureCollection decodes strict GeoJSON input. It rejects anything
// that is not a FeatureCollection with a features array; individual features
// without valid route geometry are dropped, not rejected.
func ParseFeatureCollection(data []byte) ([]Feature, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	t, _ := payload["type"].(string)
	if t != "FeatureCollection" {
		return nil, fmt.Errorf("%w: type %q is not FeatureCollection", ErrValidation, t)
	}
	if _, ok := payload["features"].([]any); !ok {
		return nil, fmt.Errorf("%w: missing features array", ErrValidation)
	}
	return NormalizePayload(payload), nil
}
