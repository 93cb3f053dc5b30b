package checkin

import "encoding/json"

// FieldKind is the batch-stable classification of a column.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumeric
	KindDate
)

// Row is one normalized record: a bag of typed cells plus a dense 1-based
// identifier assigned by ordinal position at normalization time.
type Row struct {
	ID    int
	Cells map[string]any
}

// MarshalJSON flattens the row so consumers see the id next to the columns,
// mirroring the wire shape the dashboard grid expects.
func (r Row) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Cells)+1)
	for k, v := range r.Cells {
		out[k] = v
	}
	out["id"] = r.ID
	return json.Marshal(out)
}

// Dataset is the result of normalizing one CSV batch.
type Dataset struct {
	Rows          []Row    `json:"rows"`
	Fields        []string `json:"fields"`
	NumericFields []string `json:"numericFields"`

	// FirstMetricField is the first numeric column, or "" when the batch has
	// none; FirstMetricTotal is nil in that case.
	FirstMetricField string   `json:"firstMetricField,omitempty"`
	FirstMetricTotal *float64 `json:"firstMetricTotal,omitempty"`
}
