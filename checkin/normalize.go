package checkin

import (
	"fmt"
	"strings"
	"time"

	"github.com/senan-sh/ayna-analytics/utils"
)

// Normalize parses raw CSV text and produces a typed Dataset: the ordered
// field set, batch-stable column kinds, display-formatted date cells and
// dense 1-based row ids.
func Normalize(csvText string) (*Dataset, error) {
	header, records, err := parseRecords(csvText)
	if err != nil {
		return nil, err
	}

	fields := fieldUnion(header)
	kinds := classifyFields(fields, records)

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		cells := make(map[string]any, len(fields))
		for _, f := range fields {
			v, ok := rec[f]
			if !ok {
				continue
			}
			if kinds[f] == KindDate && v != nil {
				cells[f] = utils.FormatDateTime(v)
				continue
			}
			cells[f] = passThrough(v)
		}
		rows = append(rows, Row{ID: i + 1, Cells: cells})
	}

	ds := &Dataset{Rows: rows, Fields: fields}
	for _, f := range fields {
		if kinds[f] == KindNumeric {
			ds.NumericFields = append(ds.NumericFields, f)
		}
	}
	if len(ds.NumericFields) > 0 {
		ds.FirstMetricField = ds.NumericFields[0]
		total := 0.0
		for _, row := range rows {
			total += utils.AsNumber(row.Cells[ds.FirstMetricField])
		}
		ds.FirstMetricTotal = &total
	}
	return ds, nil
}

// fieldUnion keeps non-blank header names in order of first appearance.
func fieldUnion(header []string) []string {
	seen := make(map[string]bool, len(header))
	fields := make([]string, 0, len(header))
	for _, name := range header {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, name)
	}
	return fields
}

// classifyFields assigns each field a kind by sampling its first non-null
// value across the whole batch. Numeric wins over the date heuristics; the
// classification never changes per row.
func classifyFields(fields []string, records []map[string]any) map[string]FieldKind {
	kinds := make(map[string]FieldKind, len(fields))
	for _, f := range fields {
		kinds[f] = classifyField(f, records)
	}
	return kinds
}

func classifyField(name string, records []map[string]any) FieldKind {
	sample := firstSample(name, records)
	if _, ok := sample.(float64); ok {
		return KindNumeric
	}
	lower := strings.ToLower(name)
	if strings.Contains(lower, "date") || strings.Contains(lower, "time") {
		return KindDate
	}
	switch s := sample.(type) {
	case string:
		if _, ok := utils.ParseDateTime(s); ok {
			return KindDate
		}
	case time.Time:
		return KindDate
	}
	return KindString
}

func firstSample(name string, records []map[string]any) any {
	for _, rec := range records {
		if v, ok := rec[name]; ok && v != nil {
			return v
		}
	}
	return nil
}

// passThrough keeps the inferred primitive types and stringifies anything
// exotic so a Row never carries values the presentation layer cannot render.
func passThrough(v any) any {
	switch v.(type) {
	case nil, string, float64, bool:
		return v
	default:
		return fmt.Sprint(v)
	}
}
