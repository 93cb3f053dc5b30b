package checkin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrParse marks malformed CSV input. Only the first parser error is
// reported; a bad batch is rejected as a whole.
var ErrParse = errors.New("csv parse error")

// parseRecords reads header-first CSV text into loosely typed record maps.
// Blank lines are skipped, ragged rows keep whatever cells they have, and
// each cell goes through inferCell.
func parseRecords(csvText string) ([]string, []map[string]any, error) {
	r := csv.NewReader(strings.NewReader(csvText))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []map[string]any
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		cells := make(map[string]any, len(header))
		for i, name := range header {
			if name == "" || i >= len(rec) {
				continue
			}
			cells[name] = inferCell(rec[i])
		}
		records = append(records, cells)
	}
	return header, records, nil
}

// inferCell applies automatic type inference to one raw cell: empty becomes
// nil, numbers become float64, "true"/"false" become bool, everything else
// stays a string.
func inferCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}
