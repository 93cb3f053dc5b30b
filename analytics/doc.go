// Package analytics derives chart-ready series from normalized check-in rows.
//
// Columns are located by fuzzy, case-insensitive matching against field names
// rather than exact keys, so exports with slightly different headers
// ("TotalCount", "total_count", "Total") keep working. A category whose
// source column is missing is omitted from the output, never zero-filled.
package analytics
