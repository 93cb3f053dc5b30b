/*
Package checkin normalizes raw transit check-in CSV exports into typed,
display-ready rows.

The engine is deliberately forgiving about the shape of the input: headers are
taken from the first record, ragged rows contribute only the cells they have,
and every cell goes through automatic type inference (numbers become float64,
"true"/"false" become bool, empty cells become nil). Columns are classified
once per batch as numeric, date-like or plain string; date-like columns are
rendered uniformly as DD.MM.YYYY HH:MM for display.

Typical usage:

	text, err := checkin.FetchCSV(ctx, httpClient, csvURL)
	if err != nil {
	    // network failure, caller presents it
	}
	ds, err := checkin.Normalize(text)
	if err != nil {
	    // first parser error, fail-fast
	}
	summary := analytics.Summarize(ds)

Rows are immutable once produced; a re-parse always builds a fresh Dataset.
*/
package checkin
