// Package worker runs CSV parsing off the request path. A single background
// goroutine fetches and normalizes check-in CSVs and publishes typed results;
// a generation counter drops completions that were superseded while in flight.
package worker
