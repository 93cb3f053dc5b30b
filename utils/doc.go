// Package utils provides shared coercion helpers for the analytics pipeline.
//
// It contains:
//   - Safe numeric coercion of loosely typed cell values
//   - Display date/time formatting and parsing
package utils
