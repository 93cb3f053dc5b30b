package ayna

import "errors"

var (
	// ErrNetwork marks a failed fetch: transport error, timeout or non-2xx.
	ErrNetwork = errors.New("network error")

	// ErrNotFound marks a missing snapshot file during a fallback read.
	ErrNotFound = errors.New("not found")

	// ErrExhausted marks a load where every candidate source failed.
	ErrExhausted = errors.New("all sources exhausted")
)
