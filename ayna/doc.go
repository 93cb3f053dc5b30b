/*
Package ayna is the resilient data-access layer for the AYNA bus API.

Every load goes through the same ladder: a fresh in-memory cache hit, then
each candidate API base URL strictly in sequence, then a bundled static
snapshot as the final fallback. Per-candidate failures (timeout, non-2xx,
bad payload) are swallowed and logged, never surfaced individually; a result
carries an Origin tag saying which rung produced it.

Caching is time-boxed: a single-slot bus-list cache (5 minutes) and a per-id
details cache (90 seconds). Entries are whole-object swaps, so readers see
either a fully populated unexpired value or nothing. The clock is injectable
for tests.

Bulk detail loading for the route map splits ids into fixed-size batches;
requests inside one batch run concurrently, batches run sequentially, which
bounds the in-flight request count to the batch size.
*/
package ayna
