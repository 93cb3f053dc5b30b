package ayna

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bluele/gcache"
)

// Options tunes a Source. Zero values mean defaults.
type Options struct {
	Clock      gcache.Clock
	ListTTL    time.Duration
	DetailsTTL time.Duration
	BatchSize  int
	Logger     *slog.Logger
}

// Source is the resilient façade over cache, live candidates and snapshot.
type Source struct {
	client    *Client
	snap      *SnapshotStore
	caches    *cacheSet
	batchSize int
	logger    *slog.Logger
}

const defaultBatchSize = 20

func NewSource(client *Client, snap *SnapshotStore, opts Options) *Source {
	if snap == nil {
		snap = NewSnapshotStore("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Source{
		client:    client,
		snap:      snap,
		caches:    newCacheSet(opts.Clock, opts.ListTTL, opts.DetailsTTL),
		batchSize: batchSize,
		logger:    logger,
	}
}

// candidate is one strategy in an ordered fallback list.
type candidate[T any] func(ctx context.Context) (T, error)

// firstSuccess evaluates candidates in order and returns the first success.
// Per-candidate errors are swallowed; only exhaustion of the whole list is
// surfaced, carrying the joined causes.
func firstSuccess[T any](ctx context.Context, candidates []candidate[T]) (T, error) {
	var zero T
	var causes []error
	for _, c := range candidates {
		v, err := c(ctx)
		if err == nil {
			return v, nil
		}
		causes = append(causes, err)
	}
	return zero, fmt.Errorf("%w: %w", ErrExhausted, errors.Join(causes...))
}

// LoadBusList returns the bus list from cache, live candidates or snapshot.
// It never fails: an unreadable snapshot degrades to an empty list.
func (s *Source) LoadBusList(ctx context.Context) *BusList {
	if bl, ok := s.caches.getList(); ok {
		return bl
	}

	buses, err := firstSuccess(ctx, s.listCandidates())
	bl := &BusList{Buses: buses, Source: OriginLiveAPI}
	if err != nil {
		s.logger.Warn("bus list: live candidates exhausted, using snapshot", "error", err.Error())
		snapBuses, serr := s.snap.BusList()
		if serr != nil {
			s.logger.Error("bus list: snapshot unreadable", "error", serr.Error())
			snapBuses = []BusSummary{}
		}
		bl = &BusList{Buses: snapBuses, Source: OriginSnapshot}
	}
	s.caches.setList(bl)
	return bl
}

func (s *Source) listCandidates() []candidate[[]BusSummary] {
	candidates := make([]candidate[[]BusSummary], 0, len(s.client.Bases()))
	for _, base := range s.client.Bases() {
		candidates = append(candidates, func(ctx context.Context) ([]BusSummary, error) {
			return s.client.FetchBusList(ctx, base)
		})
	}
	return candidates
}

// LoadBusDetails returns one bus's details from cache, live candidates or
// snapshot. forceRefresh bypasses the cache lookup for this one call but a
// success still repopulates the cache. A missing snapshot file during
// fallback surfaces ErrNotFound.
func (s *Source) LoadBusDetails(ctx context.Context, id int, forceRefresh bool) (*BusDetails, error) {
	if !forceRefresh {
		if d, ok := s.caches.getDetails(id); ok {
			return d, nil
		}
	}

	d, err := s.fetchLiveDetails(ctx, id)
	if err != nil {
		s.logger.Warn("bus details: live candidates exhausted, using snapshot",
			"id", id, "error", err.Error())
		snap, serr := s.snap.BusDetails()
		if serr != nil {
			return nil, serr
		}
		snap.Source = OriginSnapshot
		snap.Features = FeaturesForBus(snap)
		d = snap
	}
	s.caches.setDetails(id, d)
	return d, nil
}

// fetchLiveDetails tries every base in order and tags a success as live.
func (s *Source) fetchLiveDetails(ctx context.Context, id int) (*BusDetails, error) {
	candidates := make([]candidate[*BusDetails], 0, len(s.client.Bases()))
	for _, base := range s.client.Bases() {
		candidates = append(candidates, func(ctx context.Context) (*BusDetails, error) {
			return s.client.FetchBusByID(ctx, base, id)
		})
	}
	d, err := firstSuccess(ctx, candidates)
	if err != nil {
		return nil, err
	}
	d.Source = OriginLiveAPI
	d.Features = FeaturesForBus(d)
	return d, nil
}

// ClearCache empties both caches unconditionally. Used before a manual
// "refresh now" action.
func (s *Source) ClearCache() {
	s.caches.reset()
}
