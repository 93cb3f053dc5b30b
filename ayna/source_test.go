package ayna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bluele/gcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI serves the two bus endpoints and counts hits per path.
type fakeAPI struct {
	listCalls    atomic.Int64
	detailsCalls atomic.Int64
	failDetails  map[int]bool
	buses        []map[string]any
}

func newFakeAPI(ids ...int) *fakeAPI {
	api := &fakeAPI{failDetails: map[int]bool{}}
	for _, id := range ids {
		api.buses = append(api.buses, map[string]any{"id": id, "number": strconv.Itoa(id)})
	}
	return api
}

func (a *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bus/getBusList", func(w http.ResponseWriter, r *http.Request) {
		a.listCalls.Add(1)
		_ = json.NewEncoder(w).Encode(a.buses)
	})
	mux.HandleFunc("/api/bus/getBusById", func(w http.ResponseWriter, r *http.Request) {
		a.detailsCalls.Add(1)
		id, _ := strconv.Atoi(r.URL.Query().Get("id"))
		if a.failDetails[id] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     id,
			"number": strconv.Itoa(id),
			"routes": []map[string]any{
				{
					"id":              id * 10,
					"code":            fmt.Sprintf("%d-1", id),
					"directionTypeId": 1,
					"flowCoordinates": []map[string]float64{
						{"lat": 40.40, "lng": 49.80},
						{"lat": 40.41, "lng": 49.81},
					},
				},
			},
		})
	})
	return mux
}

func newTestSource(t *testing.T, bases []string, opts Options) *Source {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	client := NewClient(bases, 2*time.Second, opts.Logger)
	return NewSource(client, NewSnapshotStore(""), opts)
}

func TestLoadBusListLive(t *testing.T) {
	api := newFakeAPI(1, 2, 3)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	source := newTestSource(t, []string{srv.URL}, Options{})
	bl := source.LoadBusList(context.Background())

	assert.Equal(t, OriginLiveAPI, bl.Source)
	require.Len(t, bl.Buses, 3)
	assert.Equal(t, BusSummary{ID: 1, Number: "1"}, bl.Buses[0])
}

func TestLoadBusListSnapshotFallbackNeverFails(t *testing.T) {
	// Both candidate bases refuse connections.
	source := newTestSource(t, []string{"http://127.0.0.1:1", "http://127.0.0.1:2"}, Options{})

	bl := source.LoadBusList(context.Background())

	assert.Equal(t, OriginSnapshot, bl.Source)
	assert.NotEmpty(t, bl.Buses)
	// The snapshot entry without a number gets the stringified id.
	last := bl.Buses[len(bl.Buses)-1]
	assert.Equal(t, "210", last.Number)
}

func TestLoadBusListSecondCandidateWins(t *testing.T) {
	api := newFakeAPI(7)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	source := newTestSource(t, []string{"http://127.0.0.1:1", srv.URL}, Options{})
	bl := source.LoadBusList(context.Background())

	assert.Equal(t, OriginLiveAPI, bl.Source)
	require.Len(t, bl.Buses, 1)
	assert.Equal(t, 7, bl.Buses[0].ID)
}

func TestLoadBusListCached(t *testing.T) {
	api := newFakeAPI(1)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	source := newTestSource(t, []string{srv.URL}, Options{})
	source.LoadBusList(context.Background())
	source.LoadBusList(context.Background())

	assert.Equal(t, int64(1), api.listCalls.Load())
}

func TestLoadBusDetailsCacheTTL(t *testing.T) {
	api := newFakeAPI(7)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	clock := gcache.NewFakeClock()
	source := newTestSource(t, []string{srv.URL}, Options{Clock: clock})
	ctx := context.Background()

	// Two loads inside the TTL perform exactly one network call.
	first, err := source.LoadBusDetails(ctx, 7, false)
	require.NoError(t, err)
	assert.Equal(t, OriginLiveAPI, first.Source)

	_, err = source.LoadBusDetails(ctx, 7, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), api.detailsCalls.Load())

	// A third load after expiry re-fetches.
	clock.Advance(91 * time.Second)
	_, err = source.LoadBusDetails(ctx, 7, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), api.detailsCalls.Load())
}

func TestLoadBusDetailsForceRefresh(t *testing.T) {
	api := newFakeAPI(7)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	source := newTestSource(t, []string{srv.URL}, Options{})
	ctx := context.Background()

	_, err := source.LoadBusDetails(ctx, 7, false)
	require.NoError(t, err)
	_, err = source.LoadBusDetails(ctx, 7, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), api.detailsCalls.Load())

	// The forced result repopulated the cache.
	_, err = source.LoadBusDetails(ctx, 7, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), api.detailsCalls.Load())
}

func TestLoadBusDetailsSnapshotFallback(t *testing.T) {
	source := newTestSource(t, []string{"http://127.0.0.1:1"}, Options{})

	d, err := source.LoadBusDetails(context.Background(), 65, false)
	require.NoError(t, err)

	assert.Equal(t, OriginSnapshot, d.Source)
	assert.Equal(t, "65", d.Number)
	assert.NotEmpty(t, d.Features)
}

func TestClearCache(t *testing.T) {
	api := newFakeAPI(1)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	source := newTestSource(t, []string{srv.URL}, Options{})
	ctx := context.Background()

	source.LoadBusList(ctx)
	_, _ = source.LoadBusDetails(ctx, 1, false)
	source.ClearCache()
	source.LoadBusList(ctx)
	_, _ = source.LoadBusDetails(ctx, 1, false)

	assert.Equal(t, int64(2), api.listCalls.Load())
	assert.Equal(t, int64(2), api.detailsCalls.Load())
}

func TestLoadRouteFeaturesBatch(t *testing.T) {
	api := newFakeAPI(1, 2, 3, 4)
	api.failDetails[3] = true
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	source := newTestSource(t, []string{srv.URL}, Options{BatchSize: 2})
	features, origin := source.LoadRouteFeatures(context.Background())

	assert.Equal(t, OriginLiveAPI, origin)
	// One feature per bus, minus the failing one.
	assert.Len(t, features, 3)
}

func TestLoadRouteFeaturesSnapshotFallback(t *testing.T) {
	source := newTestSource(t, []string{"http://127.0.0.1:1"}, Options{})

	features, origin := source.LoadRouteFeatures(context.Background())

	assert.Equal(t, OriginSnapshot, origin)
	// The snapshot bus has two directions with valid geometry.
	assert.Len(t, features, 2)
}

func TestFirstSuccessOrder(t *testing.T) {
	calls := []string{}
	candidates := []candidate[string]{
		func(ctx context.Context) (string, error) {
			calls = append(calls, "a")
			return "", fmt.Errorf("%w: a down", ErrNetwork)
		},
		func(ctx context.Context) (string, error) {
			calls = append(calls, "b")
			return "b-wins", nil
		},
		func(ctx context.Context) (string, error) {
			calls = append(calls, "c")
			return "c", nil
		},
	}

	v, err := firstSuccess(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, "b-wins", v)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestFirstSuccessExhaustion(t *testing.T) {
	candidates := []candidate[int]{
		func(ctx context.Context) (int, error) { return 0, fmt.Errorf("%w: down", ErrNetwork) },
	}

	_, err := firstSuccess(context.Background(), candidates)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, ErrNetwork)
}
