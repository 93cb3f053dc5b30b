package ayna

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/senan-sh/ayna-analytics/routegeo"
)

// LoadRouteFeatures loads details for every listed bus and flattens them into
// route features. Zero ids or zero features from the live path counts as a
// failure and falls through to the snapshot; an unreadable snapshot degrades
// to an empty result.
func (s *Source) LoadRouteFeatures(ctx context.Context) ([]routegeo.Feature, Origin) {
	bl := s.LoadBusList(ctx)
	ids := make([]int, 0, len(bl.Buses))
	for _, b := range bl.Buses {
		ids = append(ids, b.ID)
	}

	if len(ids) > 0 {
		var features []routegeo.Feature
		for _, d := range s.fetchDetailsBatched(ctx, ids) {
			features = append(features, d.Features...)
		}
		if len(features) > 0 {
			return features, OriginLiveAPI
		}
	}

	snap, err := s.snap.BusDetails()
	if err != nil {
		s.logger.Error("route features: snapshot unreadable", "error", err.Error())
		return []routegeo.Feature{}, OriginSnapshot
	}
	return FeaturesForBus(snap), OriginSnapshot
}

// fetchDetailsBatched fetches details in fixed-size batches. Requests inside
// one batch run concurrently, batches run sequentially. A failing request is
// logged and excluded, it never aborts its batch.
func (s *Source) fetchDetailsBatched(ctx context.Context, ids []int) []*BusDetails {
	var out []*BusDetails
	for start := 0; start < len(ids); start += s.batchSize {
		end := min(start+s.batchSize, len(ids))
		chunk := ids[start:end]
		results := make([]*BusDetails, len(chunk))

		var g errgroup.Group
		for i, id := range chunk {
			i, id := i, id
			g.Go(func() error {
				if d, ok := s.caches.getDetails(id); ok {
					results[i] = d
					return nil
				}
				d, err := s.fetchLiveDetails(ctx, id)
				if err != nil {
					s.logger.Warn("bus details batch: fetch failed", "id", id, "error", err.Error())
					return nil
				}
				s.caches.setDetails(id, d)
				results[i] = d
				return nil
			})
		}
		_ = g.Wait()

		for _, d := range results {
			if d != nil {
				out = append(out, d)
			}
		}
	}
	return out
}
