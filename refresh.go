package aynaanalytics

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher periodically runs a refresh function. Reset swaps the interval,
// cancelling the previous schedule; a zero interval disables the ticker. The
// refresh function is expected to repopulate caches and never clear data on
// failure.
type Refresher struct {
	mu     sync.Mutex
	fn     func(context.Context)
	logger *slog.Logger
	cancel context.CancelFunc
}

func NewRefresher(fn func(context.Context), logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{fn: fn, logger: logger}
}

// Reset stops any running schedule and, for a positive interval, starts a new
// one. The first run happens after one full interval.
func (r *Refresher) Reset(interval time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if interval <= 0 {
		r.logger.Info("route refresh disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.logger.Info("route refresh scheduled", "interval", interval.String())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.fn(ctx)
			}
		}
	}()
}

// Stop cancels the current schedule, if any.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
