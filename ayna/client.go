package ayna

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	busListPath = "/api/bus/getBusList"
	busByIDPath = "/api/bus/getBusById"

	defaultTimeout = 8 * time.Second
)

// DefaultBaseURLs is the fixed candidate pair used when no override is
// configured: the local dev proxy first, the public API second.
var DefaultBaseURLs = []string{
	"http://127.0.0.1:8010/ayna",
	"https://map.ayna.az",
}

// Client fetches from one or more candidate AYNA API base URLs with a bounded
// per-request timeout.
type Client struct {
	httpClient *http.Client
	bases      []string
	logger     *slog.Logger
}

// NewClient builds a client over the given candidate bases. Empty bases fall
// back to DefaultBaseURLs, a non-positive timeout to the default.
func NewClient(bases []string, timeout time.Duration, logger *slog.Logger) *Client {
	if len(bases) == 0 {
		bases = DefaultBaseURLs
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		bases:      bases,
		logger:     logger,
	}
}

// Bases returns the ordered candidate base URLs.
func (c *Client) Bases() []string { return c.bases }

// FetchBusList fetches the bus list from a single base.
func (c *Client) FetchBusList(ctx context.Context, base string) ([]BusSummary, error) {
	var raw []busSummaryJSON
	if err := c.getJSON(ctx, base, busListPath, nil, &raw); err != nil {
		return nil, err
	}
	buses := make([]BusSummary, 0, len(raw))
	for _, r := range raw {
		buses = append(buses, r.summary())
	}
	return buses, nil
}

// FetchBusByID fetches the full record for one bus from a single base.
func (c *Client) FetchBusByID(ctx context.Context, base string, id int) (*BusDetails, error) {
	query := url.Values{"id": []string{strconv.Itoa(id)}}
	var details BusDetails
	if err := c.getJSON(ctx, base, busByIDPath, query, &details); err != nil {
		return nil, err
	}
	if strings.TrimSpace(details.Number) == "" {
		details.Number = strconv.Itoa(details.ID)
	}
	return &details, nil
}

func (c *Client) getJSON(ctx context.Context, base, path string, query url.Values, out any) error {
	u := strings.TrimRight(base, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: HTTP %d from %s", ErrNetwork, resp.StatusCode, u)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrNetwork, u, err)
	}
	return nil
}
