package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/omarshaarawi/livescore/internal/config"
	"github.com/omarshaarawi/livescore/internal/metrics"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrDecode           = errors.New("decoding response")
)

// FetchError is returned for every failed upstream call. StatusCode is zero
// when the request never got a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Transport() bool {
	return e.StatusCode == 0
}

func (e *FetchError) kind() string {
	switch {
	case e.Transport():
		return "transport"
	case errors.Is(e.Err, ErrDecode):
		return "decode"
	default:
		return "status"
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewClient(cfg config.SleeperAPI, m *metrics.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, 4),
		metrics:    m,
		logger:     logger,
	}
}

// Get fetches baseURL+endpoint, bypassing HTTP caches, and decodes the JSON
// body into result. resource labels the call in metrics.
func (c *Client) Get(ctx context.Context, resource, endpoint string, result any) error {
	url := c.baseURL + endpoint

	if err := c.limiter.Wait(ctx); err != nil {
		return &FetchError{URL: url, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	start := time.Now()
	defer c.metrics.ObserveUpstream(resource, start)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(resource, &FetchError{URL: url, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(resource, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus})
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return c.fail(resource, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %w", ErrDecode, err)})
	}

	return nil
}

func (c *Client) fail(resource string, err *FetchError) error {
	c.metrics.UpstreamFailed(resource, err.kind())
	c.logger.Debug("Sleeper request failed", "resource", resource, "url", err.URL, "status", err.StatusCode, "error", err.Err)
	return err
}
