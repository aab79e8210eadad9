package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-insights/internal/config"
	"github.com/bimakw/wallet-insights/internal/domain/repositories"
)

var (
	explorerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_requests_total",
			Help: "Total number of requests issued to the block-explorer API",
		},
		[]string{"stream", "status"},
	)

	explorerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_request_duration_seconds",
			Help:    "Block-explorer API request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"stream"},
	)
)

// maxErrorBodyBytes bounds how much of an upstream error body is carried
// in the returned error message.
const maxErrorBodyBytes = 512

// Client talks to a Blockscout-style block-explorer HTTP API
type Client struct {
	httpClient *http.Client
	cfg        config.ExplorerConfig
	baseURL    string
	logger     *zap.Logger
}

var _ repositories.ExplorerRepository = (*Client)(nil)

// NewClient creates a new explorer API client
func NewClient(cfg config.ExplorerConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
	}
}

// getJSON issues one GET against the explorer and decodes the JSON body
// into dest. Any non-2xx status is an error carrying the status and a
// truncated response body; nothing is retried.
func (c *Client) getJSON(ctx context.Context, stream, path string, query url.Values, dest interface{}) error {
	reqURL := c.baseURL + "/" + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build explorer request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		explorerRequestsTotal.WithLabelValues(stream, "error").Inc()
		return fmt.Errorf("explorer request failed: %w", err)
	}
	defer resp.Body.Close()

	explorerRequestDuration.WithLabelValues(stream).Observe(time.Since(start).Seconds())
	explorerRequestsTotal.WithLabelValues(stream, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("explorer returned status %d for %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	dec := json.NewDecoder(resp.Body)
	// Cursor fields must round-trip without float mangling
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("failed to decode explorer response for %s: %w", path, err)
	}

	return nil
}

// HealthCheck probes explorer reachability. Any HTTP response counts as
// reachable; only transport failures are reported.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("explorer unreachable: %w", err)
	}
	resp.Body.Close()

	return nil
}
