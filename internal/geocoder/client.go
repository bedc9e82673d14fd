// Package geocoder is the HTTP client for the external geocoding provider.
//
// One Search call issues at most one GET; nothing is retried. 4xx answers
// map onto the package's sentinel errors so the caller can tell a bad
// address from a bad credential or a throttled key.
package geocoder

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rotisserie/eris"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/locality-resolver/internal/metrics"
)

const (
	DefaultBaseURL   = "https://us1.locationiq.com/v1"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "locality-resolver/1.0"

	defaultLimiterCacheSize = 256
	maxBodyBytes            = 1 << 20
)

// Options configures the provider client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// RateLimit is requests per second per API key; <= 0 disables throttling.
	RateLimit        float64
	RateBurst        int
	LimiterCacheSize int

	Breaker BreakerOptions
}

// Client implements Provider against a LocationIQ-compatible /search endpoint.
type Client struct {
	http     *http.Client
	opts     Options
	endpoint *url.URL
	limiters *lru.Cache[string, *rate.Limiter]
	breaker  *gobreaker.CircuitBreaker[[]Place]
	logger   *zap.Logger
}

// NewClient creates a provider client.
func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}
	if opts.LimiterCacheSize <= 0 {
		opts.LimiterCacheSize = defaultLimiterCacheSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, eris.Wrapf(err, "geocoder: invalid base url %q", opts.BaseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, eris.Errorf("geocoder: base url %q must be absolute", opts.BaseURL)
	}

	limiters, err := lru.New[string, *rate.Limiter](opts.LimiterCacheSize)
	if err != nil {
		return nil, eris.Wrap(err, "geocoder: create limiter cache")
	}

	c := &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:     opts,
		endpoint: base.JoinPath("search"),
		limiters: limiters,
		logger:   logger,
	}
	if opts.Breaker.Enabled {
		c.breaker = newBreaker(opts.Breaker, logger)
	}
	return c, nil
}

// Search geocodes query, asking for the single best match with a normalized
// address and the full address breakdown.
func (c *Client) Search(ctx context.Context, query, apiKey string) ([]Place, error) {
	if err := c.throttle(ctx, apiKey); err != nil {
		return nil, err
	}
	if c.breaker == nil {
		return c.search(ctx, query, apiKey)
	}

	places, err := c.breaker.Execute(func() ([]Place, error) {
		return c.search(ctx, query, apiKey)
	})
	if eris.Is(err, gobreaker.ErrOpenState) || eris.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, eris.Wrap(err, "geocoder: provider unavailable")
	}
	return places, err
}

func (c *Client) search(ctx context.Context, query, apiKey string) ([]Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query, apiKey), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocoder: build request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest("error", time.Since(start))
		// url.Error carries the full URL, which includes the key
		return nil, eris.Wrap(unwrapURLError(err), "geocoder: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.RecordUpstreamRequest(strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, eris.Wrap(err, "geocoder: read response")
	}

	c.logger.Debug("Geocoder response",
		zap.String("host", c.endpoint.Host),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusNotFound:
		return nil, eris.Wrapf(ErrNoResults, "status %d: %s", resp.StatusCode, providerMessage(body))
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, eris.Wrapf(ErrUnauthorized, "status %d: %s", resp.StatusCode, providerMessage(body))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, eris.Wrapf(ErrRateLimited, "status %d: %s", resp.StatusCode, providerMessage(body))
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: providerMessage(body)}
	}

	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, eris.Wrap(err, "geocoder: decode response")
	}
	if len(places) > 1 {
		places = places[:1]
	}
	return places, nil
}

func (c *Client) searchURL(query, apiKey string) string {
	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("normalizeaddress", "1")
	q.Set("addressdetails", "1")

	u := *c.endpoint
	u.RawQuery = q.Encode()
	return u.String()
}

// providerMessage extracts {"error": "..."} from a body, falling back to the
// trimmed raw text.
func providerMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func unwrapURLError(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}
	return err
}
