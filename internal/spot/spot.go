// Package spot fetches the XAG/USD spot price from goldapi.io.
//
// The price is a display convenience, never a correctness concern, so every
// failure path degrades to a fallback value instead of an error: missing API
// key, network trouble, or a response without a price all yield the
// fallback. Results are cached briefly to avoid hammering the API.
package spot

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/argentum-labs/stackvault/internal/logger"
)

const (
	// FallbackPrice is used whenever a live quote cannot be fetched.
	FallbackPrice = 69.00

	defaultBaseURL = "https://www.goldapi.io"
	quotePath      = "/api/XAG/USD"
	requestTimeout = 5 * time.Second

	// DefaultCacheTTL bounds how often the API is consulted.
	DefaultCacheTTL = 5 * time.Minute
)

// Config configures a Client.
type Config struct {
	// APIKey is the goldapi.io access token. Empty disables fetching.
	APIKey string
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
	// CacheTTL overrides DefaultCacheTTL.
	CacheTTL time.Duration
	// Log defaults to a no-op logger.
	Log *logger.Logger
}

// Client fetches and caches the silver spot price.
type Client struct {
	http *resty.Client
	key  string
	ttl  time.Duration
	log  *logger.Logger

	mu        sync.Mutex
	price     float64
	fetchedAt time.Time
}

// New builds a Client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(requestTimeout),
		key:  cfg.APIKey,
		ttl:  ttl,
		log:  log,
	}
}

type quoteResponse struct {
	Price *float64 `json:"price"`
}

// Price returns the current XAG/USD spot price. It never fails; when no
// live quote is available the fallback price is returned.
func (c *Client) Price(ctx context.Context) float64 {
	if c.key == "" {
		c.log.Info().Msg("no metals API key configured; using fallback price")
		return FallbackPrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		return c.price
	}

	var quote quoteResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-access-token", c.key).
		SetResult(&quote).
		Get(quotePath)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to fetch spot price; using fallback")
		return FallbackPrice
	}
	if resp.IsError() {
		c.log.Warn().Int("status", resp.StatusCode()).Msg("spot price request rejected; using fallback")
		return FallbackPrice
	}
	if quote.Price == nil {
		c.log.Warn().Msg("spot price response missing price field; using fallback")
		return FallbackPrice
	}

	c.price = *quote.Price
	c.fetchedAt = time.Now()
	return c.price
}
