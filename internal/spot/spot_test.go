package spot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceNoAPIKey(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, FallbackPrice, c.Price(context.Background()))
}

func TestPriceLiveQuote(t *testing.T) {
	var gotToken atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken.Store(r.Header.Get("x-access-token"))
		assert.Equal(t, "/api/XAG/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price": 31.25, "currency": "USD"}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	price := c.Price(context.Background())
	require.Equal(t, 31.25, price)
	assert.Equal(t, "test-key", gotToken.Load())
}

func TestPriceCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price": 31.25}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL, CacheTTL: time.Hour})
	c.Price(context.Background())
	c.Price(context.Background())
	c.Price(context.Background())
	assert.Equal(t, int32(1), calls.Load())
}

func TestPriceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "bad-key", BaseURL: srv.URL})
	assert.Equal(t, FallbackPrice, c.Price(context.Background()))
}

func TestPriceMissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"currency": "USD"}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	assert.Equal(t, FallbackPrice, c.Price(context.Background()))
}

func TestPriceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	assert.Equal(t, FallbackPrice, c.Price(context.Background()))
}
