package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyscope/internal/domain"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(ClientOptions{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		RequestsPerSec: 100,
	})
	return c, srv
}

func TestListMarketsUnwrapsEnvelope(t *testing.T) {
	var gotQuery string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/markets", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"markets":[{"marketId":"m1","title":"Fed cut"}]}}`))
	}))
	defer srv.Close()

	markets, err := c.ListMarkets(context.Background(), ListParams{Limit: 15, Offset: 30, Search: "fed", Category: "Economy"})
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "m1", markets[0].ID)
	assert.Contains(t, gotQuery, "limit=15")
	assert.Contains(t, gotQuery, "offset=30")
	assert.Contains(t, gotQuery, "search=fed")
	assert.Contains(t, gotQuery, "category=Economy")
}

func TestListMarketsOmitsEmptyFilters(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("search"))
		assert.False(t, r.URL.Query().Has("category"))
		w.Write([]byte(`{"markets":[]}`))
	}))
	defer srv.Close()

	_, err := c.ListMarkets(context.Background(), ListParams{Limit: 15})
	require.NoError(t, err)
}

func TestRawPayloadWithoutEnvelope(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets/m%2F1", r.URL.EscapedPath())
		w.Write([]byte(`{"marketId":"m/1","title":"Raw"}`))
	}))
	defer srv.Close()

	market, err := c.GetMarket(context.Background(), "m/1")
	require.NoError(t, err)
	assert.Equal(t, "Raw", market.Title)
}

func TestErrorEnvelopeBecomesFetchError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream unavailable","code":"UPSTREAM_DOWN"}`))
	}))
	defer srv.Close()

	_, err := c.ListMarkets(context.Background(), ListParams{Limit: 15})
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "upstream unavailable", fe.Message)
	assert.Equal(t, "UPSTREAM_DOWN", fe.Code)
	assert.Equal(t, http.StatusBadGateway, fe.Status)
}

func TestSuccessFalseWith200IsStillAnError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"market expired"}`))
	}))
	defer srv.Close()

	_, err := c.GetMarket(context.Background(), "m1")
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "market expired", fe.Message)
	assert.Equal(t, "REQUEST_FAILED", fe.Code, "code defaults when the envelope omits one")
}

func TestNonJSONErrorBodyGetsStatusMessage(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("<html>503</html>"))
	}))
	defer srv.Close()

	_, err := c.ListMarkets(context.Background(), ListParams{Limit: 15})
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "request failed: 503", fe.Message)
}

func TestPredictAllBackfillsMarketID(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "daily", r.URL.Query().Get("timeframe"))
		w.Write([]byte(`{"success":true,"data":{"yes_probability":62,"no_probability":38,"confidence":80}}`))
	}))
	defer srv.Close()

	result, err := c.PredictAll(context.Background(), "m9", "daily")
	require.NoError(t, err)
	assert.Equal(t, "m9", result.MarketID)
	assert.InDelta(t, 62.0, result.YesProbability, 1e-9)
	assert.Equal(t, 80, result.Confidence)
}

func TestSubscribeEmailSendsBothPreferences(t *testing.T) {
	var got subscribeRequest
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications/email/subscribe", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	err := c.SubscribeEmail(context.Background(), "a@b.co", domain.SubscriptionPreferences{
		Immediate:   true,
		DailyDigest: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", got.Email)
	assert.True(t, got.Preferences.Immediate)
	assert.True(t, got.Preferences.DailyDigest, "both flags travel independently")
}

func TestTrendingPath(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets/trending", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"markets":[{"marketId":"t1"}]}`))
	}))
	defer srv.Close()

	markets, err := c.Trending(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "t1", markets[0].ID)
}
