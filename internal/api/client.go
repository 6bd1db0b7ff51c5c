// Package api implements the REST client for the Polyscope backend.
//
// Every endpoint answers with a uniform envelope: a success payload
// (optionally wrapped as {success, data}) or a failure carrying a
// human-readable message and a machine code. Any non-success envelope or
// transport failure surfaces as a *domain.FetchError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"polyscope/internal/domain"
)

// Client is the Polyscope backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Client.
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new backend API client.
func NewClient(opts ClientOptions) *Client {
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		logger:  log.With().Str("component", "api_client").Logger(),
	}
}

// ListParams are the query parameters for a market listing.
type ListParams struct {
	Limit    int
	Offset   int
	Search   string
	Category string
}

// marketsPayload is the payload shape of listing endpoints.
type marketsPayload struct {
	Markets []domain.Market `json:"markets"`
}

// ListMarkets returns a paginated, optionally filtered market listing.
func (c *Client) ListMarkets(ctx context.Context, params ListParams) ([]domain.Market, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(params.Limit))
	q.Set("offset", strconv.Itoa(params.Offset))
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}

	var payload marketsPayload
	if err := c.get(ctx, "/markets?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Markets, nil
}

// Trending returns the trending market sample used to seed category
// derivation.
func (c *Client) Trending(ctx context.Context, limit int) ([]domain.Market, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var payload marketsPayload
	if err := c.get(ctx, "/markets/trending?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Markets, nil
}

// GetMarket returns a single market by its ID.
func (c *Client) GetMarket(ctx context.Context, id string) (domain.Market, error) {
	var market domain.Market
	if err := c.get(ctx, "/markets/"+url.PathEscape(id), &market); err != nil {
		return domain.Market{}, err
	}
	return market, nil
}

// PredictAll returns the full forecast for a market.
func (c *Client) PredictAll(ctx context.Context, id, timeframe string) (domain.PredictionResult, error) {
	q := url.Values{}
	q.Set("timeframe", timeframe)

	var result domain.PredictionResult
	path := fmt.Sprintf("/markets/%s/predict-all?%s", url.PathEscape(id), q.Encode())
	if err := c.get(ctx, path, &result); err != nil {
		return domain.PredictionResult{}, err
	}
	if result.MarketID == "" {
		result.MarketID = id
	}
	return result, nil
}

// subscribeRequest is the body of an email subscription request. The two
// preference flags are sent verbatim as independent values.
type subscribeRequest struct {
	Email       string                         `json:"email"`
	Preferences domain.SubscriptionPreferences `json:"preferences"`
}

// SubscribeEmail registers an email address for notification alerts.
func (c *Client) SubscribeEmail(ctx context.Context, email string, prefs domain.SubscriptionPreferences) error {
	body, err := json.Marshal(subscribeRequest{Email: email, Preferences: prefs})
	if err != nil {
		return fmt.Errorf("api: encode subscription: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/notifications/email/subscribe", body, nil)
}

// get performs a GET request and decodes the unwrapped payload into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// envelope mirrors the backend's uniform response wrapper. Endpoints
// either wrap their payload as {success, data} or return it raw; both
// shapes decode through here.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.NewFetchError(err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("method", method).Str("path", path).Msg("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("transport failure")
		return domain.NewFetchError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewFetchError(err)
	}

	var env envelope
	// A non-JSON body is tolerated; status code still decides success.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (env.Success != nil && !*env.Success) {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("request failed: %d", resp.StatusCode)
		}
		code := env.Code
		if code == "" {
			code = "REQUEST_FAILED"
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("code", code).Str("path", path).Msg("request failed")
		return &domain.FetchError{Message: msg, Code: code, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}

	// Some endpoints return {success, data}, others the raw payload.
	payload := raw
	if env.Data != nil {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("decode failure")
		return domain.NewFetchError(fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
