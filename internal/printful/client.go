package printful

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

	"github.com/rs/zerolog"
	"vatreport/internal/logger"
	"vatreport/internal/metrics"
	"vatreport/pkg/models"
)

// DefaultBaseURL is the public Printful API endpoint.
const DefaultBaseURL = "https://api.printful.com"

// ClientConfig holds configuration for the Printful REST client.
type ClientConfig struct {
	// BaseURL is the API root. Default: DefaultBaseURL.
	BaseURL string

	// APIKey is the private token sent as a bearer credential.
	APIKey string

	// Timeout bounds a single HTTP request. Default: 30 seconds.
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client (Timeout is then ignored).
	HTTPClient *http.Client
}

// Client is a minimal Printful REST client for the orders collection.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// OrdersPage is one page of GET /orders.
type OrdersPage struct {
	Result []models.Order `json:"result"`
	Paging *Paging        `json:"paging"`
}

// Paging is the pagination block of a list response.
type Paging struct {
	Total  *int `json:"total"`
	Offset int  `json:"offset"`
	Limit  int  `json:"limit"`
}

// NewClient constructs a Printful client.
func NewClient(cfg ClientConfig) (*Client, error) {
	const op = "NewClient"

	if cfg.APIKey == "" {
		return nil, NewAPIError(op, ErrMissingAPIKey, "")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, NewAPIError(op, err, "invalid base URL")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		log:        logger.WithComponent("printful"),
	}, nil
}

// ListOrders requests one page of orders. Printful returns orders newest first.
func (c *Client) ListOrders(ctx context.Context, offset, limit int) (*OrdersPage, error) {
	const op = "ListOrders"

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	endpoint := c.baseURL + "/orders?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, WrapAPIError(op, err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().
		Int("offset", offset).
		Int("limit", limit).
		Msg("Requesting orders page")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObservePageRequest(metrics.ResultError, time.Since(startTime))
		return nil, WrapAPIError(op, err, fmt.Sprintf("offset %d", offset))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObservePageRequest(metrics.ResultError, time.Since(startTime))
		c.log.Error().
			Int("status", resp.StatusCode).
			Int("offset", offset).
			Msg("Failed to retrieve orders")
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchFailedError{StatusCode: resp.StatusCode, Offset: offset}
	}

	var page OrdersPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		metrics.ObservePageRequest(metrics.ResultError, time.Since(startTime))
		return nil, NewAPIError(op, ErrInvalidResponse, err.Error())
	}
	if page.Paging == nil || page.Paging.Total == nil {
		metrics.ObservePageRequest(metrics.ResultError, time.Since(startTime))
		return nil, NewAPIError(op, ErrInvalidResponse, "missing paging.total")
	}

	metrics.ObservePageRequest(metrics.ResultSuccess, time.Since(startTime))
	c.log.Debug().
		Int("offset", offset).
		Int("orders", len(page.Result)).
		Int("total", *page.Paging.Total).
		Dur("duration", time.Since(startTime)).
		Msg("Orders page received")

	return &page, nil
}
