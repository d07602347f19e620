// Package search wraps the comparable-sales marketplace API. The engine
// treats its responses as untrusted and unordered; fields may be missing.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/config"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/types"
)

const responseBodyReadLimit int64 = 4 << 20

var errBaseURLRequired = errors.New("search base url is required")

// Filters narrows a comparable-sales query.
type Filters struct {
	PriceMin      *float64
	PriceMax      *float64
	Condition     string
	CategoryHints []string
}

// Client is the search surface the valuation engine consumes.
type Client interface {
	Search(ctx context.Context, query string, filters Filters) ([]types.CandidateItem, error)
}

// HTTPClient talks to the marketplace's sold-listings search endpoint.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewHTTPClient builds the search client from configuration.
func NewHTTPClient(cfg config.SearchConfig, opts ...Option) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title     string   `json:"title"`
	Price     *float64 `json:"price"`
	Condition string   `json:"condition"`
	URL       string   `json:"url"`
	ImageURL  string   `json:"image_url"`
}

// Search runs one sold-listings query. The caller owns the timeout via ctx.
func (c *HTTPClient) Search(ctx context.Context, query string, filters Filters) ([]types.CandidateItem, error) {
	endpoint, err := c.buildURL(query, filters)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	items := make([]types.CandidateItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		candidate := types.CandidateItem{
			Title:     strings.TrimSpace(item.Title),
			Condition: item.Condition,
			URL:       item.URL,
			ImageURL:  item.ImageURL,
		}
		if item.Price != nil {
			candidate.Price = *item.Price
		}
		items = append(items, candidate)
	}
	return items, nil
}

func (c *HTTPClient) buildURL(query string, filters Filters) (string, error) {
	parsed, err := url.Parse(c.baseURL + "/sold-listings/search")
	if err != nil {
		return "", fmt.Errorf("parsing search url: %w", err)
	}

	q := parsed.Query()
	q.Set("q", query)
	if filters.PriceMin != nil {
		q.Set("price_min", strconv.FormatFloat(*filters.PriceMin, 'f', 2, 64))
	}
	if filters.PriceMax != nil {
		q.Set("price_max", strconv.FormatFloat(*filters.PriceMax, 'f', 2, 64))
	}
	if filters.Condition != "" {
		q.Set("condition", filters.Condition)
	}
	for _, hint := range filters.CategoryHints {
		q.Add("category", hint)
	}
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}
