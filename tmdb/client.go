package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ImageBaseURL is the root for poster and backdrop images
const ImageBaseURL = "https://image.tmdb.org/t/p/"

// Params holds request parameters; values are rendered with fmt.Sprint
type Params map[string]any

// Client represents a TMDB API client
type Client struct {
	baseURL     string
	bearerToken string
	apiKey      string
	language    string
	httpClient  *http.Client
	cache       *responseCache
	group       singleflight.Group
	logger      zerolog.Logger
}

// NewClient creates a new TMDB client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: TMDB base URL is required", ErrInvalidConfig)
	}

	options := clientOptions{
		timeout:   DefaultTimeout,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.bearerToken == "" && options.apiKey == "" {
		return nil, fmt.Errorf("%w: a TMDB bearer token or API key is required", ErrInvalidConfig)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: options.bearerToken,
		apiKey:      options.apiKey,
		language:    options.language,
		httpClient:  httpClient,
		logger:      logger,
	}

	if options.cacheTTL > 0 {
		client.cache = newResponseCache(options.cacheTTL, options.cacheSize)
	}

	return client, nil
}

// Fetch retrieves one page of an endpoint and returns its results.
// A response without results yields an empty ResultSet.
func (c *Client) Fetch(ctx context.Context, endpoint string, params Params) (ResultSet, error) {
	page, err := c.FetchPage(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// FetchPage retrieves one page of an endpoint along with its paging metadata
func (c *Client) FetchPage(ctx context.Context, endpoint string, params Params) (*Page, error) {
	values := c.encodeParams(params)

	return load(ctx, c, cacheKey(endpoint, values), (*Page).clone, func(ctx context.Context) (*Page, error) {
		var env envelope
		if err := c.doRequest(ctx, endpoint, values, &env); err != nil {
			return nil, err
		}

		page := env.toPage()
		c.logger.Debug().
			Str("endpoint", endpoint).
			Int("page", page.Number).
			Int("count", len(page.Results)).
			Msg("Retrieved movies from TMDB")
		return page, nil
	})
}

// Details retrieves the full record of a single movie
func (c *Client) Details(ctx context.Context, id int) (*MovieDetails, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMovieID, id)
	}

	endpoint := fmt.Sprintf("/movie/%d", id)
	values := c.encodeParams(nil)

	return load(ctx, c, cacheKey(endpoint, values), (*MovieDetails).Clone, func(ctx context.Context) (*MovieDetails, error) {
		var details MovieDetails
		if err := c.doRequest(ctx, endpoint, values, &details); err != nil {
			return nil, err
		}
		return &details, nil
	})
}

// TestConnection verifies the credentials against the configuration endpoint
func (c *Client) TestConnection(ctx context.Context) error {
	var out struct {
		Images struct {
			SecureBaseURL string `json:"secure_base_url"`
		} `json:"images"`
	}
	return c.doRequest(ctx, "/configuration", c.encodeParams(nil), &out)
}

// ClearCache drops every cached response
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// load serves key from the cache, or runs fetch once for all concurrent callers
// of the same key. Callers always receive their own copy.
//
// The shared fetch runs detached from any single caller's cancellation and is
// bounded by the HTTP client timeout. A caller whose ctx ends stops waiting
// without failing the others.
func load[T any](ctx context.Context, c *Client, key string, clone func(T) T, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			c.logger.Debug().Str("key", key).Msg("Serving TMDB response from cache")
			return clone(cached.(T)), nil
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		result, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			c.cache.Put(key, result)
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		return zero, normalizeError(0, nil, fmt.Errorf("request canceled: %w", ctx.Err()))
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return clone(res.Val.(T)), nil
	}
}

func cacheKey(endpoint string, values url.Values) string {
	return endpoint + "?" + values.Encode()
}

// encodeParams renders params as query values and applies the default language
func (c *Client) encodeParams(params Params) url.Values {
	values := url.Values{}
	for key, value := range params {
		if value == nil {
			continue
		}
		values.Set(key, fmt.Sprint(value))
	}

	if c.language != "" && values.Get("language") == "" {
		values.Set("language", c.language)
	}

	return values
}

// doRequest performs an authenticated GET and decodes a successful body into out
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) error {
	requestID := uuid.NewString()

	query := make(url.Values, len(params)+1)
	for key, value := range params {
		query[key] = value
	}
	if c.bearerToken == "" {
		query.Set("api_key", c.apiKey)
	}

	requestURL := c.baseURL + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return c.fail(requestID, endpoint, normalizeError(0, nil, fmt.Errorf("failed to create request: %w", err)))
	}

	req.Header.Set("Accept", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("endpoint", endpoint).
		Str("params", params.Encode()).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(requestID, endpoint, normalizeError(0, nil, fmt.Errorf("request failed: %w", err)))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(requestID, endpoint, normalizeError(resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.fail(requestID, endpoint, normalizeError(resp.StatusCode, body, nil))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return c.fail(requestID, endpoint, normalizeError(resp.StatusCode, body, fmt.Errorf("failed to parse response: %w", err)))
	}

	return nil
}

// fail logs the upstream failure before handing the normalized error to the caller
func (c *Client) fail(requestID, endpoint string, remoteErr *RemoteError) error {
	event := c.logger.Error().
		Str("request_id", requestID).
		Str("endpoint", endpoint).
		Str("kind", remoteErr.Kind.String())
	if remoteErr.StatusCode != 0 {
		event = event.Int("status", remoteErr.StatusCode)
	}
	if remoteErr.Payload != "" {
		event = event.Str("payload", remoteErr.Payload)
	}
	event.Err(remoteErr.Err).Msg("TMDB API error")

	return remoteErr
}

// ImageURL builds the URL of a poster or backdrop at the given size (e.g. "w200").
// It returns an empty string when the movie has no image.
func ImageURL(path *string, size string) string {
	if path == nil || *path == "" {
		return ""
	}
	if size == "" {
		size = "w200"
	}
	return ImageBaseURL + size + *path
}
