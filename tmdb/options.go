package tmdb

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultTimeout bounds every request
	DefaultTimeout = 10 * time.Second
	// DefaultCacheSize is the number of responses kept when caching is enabled
	DefaultCacheSize = 128
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	bearerToken string
	apiKey      string
	language    string
	timeout     time.Duration
	httpClient  *http.Client
	cacheTTL    time.Duration
	cacheSize   int
}

// WithBearerToken authenticates with an Authorization: Bearer header.
// It takes precedence over an API key.
func WithBearerToken(token string) Option {
	return func(o *clientOptions) {
		o.bearerToken = token
	}
}

// WithAPIKey authenticates with the api_key query parameter.
func WithAPIKey(key string) Option {
	return func(o *clientOptions) {
		o.apiKey = key
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client; its own timeout is used.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLanguage adds a default language parameter to every request that does not set one.
func WithLanguage(language string) Option {
	return func(o *clientOptions) {
		o.language = language
	}
}

// WithCache keeps successful responses for ttl. A ttl of zero disables caching.
func WithCache(ttl time.Duration, size int) Option {
	return func(o *clientOptions) {
		o.cacheTTL = ttl
		if size > 0 {
			o.cacheSize = size
		}
	}
}
