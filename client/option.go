package client

import (
	"net/http"
	"time"
)

// Option configures an UnauthenticatedClient.
type Option func(*UnauthenticatedClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *UnauthenticatedClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets a timeout on every request. By default no timeout is
// enforced and callers bound requests through their context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *UnauthenticatedClient) {
		c.timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *UnauthenticatedClient) {
		c.userAgent = userAgent
	}
}
