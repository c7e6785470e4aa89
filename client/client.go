package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public pasty instance.
	DefaultBaseURL = "https://pasty.lus.pm"

	// Version is reported in the default User-Agent.
	Version = "0.3.0"
)

// UnauthenticatedClient performs requests against the pasty API that do
// not need a modification token. It is safe for concurrent use.
type UnauthenticatedClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// New creates a client for the pasty instance at baseURL. It returns a
// *ConfigError if baseURL is not an absolute http or https URL. New does
// not contact the server.
func New(baseURL string, opts ...Option) (*UnauthenticatedClient, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &UnauthenticatedClient{
		baseURL:    u,
		httpClient: http.DefaultClient,
		userAgent:  "pasty-go/" + Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ConfigError{URL: raw, Reason: "empty"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ConfigError{URL: raw, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ConfigError{URL: raw, Reason: "scheme must be http or https"}
	}
	if u.Host == "" {
		return nil, &ConfigError{URL: raw, Reason: "missing host"}
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the configured base address.
func (c *UnauthenticatedClient) BaseURL() string {
	return c.baseURL.String()
}

// ApplicationInformation returns general information about the instance.
// Binds to GET /api/v2/info.
func (c *UnauthenticatedClient) ApplicationInformation(ctx context.Context) (*ApplicationInformation, error) {
	var info ApplicationInformation
	if err := c.do(ctx, http.MethodGet, c.endpoint("info"), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Paste retrieves a paste by its ID. Binds to GET /api/v2/pastes/{id}.
func (c *UnauthenticatedClient) Paste(ctx context.Context, id string) (*Paste, error) {
	endpoint, err := c.pasteEndpoint(id)
	if err != nil {
		return nil, err
	}

	var p Paste
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePaste creates a paste with the given content and optional metadata.
// Binds to POST /api/v2/pastes.
func (c *UnauthenticatedClient) CreatePaste(ctx context.Context, content string, metadata *Metadata) (*CreatedPaste, error) {
	var created CreatedPaste
	body := &pasteRequest{Content: content, Metadata: metadata}
	if err := c.do(ctx, http.MethodPost, c.endpoint("pastes"), body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Authenticate returns a client that sends token with modification
// requests. The token is not checked until it is first used. c itself is
// left unchanged.
func (c *UnauthenticatedClient) Authenticate(token string) *AuthenticatedClient {
	return &AuthenticatedClient{
		inner: *c,
		token: token,
	}
}
