package yahoo

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
)

const (
	baseURL   = "https://query1.finance.yahoo.com"
	crumbURL  = "https://query1.finance.yahoo.com/v1/test/getcrumb"
	cookieURL = "https://fc.yahoo.com"

	// browserUserAgent is sent unless the caller sets its own; Yahoo rejects
	// the crumb handshake for obvious non-browser agents.
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	// ErrNotFound is returned when Yahoo has no record for the symbol.
	ErrNotFound = errors.New("quote not found")
	// ErrUnauthorized is returned when Yahoo rejects the cookie/crumb pair.
	// The session is dropped so the next call performs a fresh handshake.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited is returned on HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrCrumb is returned when the crumb handshake yields no usable crumb.
	ErrCrumb = errors.New("invalid crumb")
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Yahoo Finance quoteSummary API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// crumbURL returns the crumb bound to the session cookies.
	crumbURL string
	// cookieURL hands out the session cookies.
	cookieURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values

	// mu guards the session below.
	mu      sync.Mutex
	crumb   string
	cookies []*http.Cookie
	// staticCrumb disables the handshake.
	staticCrumb bool
}

// ClientOption is a configuration option for the Yahoo client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithCrumbURL sets the URL the crumb is read from.
func WithCrumbURL(crumbURL string) ClientOption {
	return func(c *Client) {
		c.crumbURL = crumbURL
	}
}

// WithCookieURL sets the URL that issues the session cookies.
func WithCookieURL(cookieURL string) ClientOption {
	return func(c *Client) {
		c.cookieURL = cookieURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithCrumb uses a fixed crumb and skips the cookie handshake.
func WithCrumb(crumb string) ClientOption {
	return func(c *Client) {
		c.crumb = crumb
		c.staticCrumb = true
	}
}

// NewClient creates a new Yahoo Finance client.
func NewClient(options ...ClientOption) (*Client, error) {
	var client = &Client{
		baseURL:    baseURL,
		crumbURL:   crumbURL,
		cookieURL:  cookieURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	for _, option := range options {
		option(client)
	}
	if client.header.Get("User-Agent") == "" {
		client.header.Set("User-Agent", browserUserAgent)
	}
	if client.baseURL == "" {
		return nil, errors.New("empty base url")
	}
	return client, nil
}
