package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// session returns the crumb and cookies for the next request, performing the
// handshake when none is held.
func (c *Client) session(ctx context.Context) (string, []*http.Cookie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" || c.staticCrumb {
		return c.crumb, c.cookies, nil
	}

	cookies, err := c.fetchCookies(ctx)
	if err != nil {
		return "", nil, err
	}
	crumb, err := c.fetchCrumb(ctx, cookies)
	if err != nil {
		return "", nil, err
	}
	c.crumb, c.cookies = crumb, cookies
	return crumb, cookies, nil
}

// reset drops the held session.
func (c *Client) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.staticCrumb {
		return
	}
	c.crumb, c.cookies = "", nil
}

func (c *Client) fetchCookies(ctx context.Context) ([]*http.Cookie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cookieURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating cookie request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching cookie: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))

	// The cookie endpoint answers 404 while still setting the cookie, so
	// only the cookies matter here.
	return res.Cookies(), nil
}

func (c *Client) fetchCrumb(ctx context.Context, cookies []*http.Cookie) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.crumbURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating crumb request: %w", err)
	}
	req.Header = c.header.Clone()
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching crumb: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("fetching crumb: %w", ErrRateLimited)
	default:
		return "", fmt.Errorf("fetching crumb: %w: status %d", ErrCrumb, res.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, 1<<10))
	if err != nil {
		return "", fmt.Errorf("reading crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(b))
	if crumb == "" || strings.Contains(crumb, "<") || strings.Contains(crumb, " ") {
		return "", ErrCrumb
	}
	return crumb, nil
}
