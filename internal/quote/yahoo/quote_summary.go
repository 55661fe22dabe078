package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultModules are the quoteSummary modules carrying the fundamentals
// this service reads.
var DefaultModules = []string{"price", "summaryDetail", "defaultKeyStatistics", "financialData", "assetProfile"}

// Module is one quoteSummary module, e.g. "summaryDetail".
// Numeric values arrive as {"raw": 1.5, "fmt": "1.50"} objects, or as {}
// when Yahoo has no value.
type Module map[string]any

// Summary is the decoded quoteSummary result for one symbol.
type Summary struct {
	Symbol  string
	Modules map[string]Module
}

// Module returns the named module, or nil when it was not returned.
func (s *Summary) Module(name string) Module {
	if s == nil {
		return nil
	}
	return s.Modules[name]
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *APIError                    `json:"error"`
	} `json:"quoteSummary"`
}

// APIError is the error object embedded in quoteSummary responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// GetQuoteSummary retrieves the given modules for symbol. With no modules,
// DefaultModules are requested.
func (c *Client) GetQuoteSummary(ctx context.Context, symbol string, modules []string) (*Summary, error) {
	body, err := c.RawQuoteSummary(ctx, symbol, modules)
	if err != nil {
		return nil, err
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding quote summary: %w", err)
	}
	if e := resp.QuoteSummary.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, e)
		}
		return nil, e
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}

	out := &Summary{Symbol: symbol, Modules: make(map[string]Module, len(resp.QuoteSummary.Result[0]))}
	for name, raw := range resp.QuoteSummary.Result[0] {
		var m Module
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decoding module %s: %w", name, err)
		}
		out.Modules[name] = m
	}
	return out, nil
}

// RawQuoteSummary performs the quoteSummary request and returns the response
// body undecoded.
func (c *Client) RawQuoteSummary(ctx context.Context, symbol string, modules []string) ([]byte, error) {
	if len(modules) == 0 {
		modules = DefaultModules
	}

	crumb, cookies, err := c.session(ctx)
	if err != nil {
		return nil, fmt.Errorf("yahoo session: %w", err)
	}

	query := maps.Clone(c.query)
	query.Set("modules", strings.Join(modules, ","))
	if crumb != "" {
		query.Set("crumb", crumb)
	}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)

	case http.StatusUnauthorized, http.StatusForbidden:
		c.reset()
		return nil, ErrUnauthorized

	case http.StatusTooManyRequests:
		return nil, ErrRateLimited

	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// Number returns the numeric value stored under key, or nil when the value
// is absent, empty, or not finite.
func (m Module) Number(key string) (*float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	if obj, ok := v.(map[string]any); ok {
		// {"raw": 1.5, "fmt": "1.50"} or {}
		v, ok = obj["raw"]
		if !ok || v == nil {
			return nil, nil
		}
	}
	switch n := v.(type) {
	case float64:
		return finite(n), nil
	case string:
		// Yahoo writes "Infinity" for undefined ratios.
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
		return finite(f), nil
	}
	return nil, fmt.Errorf("decoding %s: unexpected type: %T", key, v)
}

// String returns the text stored under key, or "" when absent.
func (m Module) String(key string) (string, error) {
	s, err := parseNullableValue[string](m, key)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", key, err)
	}
	if s == nil {
		return "", nil
	}
	return strings.TrimSpace(*s), nil
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// parseNullableValue is a helper function to parse a nullable value.
func parseNullableValue[T any](data map[string]any, key string) (*T, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, nil
	}
	if v, ok := v.(T); ok {
		return &v, nil
	}
	return nil, fmt.Errorf("unexpected type: %T", v)
}
