// Package sources builds the configured quote.Source.
package sources

import (
	"fmt"
	"net/http"

	"stockinsight/internal/config"
	"stockinsight/internal/httpx"
	"stockinsight/internal/quote"
	"stockinsight/internal/quote/financego"
	"stockinsight/internal/quote/yahoo"
	"stockinsight/internal/quote/yahooadapter"
)

// YahooClient returns a quoteSummary client sending its requests through hc.
func YahooClient(cfg config.Quotes, hc *httpx.Client) (*yahoo.Client, error) {
	opts := []yahoo.ClientOption{
		yahoo.WithBaseURL(cfg.BaseURL),
		yahoo.WithHTTPClient(hc),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, yahoo.WithHeader(http.Header{"User-Agent": []string{cfg.UserAgent}}))
	}
	if cfg.Crumb != "" {
		opts = append(opts, yahoo.WithCrumb(cfg.Crumb))
	}
	client, err := yahoo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("yahoo client: %w", err)
	}
	return client, nil
}

// New returns the Source named by cfg.Source.
func New(cfg config.Quotes, hc *httpx.Client) (quote.Source, error) {
	switch cfg.Source {
	case config.SourceYahoo:
		client, err := YahooClient(cfg, hc)
		if err != nil {
			return nil, err
		}
		return yahooadapter.New(yahooadapter.Config{}, client), nil
	case config.SourceFinanceGo:
		// finance-go keeps its own package-level backend and HTTP client.
		return financego.New(financego.Config{}, nil), nil
	default:
		return nil, fmt.Errorf("unknown quote source %q", cfg.Source)
	}
}
