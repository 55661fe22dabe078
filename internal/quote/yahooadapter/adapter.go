package yahooadapter

import (
	"context"
	"fmt"

	"stockinsight/internal/quote"
	"stockinsight/internal/quote/yahoo"
)

// Config tunes the Adapter; zero values pick the defaults.
type Config struct {
	Name    string   // display name, default: Yahoo
	Modules []string // quoteSummary modules, default: yahoo.DefaultModules
}

// Adapter reads Fundamentals from the Yahoo quoteSummary endpoint.
type Adapter struct {
	cfg    Config
	client *yahoo.Client
}

// New returns an Adapter reading through client.
func New(cfg Config, client *yahoo.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	if len(cfg.Modules) == 0 {
		cfg.Modules = yahoo.DefaultModules
	}
	return &Adapter{cfg: cfg, client: client}
}

// Name identifies the source in logs.
func (a *Adapter) Name() string { return a.cfg.Name }

// ref names one field of one module. Several refs for the same field are
// tried in order; the first available value wins.
type ref struct{ module, key string }

var (
	priceRefs      = []ref{{"financialData", "currentPrice"}, {"price", "regularMarketPrice"}}
	high52Refs     = []ref{{"summaryDetail", "fiftyTwoWeekHigh"}}
	low52Refs      = []ref{{"summaryDetail", "fiftyTwoWeekLow"}}
	trailingPERefs = []ref{{"summaryDetail", "trailingPE"}}
	forwardPERefs  = []ref{{"summaryDetail", "forwardPE"}, {"defaultKeyStatistics", "forwardPE"}}
	yieldRefs      = []ref{{"summaryDetail", "dividendYield"}}
	marketCapRefs  = []ref{{"summaryDetail", "marketCap"}, {"price", "marketCap"}}
	epsRefs        = []ref{{"defaultKeyStatistics", "trailingEps"}}
	betaRefs       = []ref{{"summaryDetail", "beta"}, {"defaultKeyStatistics", "beta"}}
	bookValueRefs  = []ref{{"defaultKeyStatistics", "bookValue"}}
	pbRefs         = []ref{{"defaultKeyStatistics", "priceToBook"}}

	nameRefs     = []ref{{"price", "longName"}, {"price", "shortName"}}
	sectorRefs   = []ref{{"assetProfile", "sector"}}
	industryRefs = []ref{{"assetProfile", "industry"}}
)

// Lookup fetches the summary for symbol and maps it onto Fundamentals.
func (a *Adapter) Lookup(ctx context.Context, symbol string) (quote.Fundamentals, error) {
	summary, err := a.client.GetQuoteSummary(ctx, symbol, a.cfg.Modules)
	if err != nil {
		return quote.Fundamentals{}, err
	}
	return Map(summary)
}

// Map converts a quoteSummary result into Fundamentals.
func Map(s *yahoo.Summary) (quote.Fundamentals, error) {
	var (
		f   quote.Fundamentals
		err error
	)
	numbers := []struct {
		dst  **float64
		refs []ref
	}{
		{&f.Price, priceRefs},
		{&f.Week52High, high52Refs},
		{&f.Week52Low, low52Refs},
		{&f.TrailingPE, trailingPERefs},
		{&f.ForwardPE, forwardPERefs},
		{&f.DividendYield, yieldRefs},
		{&f.MarketCap, marketCapRefs},
		{&f.EPS, epsRefs},
		{&f.Beta, betaRefs},
		{&f.BookValue, bookValueRefs},
		{&f.PriceToBook, pbRefs},
	}
	for _, n := range numbers {
		if *n.dst, err = firstNumber(s, n.refs); err != nil {
			return quote.Fundamentals{}, err
		}
	}

	texts := []struct {
		dst  *string
		refs []ref
	}{
		{&f.Name, nameRefs},
		{&f.Sector, sectorRefs},
		{&f.Industry, industryRefs},
	}
	for _, t := range texts {
		if *t.dst, err = firstString(s, t.refs); err != nil {
			return quote.Fundamentals{}, err
		}
	}
	return f, nil
}

func firstNumber(s *yahoo.Summary, refs []ref) (*float64, error) {
	for _, r := range refs {
		v, err := s.Module(r.module).Number(r.key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.module, err)
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func firstString(s *yahoo.Summary, refs []ref) (string, error) {
	for _, r := range refs {
		v, err := s.Module(r.module).String(r.key)
		if err != nil {
			return "", fmt.Errorf("%s: %w", r.module, err)
		}
		if v != "" {
			return v, nil
		}
	}
	return "", nil
}
