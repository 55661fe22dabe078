// Package financego reads fundamentals through github.com/piquette/finance-go,
// which wraps Yahoo's v7 quote endpoint. That endpoint carries no sector,
// industry or beta; those fields stay unavailable.
package financego

import (
	"context"
	"fmt"
	"math"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"

	"stockinsight/internal/quote"
	"stockinsight/internal/quote/yahoo"
)

// GetFunc fetches one equity record; equity.Get by default.
type GetFunc func(symbol string) (*finance.Equity, error)

// Config tunes the Provider.
type Config struct {
	Name string // display name, default: finance-go
}

// Provider is a quote.Source backed by finance-go.
type Provider struct {
	cfg Config
	get GetFunc
}

// New returns a Provider; a nil get uses equity.Get.
func New(cfg Config, get GetFunc) *Provider {
	if cfg.Name == "" {
		cfg.Name = "finance-go"
	}
	if get == nil {
		get = equity.Get
	}
	return &Provider{cfg: cfg, get: get}
}

// Name identifies the source in logs.
func (p *Provider) Name() string { return p.cfg.Name }

// Lookup fetches symbol. finance-go takes no context, so the call runs in
// its own goroutine and Lookup returns early if ctx ends first.
func (p *Provider) Lookup(ctx context.Context, symbol string) (quote.Fundamentals, error) {
	type result struct {
		eq  *finance.Equity
		err error
	}
	ch := make(chan result, 1)
	go func() {
		eq, err := p.get(symbol)
		ch <- result{eq, err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return quote.Fundamentals{}, ctx.Err()
	case r = <-ch:
	}
	if r.err != nil {
		return quote.Fundamentals{}, fmt.Errorf("finance-go: %w", r.err)
	}
	if r.eq == nil {
		return quote.Fundamentals{}, fmt.Errorf("%w: %s", yahoo.ErrNotFound, symbol)
	}
	return FromEquity(r.eq), nil
}

// FromEquity maps a finance-go record onto Fundamentals. The library decodes
// missing numbers as zero, so zero reads as unavailable everywhere except the
// dividend yield, where Yahoo reports 0 for non-payers.
func FromEquity(eq *finance.Equity) quote.Fundamentals {
	name := eq.LongName
	if name == "" {
		name = eq.ShortName
	}
	return quote.Fundamentals{
		Name:          name,
		Price:         nonZero(eq.RegularMarketPrice),
		Week52High:    nonZero(eq.FiftyTwoWeekHigh),
		Week52Low:     nonZero(eq.FiftyTwoWeekLow),
		TrailingPE:    nonZero(eq.TrailingPE),
		ForwardPE:     nonZero(eq.ForwardPE),
		DividendYield: finite(eq.TrailingAnnualDividendYield),
		MarketCap:     nonZero(float64(eq.MarketCap)),
		EPS:           nonZero(eq.EpsTrailingTwelveMonths),
		BookValue:     nonZero(eq.BookValue),
		PriceToBook:   nonZero(eq.PriceToBook),
	}
}

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return finite(v)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
