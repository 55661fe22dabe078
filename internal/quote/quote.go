package quote

import (
	"context"
	"fmt"
)

// Fundamentals is the fixed set of fields read from the upstream record.
// A nil pointer or empty string means the upstream did not report the field.
type Fundamentals struct {
	Name          string   `json:"name,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	Price         *float64 `json:"price"`
	Week52High    *float64 `json:"week_52_high"`
	Week52Low     *float64 `json:"week_52_low"`
	TrailingPE    *float64 `json:"trailing_pe"`
	ForwardPE     *float64 `json:"forward_pe"`
	DividendYield *float64 `json:"dividend_yield"`
	MarketCap     *float64 `json:"market_cap"`
	EPS           *float64 `json:"eps"`
	Beta          *float64 `json:"beta"`
	BookValue     *float64 `json:"book_value"`
	PriceToBook   *float64 `json:"price_to_book"`
}

// Quote is the outcome of fetching one symbol: either Data or Error is set,
// never both.
type Quote struct {
	Symbol string        `json:"symbol"`
	Data   *Fundamentals `json:"data,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Success wraps fundamentals fetched for symbol.
func Success(symbol string, f Fundamentals) Quote {
	return Quote{Symbol: symbol, Data: &f}
}

// Failure builds the error variant for symbol.
func Failure(symbol string, err error) Quote {
	return Quote{Symbol: symbol, Error: fmt.Sprintf("Error fetching data for %s: %v", symbol, err)}
}

// Failed reports whether q is the error variant.
func (q Quote) Failed() bool { return q.Data == nil }

// Source is an upstream market-data lookup.
//
//go:generate mockgen -package=quote_test -destination=mock_source_test.go -source=quote.go Source
type Source interface {
	Name() string
	Lookup(ctx context.Context, symbol string) (Fundamentals, error)
}

// Float returns a pointer to v. Handy for building Fundamentals by hand.
func Float(v float64) *float64 { return &v }
