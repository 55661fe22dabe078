package web

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"stockinsight/internal/glossary"
	"stockinsight/internal/quote"
)

// NA marks a value the data source did not provide.
const NA = "N/A"

type pageView struct {
	Stocks   []string
	Selected string
	Symbol   string
	Rows     []row
	Analysis []string
}

type row struct {
	Label  string
	Value  string
	Metric string // glossary key, empty when there is no explanation
}

func newPageView(stocks []string, selected string, q quote.Quote, observations []string) pageView {
	v := pageView{
		Stocks:   stocks,
		Selected: selected,
		Symbol:   q.Symbol,
		Analysis: observations,
	}
	if q.Failed() {
		return v
	}
	d := q.Data
	v.Rows = []row{
		{Label: "Name", Value: text(d.Name)},
		{Label: "Sector", Value: text(d.Sector)},
		{Label: "Industry", Value: text(d.Industry)},
		{Label: "Current Price", Value: fixed(d.Price)},
		{Label: "52 Week High", Value: fixed(d.Week52High)},
		{Label: "52 Week Low", Value: fixed(d.Week52Low)},
		{Label: "P/E Ratio", Value: fixed(d.TrailingPE), Metric: "PERatio"},
		{Label: "Forward P/E", Value: fixed(d.ForwardPE), Metric: "ForwardPE"},
		{Label: "Dividend Yield", Value: percent(d.DividendYield), Metric: "DividendYield"},
		{Label: "Market Cap", Value: bigNumber(d.MarketCap), Metric: "MarketCap"},
		{Label: "EPS", Value: fixed(d.EPS), Metric: "EPS"},
		{Label: "Beta", Value: fixed(d.Beta), Metric: "Beta"},
		{Label: "Book Value", Value: fixed(d.BookValue), Metric: "BookValue"},
		{Label: "Price to Book", Value: fixed(d.PriceToBook), Metric: "PriceToBook"},
	}
	for i := range v.Rows {
		if m := v.Rows[i].Metric; m != "" && !glossary.Has(m) {
			v.Rows[i].Metric = ""
		}
	}
	return v
}

func missing(v *float64) bool { return v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) }

func text(s string) string {
	if s == "" {
		return NA
	}
	return s
}

// fixed renders with two decimals.
func fixed(v *float64) string {
	if missing(v) {
		return NA
	}
	return decimal.NewFromFloat(*v).StringFixed(2)
}

// percent renders a fraction (0.031) as a percentage (3.10%).
func percent(v *float64) string {
	if missing(v) {
		return NA
	}
	return decimal.NewFromFloat(*v).Shift(2).StringFixed(2) + "%"
}

// bigNumber renders whole units with thousands separators.
func bigNumber(v *float64) string {
	if missing(v) {
		return NA
	}
	return humanize.Comma(int64(math.Round(*v)))
}
