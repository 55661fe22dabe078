// Package analysis turns a fetched quote into short plain-language observations.
package analysis

import (
	"math"

	"stockinsight/internal/quote"
)

// Observation texts.
const (
	LowPE            = "low P/E, possibly undervalued"
	HighPE           = "high P/E, possibly overvalued"
	ModeratePE       = "moderate P/E"
	HighDividend     = "high dividend yield"
	PaysDividend     = "pays a dividend"
	NoDividend       = "does not pay a dividend"
	BelowBook        = "trading below book value, possibly undervalued"
	HighPriceBook    = "high price-to-book, possibly overvalued"
	ModerateBook     = "moderate price-to-book"
	InsufficientData = "insufficient data for meaningful analysis"
)

// Thresholds used by the rules.
const (
	LowPEThreshold         = 15.0
	HighPEThreshold        = 30.0
	HighYieldThreshold     = 0.04
	LowPriceBookThreshold  = 1.0
	HighPriceBookThreshold = 3.0
)

// rule reads one field and classifies it. A nil field skips the rule.
type rule struct {
	metric   string
	field    func(*quote.Fundamentals) *float64
	classify func(float64) string
}

// rules run in this order; the output keeps it.
var rules = []rule{
	{
		metric: "PERatio",
		field:  func(f *quote.Fundamentals) *float64 { return f.TrailingPE },
		classify: func(v float64) string {
			switch {
			case v < LowPEThreshold:
				return LowPE
			case v > HighPEThreshold:
				return HighPE
			default:
				return ModeratePE
			}
		},
	},
	{
		metric: "DividendYield",
		field:  func(f *quote.Fundamentals) *float64 { return f.DividendYield },
		classify: func(v float64) string {
			switch {
			case v > HighYieldThreshold:
				return HighDividend
			case v > 0:
				return PaysDividend
			default:
				// zero and negative yields alike
				return NoDividend
			}
		},
	},
	{
		metric: "PriceToBook",
		field:  func(f *quote.Fundamentals) *float64 { return f.PriceToBook },
		classify: func(v float64) string {
			switch {
			case v < LowPriceBookThreshold:
				return BelowBook
			case v > HighPriceBookThreshold:
				return HighPriceBook
			default:
				return ModerateBook
			}
		},
	},
}

// Analyze returns the observations for q. An error quote yields its error
// message alone; otherwise one line per rule whose input is available, or
// InsufficientData when none is.
func Analyze(q quote.Quote) []string {
	if q.Failed() {
		msg := q.Error
		if msg == "" {
			msg = "Error fetching data for " + q.Symbol
		}
		return []string{msg}
	}

	out := make([]string, 0, len(rules))
	for _, r := range rules {
		v := r.field(q.Data)
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		out = append(out, r.classify(*v))
	}
	if len(out) == 0 {
		return []string{InsufficientData}
	}
	return out
}

// Metrics lists the glossary keys of the evaluated rules, in evaluation order.
func Metrics() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.metric
	}
	return out
}
