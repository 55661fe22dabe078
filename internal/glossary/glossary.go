// Package glossary holds the static explanations served for metric names.
package glossary

import "sort"

// Fallback is returned for metric names without an entry.
const Fallback = "no explanation available"

var explanations = map[string]string{
	"PERatio":       "The Price-to-Earnings (P/E) ratio is a valuation metric that compares a company's stock price to its earnings per share. A lower P/E may indicate an undervalued stock, while a higher P/E might suggest overvaluation or high growth expectations.",
	"ForwardPE":     "The Forward P/E ratio is based on projected future earnings. It provides insight into the company's expected performance and valuation.",
	"DividendYield": "Dividend Yield represents the annual dividend payment as a percentage of the stock price. A higher yield can be attractive for income-focused investors.",
	"MarketCap":     "Market Capitalization is the total value of a company's outstanding shares. It's used to classify companies into large-cap, mid-cap, or small-cap categories.",
	"EPS":           "Earnings Per Share (EPS) represents the company's profit allocated to each outstanding share of common stock. It's a key indicator of a company's profitability.",
	"Beta":          "Beta measures a stock's volatility in relation to the overall market. A beta greater than 1 indicates higher volatility, while less than 1 suggests lower volatility.",
	"BookValue":     "Book Value per Share represents the net asset value of a company divided by the number of outstanding shares. It's used to gauge whether a stock is undervalued or overvalued.",
	"PriceToBook":   "The Price-to-Book ratio compares a company's market value to its book value. A lower ratio might indicate an undervalued stock, while a higher ratio could suggest overvaluation or a company with intangible assets.",
}

// Explain returns the explanation for key, or Fallback when there is none.
// Keys are matched exactly.
func Explain(key string) string {
	if text, ok := explanations[key]; ok {
		return text
	}
	return Fallback
}

// Has reports whether key has an explanation.
func Has(key string) bool {
	_, ok := explanations[key]
	return ok
}

// Keys returns the known metric keys, sorted.
func Keys() []string {
	out := make([]string, 0, len(explanations))
	for k := range explanations {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
