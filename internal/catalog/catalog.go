package catalog

// symbols is the fixed, ordered list offered in the page selector.
// Membership is not enforced anywhere: any symbol may still be fetched.
var symbols = []string{
	"AAPL", "GOOGL", "MSFT", "AMZN", "META", "TSLA", "NVDA", "JPM", "JNJ", "V",
	"WMT", "PG", "XOM", "BAC", "DIS", "NFLX", "CSCO", "INTC", "VZ", "KO",
	"PFE", "MRK", "T", "CVX", "PEP", "MCD", "HD", "IBM", "NKE", "ORCL",
	"ADBE", "CRM", "PYPL", "CMCSA", "ABT", "ACN", "QCOM", "TXN", "LLY", "AVGO",
	"COST", "DHR", "NEE", "WFC", "MDT", "UNH", "HON", "LIN", "ABBV", "AMGN",
	"BABA", "BIDU", "SPOT", "SQ", "ZM", "ROKU", "SHOP", "UBER", "LYFT", "SNAP",
	"TWTR", "BMY", "GILD", "CVS", "WBA", "SBUX", "LMT", "BA", "CAT", "MMM",
	"GS", "MS", "C", "TGT", "LOW", "GE", "GM", "F", "RIVN", "LCID",
}

var index = func() map[string]struct{} {
	m := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		m[s] = struct{}{}
	}
	return m
}()

// Symbols returns a copy of the catalog in display order.
func Symbols() []string {
	out := make([]string, len(symbols))
	copy(out, symbols)
	return out
}

// Default is the symbol selected when a request names none.
func Default() string { return symbols[0] }

// Contains reports whether sym is one of the catalog entries (case-sensitive).
func Contains(sym string) bool {
	_, ok := index[sym]
	return ok
}

// Len returns the number of catalog entries.
func Len() int { return len(symbols) }
