package glossary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExplain_KnownKey(t *testing.T) {
	got := Explain("PERatio")
	require.True(t, strings.HasPrefix(got, "The Price-to-Earnings (P/E) ratio is a valuation metric"))
	require.NotEqual(t, Fallback, got)
}

func TestExplain_UnknownKey(t *testing.T) {
	require.Equal(t, "no explanation available", Explain("NotAKey"))
	require.Equal(t, Fallback, Explain(""))
	// lookups are case-sensitive
	require.Equal(t, Fallback, Explain("peratio"))
}

func TestKeys(t *testing.T) {
	want := []string{"Beta", "BookValue", "DividendYield", "EPS", "ForwardPE", "MarketCap", "PERatio", "PriceToBook"}
	require.Equal(t, want, Keys())
	for _, k := range want {
		require.True(t, Has(k))
		require.NotEqual(t, Fallback, Explain(k))
	}
	require.False(t, Has("Volume"))
}
