package market

import (
	"strings"
	"unicode"
)

// Broker spellings of gold that all mean XAU/USD.
var pairAliases = map[string]string{
	"XAUUSD":   "XAU/USD",
	"XAU/USD":  "XAU/USD",
	"XAU_USD":  "XAU/USD",
	"GOLDUSD":  "XAU/USD",
	"GOLD/USD": "XAU/USD",
	"GOLDXAU":  "XAU/USD",
	"XAUUS":    "XAU/USD",
	"GOLD":     "XAU/USD",
}

// NormalizePair returns the canonical form of a traded symbol: upper case,
// whitespace removed, known aliases collapsed. Two symbols name the same
// instrument when their normalized forms are equal.
func NormalizePair(s string) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
	if canonical, ok := pairAliases[compact]; ok {
		return canonical
	}
	return compact
}

// CatalogKey maps a symbol to the key used by Instruments ("USD/JPY" and
// "USD_JPY" both become "USDJPY").
func CatalogKey(s string) string {
	return strings.NewReplacer("/", "", "_", "", "-", "").Replace(NormalizePair(s))
}

// IsJPYQuoted reports whether a normalized pair is quoted in yen.
func IsJPYQuoted(pair string) bool {
	return strings.Contains(CatalogKey(pair), "JPY")
}

// IsGold reports whether pair is spot gold.
func IsGold(pair string) bool {
	return NormalizePair(pair) == "XAU/USD"
}
