package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	// BaseCurrency is the currency product prices are stored in.
	BaseCurrency = "USD"

	// MaxQuantityPerItem caps the quantity of a single product in a cart
	MaxQuantityPerItem = 99
)

// Tax regions with a known rate.
const (
	RegionCalifornia    = "California"
	RegionNewYork       = "New York"
	RegionTexas         = "Texas"
	RegionInternational = "International"
)

var (
	// MinCheckoutValue is the smallest discounted subtotal that can be checked out.
	MinCheckoutValue = decimal.NewFromInt(1)

	taxRates = map[string]decimal.Decimal{
		RegionCalifornia:    decimal.RequireFromString("0.0725"),
		RegionNewYork:       decimal.RequireFromString("0.08"),
		RegionTexas:         decimal.RequireFromString("0.0625"),
		RegionInternational: decimal.Zero,
	}

	exchangeRates = map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("0.79"),
	}
)

// TaxRate returns the rate for region. Unknown regions are not taxed.
func TaxRate(region string) decimal.Decimal {
	if rate, ok := taxRates[region]; ok {
		return rate
	}
	return decimal.Zero
}

// ExchangeRate returns the multiplier from the base currency to currency.
// The second result is false when the currency is not supported.
func ExchangeRate(currency string) (decimal.Decimal, bool) {
	rate, ok := exchangeRates[currency]
	return rate, ok
}

// Rate is one row of a rate table.
type Rate struct {
	Key  string          `json:"key"`
	Rate decimal.Decimal `json:"rate"`
}

// TaxRates lists the regional tax table sorted by region name.
func TaxRates() []Rate {
	return sortedRates(taxRates)
}

// ExchangeRates lists the supported currencies sorted by code.
func ExchangeRates() []Rate {
	return sortedRates(exchangeRates)
}

func sortedRates(m map[string]decimal.Decimal) []Rate {
	out := make([]Rate, 0, len(m))
	for k, v := range m {
		out = append(out, Rate{Key: k, Rate: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
