package domain

import (
	"time"
)

// Supported pricing currencies.
const (
	CurrencyNGN = "NGN"
	CurrencyUSD = "USD"
)

// ServiceOffering is a service the portfolio owner offers, with a price range
// in minor units of the given currency.
type ServiceOffering struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	IncludedItems []string  `json:"included_items"`
	PriceMin      int64     `json:"price_min"`
	PriceMax      int64     `json:"price_max"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidCurrencies returns the set of supported currencies.
func ValidCurrencies() []string {
	return []string{CurrencyNGN, CurrencyUSD}
}

// IsValidCurrency checks whether the given currency code is supported.
func IsValidCurrency(currency string) bool {
	for _, c := range ValidCurrencies() {
		if c == currency {
			return true
		}
	}
	return false
}
