package entity

// CurrencyCode ISO-like currency code
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	GHS CurrencyCode = "GHS"
)

// Currency display currency with a fixed rate from the canonical unit
type Currency struct {
	Code   CurrencyCode `json:"code" mapstructure:"code"`
	Symbol string       `json:"symbol" mapstructure:"symbol"`
	Rate   float64      `json:"rate" mapstructure:"rate"`
	Label  string       `json:"label" mapstructure:"label"`
}
