// Package currency converts canonical USD amounts into display currencies.
package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultTable built-in currencies; USD is the canonical unit
func DefaultTable() []entity.Currency {
	return []entity.Currency{
		{Code: entity.USD, Symbol: "$", Rate: 1, Label: "USD ($)"},
		{Code: entity.GHS, Symbol: "GH₵", Rate: 15.5, Label: "GHS (GH₵)"},
	}
}

// Formatter fixed currency table. Safe for concurrent use, it is never mutated after New.
type Formatter struct {
	table   []entity.Currency
	byCode  map[entity.CurrencyCode]entity.Currency
	printer *message.Printer
}

// New builds a formatter over table. Codes are upper-cased; rates must be positive.
func New(table []entity.Currency) (*Formatter, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("currency table is empty")
	}

	f := &Formatter{
		table:   make([]entity.Currency, 0, len(table)),
		byCode:  make(map[entity.CurrencyCode]entity.Currency, len(table)),
		printer: message.NewPrinter(language.English),
	}
	for _, c := range table {
		c.Code = Normalize(string(c.Code))
		if c.Code == "" {
			return nil, fmt.Errorf("currency without code")
		}
		if c.Rate <= 0 {
			return nil, fmt.Errorf("currency %s: rate must be positive, got %v", c.Code, c.Rate)
		}
		if _, dup := f.byCode[c.Code]; dup {
			return nil, fmt.Errorf("currency %s listed twice", c.Code)
		}
		if c.Label == "" {
			c.Label = fmt.Sprintf("%s (%s)", c.Code, c.Symbol)
		}
		f.byCode[c.Code] = c
		f.table = append(f.table, c)
	}
	return f, nil
}

// MustDefault formatter over DefaultTable
func MustDefault() *Formatter {
	f, err := New(DefaultTable())
	if err != nil {
		panic(err)
	}
	return f
}

// Normalize trims and upper-cases a user supplied code
func Normalize(code string) entity.CurrencyCode {
	return entity.CurrencyCode(strings.ToUpper(strings.TrimSpace(code)))
}

// Lookup valyutani kod bo'yicha topish
func (f *Formatter) Lookup(code entity.CurrencyCode) (entity.Currency, error) {
	c, ok := f.byCode[Normalize(string(code))]
	if !ok {
		return entity.Currency{}, fmt.Errorf("%q: %w", code, entity.ErrUnsupportedCurrency)
	}
	return c, nil
}

// Currencies table in configuration order
func (f *Formatter) Currencies() []entity.Currency {
	return append([]entity.Currency(nil), f.table...)
}

// ToCanonical amount entered in code's unit back to USD
func (f *Formatter) ToCanonical(amount float64, code entity.CurrencyCode) (float64, error) {
	c, err := f.Lookup(code)
	if err != nil {
		return 0, err
	}
	return amount / c.Rate, nil
}

// Format renders amount (USD) in code: symbol, thousands separators, two decimals.
//
//	Format(100, GHS) == "GH₵1,550.00"
func (f *Formatter) Format(amount float64, code entity.CurrencyCode) (string, error) {
	c, err := f.Lookup(code)
	if err != nil {
		return "", err
	}

	// round first so tiny negatives do not render as "-$0.00"
	value := math.Round(amount*c.Rate*100) / 100
	if value == 0 {
		value = 0 // drops negative zero
	}
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	return sign + c.Symbol + f.printer.Sprint(number.Decimal(value, number.Scale(2))), nil
}

// MustFormat is Format for codes already validated by Lookup. Unknown codes fall back to
// USD, or to the first table entry when the table has no USD.
func (f *Formatter) MustFormat(amount float64, code entity.CurrencyCode) string {
	s, err := f.Format(amount, code)
	if err == nil {
		return s
	}
	if s, err = f.Format(amount, entity.USD); err == nil {
		return s
	}
	s, _ = f.Format(amount, f.table[0].Code)
	return s
}
