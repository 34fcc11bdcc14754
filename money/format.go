// Package money formats monetary amounts for business documents.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Defaults used when the issuer did not configure a locale or currency.
const (
	DefaultLocale    = "es-ES"
	FallbackCurrency = "EUR"
)

var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
	"MXN": "$",
	"ARS": "$",
	"COP": "$",
	"CLP": "$",
	"BRL": "R$",
	"CHF": "CHF",
}

// Formatter formats amounts with two decimals and the grouping rules of one locale.
// A Formatter is safe for concurrent use.
type Formatter struct {
	tag         language.Tag
	printer     *message.Printer
	symbolFirst bool
}

// NewFormatter returns a formatter for locale (BCP 47). Unparseable or empty
// locales fall back to DefaultLocale.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	base, _ := tag.Base()
	return &Formatter{
		tag:         tag,
		printer:     message.NewPrinter(tag),
		symbolFirst: base.String() == "en",
	}
}

// Locale returns the resolved locale tag.
func (f *Formatter) Locale() language.Tag { return f.tag }

// Format renders amount in the given ISO 4217 currency. NaN and infinities
// render as a zero amount.
func (f *Formatter) Format(amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return f.FormatDecimal(decimal.NewFromFloat(amount), code)
}

// FormatDecimal rounds d to two decimals once and renders it.
func (f *Formatter) FormatDecimal(d decimal.Decimal, code string) string {
	v, _ := d.Round(2).Float64()
	negative := v < 0
	if negative {
		v = -v
	}
	digits := f.Number(v)
	sym := Symbol(code)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	if f.symbolFirst {
		b.WriteString(sym)
		b.WriteString(digits)
	} else {
		b.WriteString(digits)
		b.WriteByte(' ')
		b.WriteString(sym)
	}
	return b.String()
}

// Number renders v with exactly two decimals and locale grouping, without a symbol.
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Code normalizes a currency code, returning FallbackCurrency for empty or
// unknown codes.
func Code(code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return FallbackCurrency
	}
	return unit.String()
}

// Symbol returns the display symbol for a currency code; currencies without a
// well-known symbol display their ISO code.
func Symbol(code string) string {
	c := Code(code)
	if s, ok := symbols[c]; ok {
		return s
	}
	return c
}
