package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatGroupingPerLocale(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		amount float64
		code   string
		want   string
	}{
		{name: "english dollars", locale: "en-US", amount: 1234.5, code: "USD", want: "$1,234.50"},
		{name: "german euros", locale: "de-DE", amount: 1234.5, code: "EUR", want: "1.234,50 €"},
		{name: "spanish millions", locale: "es-ES", amount: 1234567.891, code: "EUR", want: "1.234.567,89 €"},
		{name: "negative", locale: "en-US", amount: -50, code: "USD", want: "-$50.00"},
		{name: "unknown currency falls back", locale: "en-US", amount: 10, code: "???", want: "€10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.locale)
			assert.Equal(t, tt.want, f.Format(tt.amount, tt.code))
		})
	}
}

func TestFormatNonFiniteIsZero(t *testing.T) {
	f := NewFormatter("en-US")
	zero := f.Format(0, "USD")
	assert.Equal(t, "$0.00", zero)
	assert.Equal(t, zero, f.Format(math.NaN(), "USD"))
	assert.Equal(t, zero, f.Format(math.Inf(1), "USD"))
	assert.Equal(t, "0.00", f.Number(math.NaN()))
}

func TestFormatDecimalRoundsOnce(t *testing.T) {
	f := NewFormatter("en-US")
	d := decimal.RequireFromString("62.995")
	assert.Equal(t, "$63.00", f.FormatDecimal(d, "USD"))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "USD", Code(" usd "))
	assert.Equal(t, FallbackCurrency, Code(""))
	assert.Equal(t, FallbackCurrency, Code("not-a-code"))
	assert.Equal(t, "SEK", Symbol("SEK"))
	assert.Equal(t, "€", Symbol(""))
}

func TestNewFormatterFallbackLocale(t *testing.T) {
	f := NewFormatter("")
	assert.Equal(t, DefaultLocale, f.Locale().String())
	g := NewFormatter("%%%")
	assert.Equal(t, DefaultLocale, g.Locale().String())
}
