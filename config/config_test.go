package config

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/layout"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FOLIO_PAGE_SIZE", "FOLIO_LANDSCAPE", "FOLIO_MARGIN", "FOLIO_TAX_RATE", "FOLIO_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, "A4", cfg.PageSize)
	assert.False(t, cfg.Landscape)
	assert.Equal(t, DefaultMargin, cfg.Margin)
	assert.Nil(t, cfg.TaxRate)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	t.Setenv("FOLIO_PAGE_SIZE", "letter")
	t.Setenv("FOLIO_LANDSCAPE", "true")
	t.Setenv("FOLIO_MARGIN", "1.25cm")
	t.Setenv("FOLIO_TAX_RATE", "10")
	t.Setenv("FOLIO_CURRENCY", "USD")
	t.Setenv("FOLIO_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "letter", cfg.PageSize)
	assert.True(t, cfg.Landscape)
	assert.Equal(t, layout.Length{Value: 1.25, Unit: layout.UnitCM}, cfg.Margin)
	require.NotNil(t, cfg.TaxRate)
	assert.Equal(t, 10.0, *cfg.TaxRate)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	g, err := cfg.Geometry()
	require.NoError(t, err)
	assert.Greater(t, g.Width, g.Height)
	assert.InDelta(t, 12.5*layout.MmToPt, g.Margin.Left, 1e-9)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("FOLIO_LANDSCAPE", "maybe")
	t.Setenv("FOLIO_MARGIN", "wide")
	t.Setenv("FOLIO_TAX_RATE", "x")
	t.Setenv("FOLIO_LOG_LEVEL", "loud")

	cfg := Load()
	assert.False(t, cfg.Landscape)
	assert.Equal(t, DefaultMargin, cfg.Margin)
	assert.Nil(t, cfg.TaxRate)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestMarginUnits(t *testing.T) {
	cases := map[string]float64{
		"0.5in": 36,
		"36pt":  36,
		"18":    18 * layout.MmToPt,
		"18mm":  18 * layout.MmToPt,
	}
	for in, want := range cases {
		t.Setenv("FOLIO_MARGIN", in)
		g, err := (&Config{PageSize: "A4", Margin: Load().Margin}).Geometry()
		require.NoError(t, err, in)
		assert.InDelta(t, want, g.Margin.Top, 1e-9, in)
	}
}

func TestGeometryErrors(t *testing.T) {
	cfg := &Config{PageSize: "B9", Margin: DefaultMargin}
	_, err := cfg.Geometry()
	assert.True(t, errors.Is(err, layout.ErrInvalidGeometry))

	cfg = &Config{PageSize: "A5", Margin: layout.Length{Value: 8, Unit: layout.UnitCM}}
	_, err = cfg.Geometry()
	assert.True(t, errors.Is(err, layout.ErrInvalidGeometry))
}

func TestApplyDefaults(t *testing.T) {
	rate := 4.0
	cfg := &Config{Locale: "en-US", Currency: "USD", TaxRate: &rate}

	m := &document.Model{Currency: "GBP"}
	cfg.ApplyDefaults(m)
	assert.Equal(t, "en-US", m.Locale)
	assert.Equal(t, "GBP", m.Currency)
	require.NotNil(t, m.TaxRatePercent)
	assert.Equal(t, 4.0, *m.TaxRatePercent)

	own := 21.0
	m = &document.Model{TaxRatePercent: &own}
	cfg.ApplyDefaults(m)
	assert.Equal(t, 21.0, *m.TaxRatePercent)
}
