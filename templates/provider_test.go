package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	p := Default()
	require.NotNil(t, p)
	assert.Equal(t, []string{"design", "development", "marketing", "photography", "consulting", "writing"}, p.Categories())
	for _, tag := range p.Categories() {
		tpl, ok := p.Template(tag)
		assert.True(t, ok, tag)
		assert.NotEmpty(t, tpl.Body, tag)
		assert.NotEmpty(t, tpl.Title, tag)
	}
}

func TestLookupIsTotal(t *testing.T) {
	p := Default()
	fallback := p.Lookup(DefaultTag)
	assert.NotEmpty(t, fallback)
	assert.Equal(t, fallback, p.Lookup("unknown-category"))
	assert.Equal(t, fallback, p.Lookup(""))
	assert.Equal(t, p.Lookup("design"), p.Lookup("  DESIGN "))

	var nilProvider *Provider
	assert.Equal(t, FallbackBody, nilProvider.Lookup("design"))
}

func TestClassify(t *testing.T) {
	p := Default()
	cases := map[string][]string{
		"design":      {"Diseño de logotipo", "Nuevo branding para la marca"},
		"development": {"Tienda online", "Desarrollo web con WordPress"},
		"photography": {"Sesión de fotografía de producto"},
		DefaultTag:    {"Servicios varios"},
	}
	for want, texts := range cases {
		assert.Equal(t, want, p.Classify(texts...), strings.Join(texts, " | "))
	}
	// 重音与大小写不影响匹配。
	assert.Equal(t, "design", p.Classify("DISENO GRAFICO"))
}

func TestRender(t *testing.T) {
	data := map[string]any{
		"issuer":   map[string]any{"name": "Estudio Norte"},
		"client":   map[string]any{"name": "Cliente SA"},
		"totals":   map[string]any{"total": "1210.00"},
		"currency": "EUR",
	}
	out := Default().Render("design", data)
	assert.Contains(t, out, "Estudio Norte se compromete a entregar a Cliente SA")
	assert.Contains(t, out, "1210.00 EUR")
	assert.NotContains(t, out, "${")

	missing := Default().Render("design", map[string]any{})
	assert.Contains(t, missing, "[issuer.name]")
}

func TestLoadCustomCatalog(t *testing.T) {
	p, err := Load(strings.NewReader(`catalog c {
  category Legal { keywords: ["abogado"]; body: "Texto legal" }
}`))
	require.NoError(t, err)
	assert.Equal(t, "Texto legal", p.Lookup("legal"))
	assert.Equal(t, FallbackBody, p.Lookup("otro"))
	assert.Equal(t, "legal", p.Classify("Consulta con ABOGADO"))

	_, err = Load(strings.NewReader(`catalog {`))
	assert.Error(t, err)
}
