package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"client": map[string]any{"name": "Cliente SA"},
		"items":  []any{map[string]any{"qty": 2.5}},
		"tags":   []string{"a", "b"},
		"totals": map[string]string{"total": "121.00"},
	}
	cases := []struct {
		in, want string
	}{
		{"Hola ${client.name}", "Hola Cliente SA"},
		{"${ items[0].qty } uds", "2.5 uds"},
		{"${tags[1]}", "b"},
		{"Total ${totals.total}", "Total 121.00"},
		{"${client.email}", "${client.email}"},
		{"${tags[9]}", "${tags[9]}"},
		{"${}", "${}"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Binder{}.Interpolate(c.in, data), c.in)
	}
}

func TestInterpolateNilData(t *testing.T) {
	assert.Equal(t, "${a}", Binder{}.Interpolate("${a}", nil))
}

func TestBinderMissing(t *testing.T) {
	b := Binder{Missing: Bracket}
	got := b.Interpolate("${client.name} / ${client.address}", map[string]any{
		"client": map[string]any{"name": "Ana"},
	})
	assert.Equal(t, "Ana / [client.address]", got)
}

func TestLookupNestedIndexes(t *testing.T) {
	data := map[string]any{"grid": []any{[]any{"x", "y"}}}
	v, ok := Lookup(data, "grid[0][1]")
	assert.True(t, ok)
	assert.Equal(t, "y", v)

	_, ok = Lookup(data, "grid[a]")
	assert.False(t, ok)
	_, ok = Lookup(data, "grid.missing")
	assert.False(t, ok)
}
