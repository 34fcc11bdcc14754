package layout

import (
	"math"
	"testing"
)

// TestLengthConversions 覆盖各单位到 mm 与 pt 的换算。
func TestLengthConversions(t *testing.T) {
	cases := []struct {
		in	 Length
		mm, pt float64
	}{
		{Length{Value: 1, Unit: UnitIN}, 25.4, 72},
		{Length{Value: 2.54, Unit: UnitCM}, 25.4, 72},
		{Length{Value: 12, Unit: UnitPT}, 12 * PtToMm, 12},
		{Length{Value: 18, Unit: UnitMM}, 18, 18 * MmToPt},
		{Length{Value: 18, Unit: UnitNone}, 18, 18 * MmToPt},
	}
	for _, c := range cases {
		if got := c.in.ToMM(); math.Abs(got-c.mm) > 1e-9 {
			t.Fatalf("%v%s 转 mm 期望 %g，实际 %g", c.in.Value, c.in.Unit, c.mm, got)
		}
		if got := c.in.ToPT(); math.Abs(got-c.pt) > 1e-9 {
			t.Fatalf("%v%s 转 pt 期望 %g，实际 %g", c.in.Value, c.in.Unit, c.pt, got)
		}
	}
}

// TestPresetRoundTrip 纸张预设换算为 pt 再换回 mm 时不应漂移。
func TestPresetRoundTrip(t *testing.T) {
	for _, name := range []string{"A4", "A5", "Letter"} {
		size, ok := LookupPageSize(name)
		if !ok {
			t.Fatalf("缺少 %s 预设", name)
		}
		g := size.Geometry(0)
		if diff := math.Abs(g.Width*PtToMm - size.Width); diff > 1e-9 {
			t.Fatalf("%s 宽度往返误差过大: %g", name, diff)
		}
		if diff := math.Abs(g.Height*PtToMm - size.Height); diff > 1e-9 {
			t.Fatalf("%s 高度往返误差过大: %g", name, diff)
		}
	}
}

// TestParseLength 覆盖带单位与不带单位的长度字符串。
func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
	}{
		{"18mm", Length{Value: 18, Unit: UnitMM}},
		{" 1.5cm ", Length{Value: 1.5, Unit: UnitCM}},
		{"0.5in", Length{Value: 0.5, Unit: UnitIN}},
		{"36PT", Length{Value: 36, Unit: UnitPT}},
		{"12", Length{Value: 12, Unit: UnitNone}},
	}
	for _, c := range cases {
		got, err := ParseLength(c.in)
		if err != nil {
			t.Fatalf("解析 %q 失败: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("解析 %q 期望 %+v，实际 %+v", c.in, c.want, got)
		}
	}
	if _, err := ParseLength("abc"); err == nil {
		t.Fatalf("非法长度应返回错误")
	}
}

// TestPagePresets 验证纸张预设换算为 pt，以及横向交换宽高。
func TestPagePresets(t *testing.T) {
	a4, ok := LookupPageSize("a4")
	if !ok {
		t.Fatalf("缺少 A4 预设")
	}
	g := a4.Geometry(36)
	if math.Abs(g.Width-595.2756) > 1e-3 || math.Abs(g.Height-841.8898) > 1e-3 {
		t.Fatalf("A4 尺寸错误: %gx%g", g.Width, g.Height)
	}
	if got := g.UsableHeight(); math.Abs(got-(g.Height-72)) > 1e-9 {
		t.Fatalf("可用高度错误: %g", got)
	}
	land := a4.Landscape().Geometry(36)
	if land.Width <= land.Height {
		t.Fatalf("横向页面宽度应大于高度: %gx%g", land.Width, land.Height)
	}
	if _, ok := LookupPageSize("B7"); ok {
		t.Fatalf("未知纸张不应命中")
	}
}
