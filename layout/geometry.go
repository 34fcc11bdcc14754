package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// 配置类错误：在任何排版工作开始之前检测，直接返回给调用方。
var (
	ErrInvalidGeometry = errors.New("layout: invalid page geometry")
	ErrSectionTooTall  = errors.New("layout: fixed-height section does not fit on an empty page")
	ErrNilMeasurer     = errors.New("layout: missing text measurer")
)

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// PageGeometry 描述一页的物理尺寸与边距（pt）。
type PageGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// PageSize 是纸张预设，宽高以毫米记录。
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

var pagePresets = map[string]PageSize{
	"A4":     {Name: "A4", Width: 210, Height: 297},
	"A5":     {Name: "A5", Width: 148, Height: 210},
	"LETTER": {Name: "Letter", Width: 215.9, Height: 279.4},
}

// LookupPageSize 按名称（不区分大小写）查找纸张预设。
func LookupPageSize(name string) (PageSize, bool) {
	s, ok := pagePresets[strings.ToUpper(strings.TrimSpace(name))]
	return s, ok
}

// Landscape 返回横向版本。
func (s PageSize) Landscape() PageSize {
	if s.Width < s.Height {
		s.Width, s.Height = s.Height, s.Width
	}
	return s
}

// Geometry 以统一边距（pt）构造页面几何。
func (s PageSize) Geometry(margin float64) PageGeometry {
	return PageGeometry{
		Width:  Length{Value: s.Width, Unit: UnitMM}.ToPT(),
		Height: Length{Value: s.Height, Unit: UnitMM}.ToPT(),
		Margin: Margin{Top: margin, Right: margin, Bottom: margin, Left: margin},
	}
}

// A4 返回四边 margin pt 的 A4 竖向页面。
func A4(margin float64) PageGeometry { return pagePresets["A4"].Geometry(margin) }

// Validate 检查尺寸为有限正数、边距非负，且左右/上下边距之和小于对应的页面尺寸。
func (g PageGeometry) Validate() error {
	values := []float64{g.Width, g.Height, g.Margin.Top, g.Margin.Right, g.Margin.Bottom, g.Margin.Left}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidGeometry)
		}
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: page size %gx%g", ErrInvalidGeometry, g.Width, g.Height)
	}
	m := g.Margin
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidGeometry)
	}
	if m.Left+m.Right >= g.Width {
		return fmt.Errorf("%w: horizontal margins %g+%g >= width %g", ErrInvalidGeometry, m.Left, m.Right, g.Width)
	}
	if m.Top+m.Bottom >= g.Height {
		return fmt.Errorf("%w: vertical margins %g+%g >= height %g", ErrInvalidGeometry, m.Top, m.Bottom, g.Height)
	}
	return nil
}

// ContentWidth 是左右边距之间的宽度。
func (g PageGeometry) ContentWidth() float64 { return g.Width - g.Margin.Left - g.Margin.Right }

// ContentBottom 是可写区域底部的 y 坐标。
func (g PageGeometry) ContentBottom() float64 { return g.Height - g.Margin.Bottom }

// UsableHeight 是一页空白页上可用的高度。
func (g PageGeometry) UsableHeight() float64 { return g.ContentBottom() - g.Margin.Top }
