package layout

import "log/slog"

// TextMeasurer 负责测量文本：在 maxWidth 内贪心折行，返回行数、最宽一行宽度与各行内容。
// maxWidth <= 0 表示不限宽度。实现必须无副作用，且宽度增大时行数不增加。
type TextMeasurer interface {
	Measure(text string, font Font, maxWidth float64) (Measurement, error)
}

// Options 配置布局阶段所需的依赖。
type Options struct {
	Measurer TextMeasurer
	Logger   *slog.Logger // 为空时使用 slog.Default()
	Style    Style        // 零值时使用 DefaultStyle()
}

// Style 是各区块的字号、间距与颜色，单位 pt。
type Style struct {
	BodySize    float64 `json:"bodySize"`
	SmallSize   float64 `json:"smallSize"`
	TitleSize   float64 `json:"titleSize"`
	HeadingSize float64 `json:"headingSize"`
	LineFactor  float64 `json:"lineFactor"` // 行高 = 字号 × LineFactor

	CellPadding     float64 `json:"cellPadding"`
	MinRowHeight    float64 `json:"minRowHeight"`
	SectionGap      float64 `json:"sectionGap"`
	ColumnGap       float64 `json:"columnGap"`
	SeparatorHeight float64 `json:"separatorHeight"`
	FooterHeight    float64 `json:"footerHeight"`
	FooterLeadIn    float64 `json:"footerLeadIn"` // 页脚之前至少保留的额外空间

	Text   Color `json:"text"`
	Muted  Color `json:"muted"`
	Accent Color `json:"accent"`
	Band   Color `json:"band"` // 表头与合计行底色
	Line   Color `json:"line"`
}

// DefaultStyle 返回默认样式。
func DefaultStyle() Style {
	return Style{
		BodySize:        10,
		SmallSize:       8,
		TitleSize:       20,
		HeadingSize:     12,
		LineFactor:      1.4,
		CellPadding:     4,
		MinRowHeight:    22,
		SectionGap:      14,
		ColumnGap:       18,
		SeparatorHeight: 10,
		FooterHeight:    64,
		FooterLeadIn:    12,
		Text:            Color{R: 33, G: 37, B: 41},
		Muted:           Color{R: 108, G: 117, B: 125},
		Accent:          Color{R: 29, G: 78, B: 137},
		Band:            Color{R: 232, G: 238, B: 246},
		Line:            Color{R: 206, G: 212, B: 218},
	}
}

func (o Options) style() Style {
	if o.Style.BodySize <= 0 {
		return DefaultStyle()
	}
	return o.Style
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (s Style) lineHeight(size float64) float64 { return size * s.LineFactor }

func (s Style) body() Font    { return Font{Size: s.BodySize} }
func (s Style) bold() Font    { return Font{Size: s.BodySize, Bold: true} }
func (s Style) small() Font   { return Font{Size: s.SmallSize} }
func (s Style) title() Font   { return Font{Size: s.TitleSize, Bold: true} }
func (s Style) heading() Font { return Font{Size: s.HeadingSize, Bold: true} }
