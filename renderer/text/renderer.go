// Package text 把布局结果渲染为等宽纯文本，用于合同正文预览与终端输出。
// 文本按所在行框的 y 分组成行，x 坐标按列宽换算为字符列，页与页之间以换页符分隔。
package text

import (
	"math"
	"sort"
	"strings"

	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

// DefaultColumns 是一页的默认字符列数。
const DefaultColumns = 96

// PageBreak 分隔相邻两页。
const PageBreak = "\f\n"

// Renderer 实现 renderer.Renderer。
type Renderer struct {
	Columns int // <=0 时使用 DefaultColumns
}

var _ renderer.Renderer = (*Renderer)(nil)

// New 创建使用默认列数的纯文本渲染器。
func New() *Renderer { return &Renderer{} }

// Render 返回 UTF-8 纯文本。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	cols := r.Columns
	if cols <= 0 {
		cols = DefaultColumns
	}
	s := &surface{columns: cols}
	if err := renderer.Walk(result, s); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

type item struct {
	x, y    float64
	seq     int
	content string
}

type page struct {
	width float64
	items []item
}

type surface struct {
	columns int
	pages   []*page
	seq     int
}

func (s *surface) BeginPage(width, _ float64) error {
	s.pages = append(s.pages, &page{width: width})
	return nil
}

// 纯文本不绘制背景与线段。
func (s *surface) FillRect(_, _, _, _ float64, _ layout.Color) error { return nil }

func (s *surface) Line(_, _, _, _, _ float64, _ layout.Color) error { return nil }

func (s *surface) Text(x, y, _ float64, content string, _ renderer.TextStyle) error {
	p := s.pages[len(s.pages)-1]
	p.items = append(p.items, item{x: x, y: round2(y), seq: s.seq, content: content})
	s.seq++
	return nil
}

func (s *surface) String() string {
	out := make([]string, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, p.render(s.columns))
	}
	return strings.Join(out, PageBreak)
}

func (p *page) render(columns int) string {
	items := append([]item(nil), p.items...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].y != items[j].y {
			return items[i].y < items[j].y
		}
		if items[i].x != items[j].x {
			return items[i].x < items[j].x
		}
		return items[i].seq < items[j].seq
	})
	colWidth := p.width / float64(columns)

	var lines []string
	for i := 0; i < len(items); {
		j := i
		var line []rune
		for ; j < len(items) && items[j].y == items[i].y; j++ {
			col := int(math.Round(items[j].x / colWidth))
			if len(line) > 0 && col <= len(line) {
				col = len(line) + 1
			}
			for len(line) < col {
				line = append(line, ' ')
			}
			line = append(line, []rune(items[j].content)...)
		}
		lines = append(lines, strings.TrimRight(string(line), " "))
		i = j
	}
	return strings.Join(lines, "\n") + "\n"
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
