package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/measure"
	"github.com/ByLCY/folio/renderer"
)

const defaultLineWidth = 0.2 // mm

// Renderer draws layout results via github.com/tdewolff/canvas and measures text with the same fonts.
// Layout coordinates are points; canvas works in millimeters, so every value is converted at this boundary.
// Measure 与 Render 都可以并发调用：测量共享一个字体族，每次渲染使用独立的字体族，
// 因为写出 PDF 时会修改字体表。
type Renderer struct {
	regular []byte
	bold    []byte
	loadErr error

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var (
	_ renderer.Renderer   = (*Renderer)(nil)
	_ layout.TextMeasurer = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Regular Resource // 为空时使用内置 Latin Modern Sans
	Bold    Resource
}

// Resource can be provided either by Bytes or by Path.
// Path 也接受内置字体名称或 "embed:" 前缀。
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer using the built-in fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts.
// 字体读取失败不会在这里报错，而是在首次测量或渲染时返回。
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{}
	r.regular, r.loadErr = opts.Regular.load(fonts.Regular)
	if r.loadErr == nil {
		r.bold, r.loadErr = opts.Bold.load(fonts.Bold)
	}
	return r
}

func (res Resource) load(fallback string) ([]byte, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, nil
	}
	return fonts.Load(res.Path, fallback)
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, renderer.ErrEmptyResult
	}
	if len(result.Pages) == 0 {
		return nil, renderer.ErrNoPages
	}
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	family, err := newFamily(r.regular, r.bold)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	s := &pdfSurface{family: family, out: &buf, meta: result.Meta}
	if err := renderer.Walk(result, s); err != nil {
		return nil, err
	}
	if err := s.close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Measure 实现 layout.TextMeasurer：使用真实字形宽度贪心折行。字号与宽度单位均为 pt。
func (r *Renderer) Measure(text string, font layout.Font, maxWidth float64) (layout.Measurement, error) {
	if text == "" {
		return layout.Measurement{}, nil
	}
	family, err := r.ensureFamily()
	if err != nil {
		return layout.Measurement{}, err
	}
	face := fontFace(family, font, layout.Color{})
	width := func(s string) float64 { return toPt(face.TextWidth(s)) }
	return measure.FromLines(measure.Wrap(text, maxWidth, width)), nil
}

// pdfSurface 实现 renderer.Surface：每页一个 canvas，BeginPage 时把上一页写入 PDF。
type pdfSurface struct {
	family *canvas.FontFamily
	out    *bytes.Buffer
	meta   layout.DocumentMeta
	writer *pdf.PDF
	canvas *canvas.Canvas
	ctx    *canvas.Context
}

func (s *pdfSurface) BeginPage(width, height float64) error {
	w, h := toMm(width), toMm(height)
	s.flush()
	if s.writer == nil {
		s.writer = pdf.New(s.out, w, h, nil)
		applyMeta(s.writer, s.meta)
	} else {
		s.writer.NewPage(w, h)
	}
	s.canvas = canvas.New(w, h)
	s.ctx = canvas.NewContext(s.canvas)
	s.ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	return nil
}

func (s *pdfSurface) flush() {
	if s.canvas != nil {
		s.canvas.RenderTo(s.writer)
		s.canvas, s.ctx = nil, nil
	}
}

func (s *pdfSurface) close() error {
	s.flush()
	if s.writer == nil {
		return nil
	}
	return s.writer.Close()
}

func (s *pdfSurface) FillRect(x, y, width, height float64, fill layout.Color) error {
	s.ctx.SetFillColor(colorFromLayout(fill))
	s.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	s.ctx.SetStrokeWidth(0)
	s.ctx.DrawPath(toMm(x), toMm(y), canvas.Rectangle(toMm(width), toMm(height)))
	return nil
}

func (s *pdfSurface) Line(x1, y1, x2, y2, width float64, col layout.Color) error {
	w := toMm(width)
	if w <= 0 {
		w = defaultLineWidth
	}
	s.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	s.ctx.SetStrokeColor(colorFromLayout(col))
	s.ctx.SetStrokeWidth(w)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(toMm(x2-x1), toMm(y2-y1))
	s.ctx.DrawPath(toMm(x1), toMm(y1), p)
	return nil
}

func (s *pdfSurface) Text(x, y, _ float64, content string, style renderer.TextStyle) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	face := fontFace(s.family, style.Font, style.Color)
	// 基线位置：行框顶部加上半个行距，再加字体上升部（均为 mm）。
	metrics := face.Metrics()
	leading := math.Max(toMm(style.LineHeight)-metrics.LineHeight, 0)
	baseline := toMm(y) + leading/2 + metrics.Ascent
	s.ctx.DrawText(toMm(x), baseline, canvas.NewTextLine(face, content, canvas.Left))
	return nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// fontFace 返回指定字号（pt）与颜色的字体面。
func fontFace(family *canvas.FontFamily, font layout.Font, col layout.Color) *canvas.FontFace {
	style := canvas.FontRegular
	if font.Bold {
		style = canvas.FontBold
	}
	return family.Face(font.Size, colorFromLayout(col), style, canvas.FontNormal)
}

func (r *Renderer) ensureFamily() (*canvas.FontFamily, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}
	family, err := newFamily(r.regular, r.bold)
	if err != nil {
		return nil, err
	}
	r.family = family
	return family, nil
}

func newFamily(regular, bold []byte) (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("folio")
	if err := family.LoadFont(regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载常规字体失败: %w", err)
	}
	if err := family.LoadFont(bold, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("加载粗体字体失败: %w", err)
	}
	return family, nil
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
