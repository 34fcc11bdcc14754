// Package renderer 定义布局结果的输出协作方：Renderer 产出最终字节，
// Surface 是绘制目标需要提供的最小能力集合。
package renderer

import (
	"errors"
	"fmt"

	"github.com/ByLCY/folio/layout"
)

var (
	ErrEmptyResult = errors.New("renderer: 渲染结果为空")
	ErrNoPages     = errors.New("renderer: 缺少可渲染的页面")
)

// Renderer 将布局结果输出为最终文件，例如 PDF 或纯文本。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// TextStyle 是绘制一行文本所需的样式。
type TextStyle struct {
	Font       layout.Font
	Color      layout.Color
	LineHeight float64
}

// Surface 只要求分页、填充矩形、线段与左对齐文本四种能力。
// 坐标单位为 pt，原点位于页面左上角；Text 的 y 是行框顶边。
type Surface interface {
	BeginPage(width, height float64) error
	FillRect(x, y, width, height float64, fill layout.Color) error
	Line(x1, y1, x2, y2, width float64, color layout.Color) error
	Text(x, y, maxWidth float64, content string, style TextStyle) error
}

// Walk 按页、按放置顺序把布局结果绘制到 s。
func Walk(result *layout.Result, s Surface) error {
	if result == nil {
		return ErrEmptyResult
	}
	if len(result.Pages) == 0 {
		return ErrNoPages
	}
	for _, page := range result.Pages {
		if err := s.BeginPage(page.Width, page.Height); err != nil {
			return fmt.Errorf("第 %d 页: %w", page.Index, err)
		}
		for _, p := range page.Placements {
			if err := DrawBlock(s, p.Block, p.Y); err != nil {
				return fmt.Errorf("第 %d 页 %s: %w", page.Index, p.Block.Kind, err)
			}
		}
	}
	return nil
}

// DrawBlock 以 top 为块顶部绘制一个块：先填充矩形作为背景，再画线段与文本。
func DrawBlock(s Surface, b layout.Block, top float64) error {
	for _, rc := range b.Rects {
		if err := s.FillRect(rc.X, top+rc.Y, rc.Width, rc.Height, rc.Fill); err != nil {
			return err
		}
	}
	for _, ln := range b.Rules {
		if err := s.Line(ln.X1, top+ln.Y1, ln.X2, top+ln.Y2, ln.Width, ln.Color); err != nil {
			return err
		}
	}
	for _, tr := range b.Texts {
		style := TextStyle{Font: tr.Font, Color: tr.Color, LineHeight: tr.LineHeight}
		if err := s.Text(tr.X, top+tr.Y, tr.MaxWidth, tr.Content, style); err != nil {
			return err
		}
	}
	return nil
}
