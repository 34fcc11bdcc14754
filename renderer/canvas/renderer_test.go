package canvasrenderer

import (
	"bytes"
	"sync"
	"testing"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/layout"
)

var body = layout.Font{Size: 12}

func TestMeasureGreedyWrapsText(t *testing.T) {
	r := NewRenderer()
	m, err := r.Measure("hello world again", body, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.LineCount < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", m.LineCount)
	}
	if m.Width > 30 {
		t.Fatalf("widest line %g exceeds limit", m.Width)
	}
}

func TestMeasureHonorsNewlines(t *testing.T) {
	r := NewRenderer()
	m, err := r.Measure("foo\n\nbar", body, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.LineCount != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", m.LineCount)
	}
	if m.Lines[1] != "" {
		t.Fatalf("expected middle line to be blank, got %q", m.Lines[1])
	}
}

// 当第一行宽度与容器宽度恰好相等且后面紧跟一个显式换行时，不应产生额外的空行。
func TestNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	r := NewRenderer()
	first := "SAMPLE-A"
	measured, err := r.Measure(first, body, 0)
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if measured.LineCount != 1 || measured.Width <= 0 {
		t.Fatalf("unexpected measurement: %+v", measured)
	}

	m, err := r.Measure(first+"\nSAMPLE-B", body, measured.Width)
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if m.LineCount != 2 || m.Lines[0] != first || m.Lines[1] != "SAMPLE-B" {
		t.Fatalf("expected 2 lines without blank, got %q", m.Lines)
	}
}

func TestMeasureBoldIsWider(t *testing.T) {
	r := NewRenderer()
	regular, _ := r.Measure("Invoice total", body, 0)
	bold, _ := r.Measure("Invoice total", layout.Font{Size: 12, Bold: true}, 0)
	if bold.Width <= regular.Width {
		t.Fatalf("bold width %g should exceed regular %g", bold.Width, regular.Width)
	}
	if empty, _ := r.Measure("", body, 100); empty.LineCount != 0 || empty.Width != 0 {
		t.Fatalf("empty text should measure zero: %+v", empty)
	}
}

func TestMeasureConcurrent(t *testing.T) {
	r := NewRenderer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Measure("concurrent measurement", body, 50); err != nil {
				t.Errorf("measure error: %v", err)
			}
		}()
	}
	wg.Wait()
}

// 同一个 Renderer 上并发布局与渲染，各次渲染写出字体时互不干扰（配合 -race 运行）。
func TestRenderConcurrent(t *testing.T) {
	r := NewRenderer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := layout.Build(sampleModel(), layout.A4(36), layout.Options{Measurer: r})
			if err != nil {
				t.Errorf("layout failed: %v", err)
				return
			}
			out, err := r.Render(res)
			if err != nil {
				t.Errorf("render failed: %v", err)
				return
			}
			if !bytes.HasPrefix(out, []byte("%PDF")) {
				t.Errorf("output is not a PDF")
			}
		}()
	}
	wg.Wait()
}

func sampleModel() *document.Model {
	return &document.Model{
		Issuer:       document.Party{DisplayName: "Estudio Norte"},
		Counterparty: document.Party{DisplayName: "Cliente SA"},
		Header:       document.Header{Kind: document.KindInvoice, Reference: "F-1", IssueDate: document.NewDate(2026, 3, 1)},
		Items: []document.LineItem{
			{Description: "Logo", Quantity: 2, UnitPrice: 100},
			{Description: "Business cards", Quantity: 1, UnitPrice: 50, Notes: "500 units"},
		},
		Terms: "Payment within 30 days.",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	res, err := layout.Build(sampleModel(), layout.A4(36), layout.Options{Measurer: r})
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("expected error for empty result")
	}
	broken := NewRendererWithOptions(Options{Regular: Resource{Path: "/nonexistent/font.ttf"}})
	if _, err := broken.Measure("x", body, 0); err == nil {
		t.Fatalf("expected font load error")
	}
}
