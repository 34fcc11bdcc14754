package measure

import (
	"strings"
	"testing"
)

func charWidth(s string) float64 { return float64(len([]rune(s))) }

func TestWrapEmptyContent(t *testing.T) {
	if lines := Wrap("", 10, charWidth); lines != nil {
		t.Fatalf("空字符串应返回 nil，实际 %v", lines)
	}
	m, _ := Monospace{}.Measure("", Font{Size: 10}, 100)
	if m.LineCount != 0 || m.Width != 0 {
		t.Fatalf("空字符串测量应为 0 行 0 宽，实际 %+v", m)
	}
}

func TestWrapBreaksAtWords(t *testing.T) {
	lines := Wrap("aaa bbb ccc", 7, charWidth)
	if len(lines) != 2 {
		t.Fatalf("期望 2 行，实际 %d: %v", len(lines), lines)
	}
	if lines[0].Content != "aaa bbb" || lines[1].Content != "ccc" {
		t.Fatalf("折行内容不符: %v", lines)
	}
	if lines[0].Width != 7 {
		t.Fatalf("首行宽度应为 7，实际 %g", lines[0].Width)
	}
}

func TestWrapHonorsNewlines(t *testing.T) {
	lines := Wrap("foo\n\nbar", 100, charWidth)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1].Content != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1].Content)
	}
}

// 当第一行宽度与限制恰好相等且后面紧跟显式换行时，不应产生额外空行。
func TestNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	lines := Wrap("SAMPLE-A\nSAMPLE-B", 8, charWidth)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines without blank, got %d: %v", len(lines), lines)
	}
}

func TestWrapSplitsOverlongWord(t *testing.T) {
	lines := Wrap(strings.Repeat("a", 25), 10, charWidth)
	if len(lines) != 3 {
		t.Fatalf("期望 3 行，实际 %d", len(lines))
	}
	for i, ln := range lines {
		if ln.Width > 10 {
			t.Fatalf("第 %d 行宽度超限: %g", i, ln.Width)
		}
	}
}

func TestWrapWhitespaceOnlyIsOneLine(t *testing.T) {
	m := FromLines(Wrap("   ", 10, charWidth))
	if m.LineCount != 1 {
		t.Fatalf("非空文本至少 1 行，实际 %d", m.LineCount)
	}
}

// TestMonospaceMonotonic 验证：放宽宽度限制不会增加行数。
func TestMonospaceMonotonic(t *testing.T) {
	text := "Diseño de identidad corporativa completa con manual de marca, papelería y adaptación a redes sociales"
	font := Font{Size: 10}
	prev := -1
	for width := 60.0; width <= 600; width += 7 {
		m, err := Monospace{}.Measure(text, font, width)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prev >= 0 && m.LineCount > prev {
			t.Fatalf("宽度 %g 时行数 %d 大于更窄宽度的 %d", width, m.LineCount, prev)
		}
		if m.Width > width+1e-9 {
			t.Fatalf("宽度 %g 时行宽 %g 超限", width, m.Width)
		}
		prev = m.LineCount
	}
}

func TestMonospaceBoldIsWider(t *testing.T) {
	regular, _ := Monospace{}.Measure("Total", Font{Size: 10}, 0)
	bold, _ := Monospace{}.Measure("Total", Font{Size: 10, Bold: true}, 0)
	if regular.Width != 25 {
		t.Fatalf("常规字重宽度应为 25，实际 %g", regular.Width)
	}
	if bold.Width <= regular.Width {
		t.Fatalf("粗体宽度 %g 应大于常规 %g", bold.Width, regular.Width)
	}
}
