// Package measure 提供文本测量所需的公共类型、贪心折行算法以及一个不依赖字体文件的等宽近似实现。
package measure

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Font 描述测量与绘制文本所需的字体参数，字号单位为 pt。
type Font struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold,omitempty"`
}

// Measurement 是一次测量的结果。
// Width 为折行后最宽一行的宽度（pt），Lines 为折行后的各行内容。
type Measurement struct {
	LineCount int      `json:"lineCount"`
	Width     float64  `json:"width"`
	Lines     []string `json:"lines,omitempty"`
}

// Line 表示折行后的一行及其宽度。
type Line struct {
	Content string
	Width   float64
}

// WidthFunc 返回字符串在某个字体下的渲染宽度。
type WidthFunc func(s string) float64

// Wrap 以贪心策略在空白处折行，limit <= 0 表示不限宽度。
// 显式换行符总会产生新行；单个单词超出 limit 时按字符拆分。
// 空字符串返回 nil。
func Wrap(content string, limit float64, width WidthFunc) []Line {
	if content == "" {
		return nil
	}
	if limit <= 0 || math.IsNaN(limit) {
		limit = math.MaxFloat64
	}
	content = strings.ReplaceAll(content, "\r", "")

	var lines []Line
	for _, paragraph := range strings.Split(content, "\n") {
		lines = append(lines, wrapParagraph(paragraph, limit, width)...)
	}
	return lines
}

func wrapParagraph(paragraph string, limit float64, width WidthFunc) []Line {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []Line{{Content: "", Width: 0}}
	}

	var lines []Line
	current := ""
	emit := func() {
		lines = append(lines, Line{Content: current, Width: width(current)})
		current = ""
	}

	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if width(candidate) <= limit {
			current = candidate
			continue
		}
		if current != "" {
			emit()
		}
		if width(word) <= limit {
			current = word
			continue
		}
		chunks := splitByWidth(word, limit, width)
		for _, chunk := range chunks[:len(chunks)-1] {
			current = chunk
			emit()
		}
		current = chunks[len(chunks)-1]
	}
	if current != "" {
		emit()
	}
	return lines
}

// splitByWidth 将超宽的单词按字符切分，每段至少包含一个字符。
func splitByWidth(word string, limit float64, width WidthFunc) []string {
	var parts []string
	var builder strings.Builder
	for _, r := range word {
		builder.WriteRune(r)
		if width(builder.String()) > limit && utf8.RuneCountInString(builder.String()) > 1 {
			s := builder.String()
			_, size := utf8.DecodeLastRuneInString(s)
			parts = append(parts, s[:len(s)-size])
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}

// FromLines 汇总折行结果为 Measurement。
func FromLines(lines []Line) Measurement {
	m := Measurement{LineCount: len(lines)}
	if len(lines) == 0 {
		return m
	}
	m.Lines = make([]string, len(lines))
	for i, ln := range lines {
		m.Lines[i] = ln.Content
		if ln.Width > m.Width {
			m.Width = ln.Width
		}
	}
	return m
}
