package measure

import "unicode/utf8"

// 等宽近似下每个字符的宽度系数（相对字号）。
const (
	RegularAdvance = 0.5
	BoldAdvance    = 0.55
)

// Monospace 是一个纯函数式的文本测量实现：每个字符宽度 = 字号 × 系数。
// 适用于测试、纯文本输出以及没有字体文件的环境。
type Monospace struct{}

// Measure 实现 layout.TextMeasurer。
func (Monospace) Measure(text string, font Font, maxWidth float64) (Measurement, error) {
	advance := font.Size * RegularAdvance
	if font.Bold {
		advance = font.Size * BoldAdvance
	}
	width := func(s string) float64 {
		return float64(utf8.RuneCountInString(s)) * advance
	}
	return FromLines(Wrap(text, maxWidth, width)), nil
}
