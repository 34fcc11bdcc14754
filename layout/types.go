package layout

import (
	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/measure"
)

// 该文件定义布局结果，供布局计算、渲染与调试 JSON 共用。坐标与尺寸单位均为 pt，
// 原点位于页面左上角，y 向下增长。

// Font 与 Measurement 由 measure 包定义，这里只做别名，方便调用方只依赖 layout。
type (
	Font        = measure.Font
	Measurement = measure.Measurement
)

// BlockKind 是块的类型标签。
type BlockKind string

const (
	KindHeading     BlockKind = "heading"
	KindKeyValueRow BlockKind = "keyValueRow"
	KindParagraph   BlockKind = "paragraph"
	KindTableHeader BlockKind = "tableHeader"
	KindTableRow    BlockKind = "tableRow"
	KindTotalsBox   BlockKind = "totalsBox"
	KindSeparator   BlockKind = "separator"
	KindSpacer      BlockKind = "spacer"
	KindFooter      BlockKind = "footer"
)

// Result 保存布局后的页面、汇总金额与降级警告。
type Result struct {
	Geometry PageGeometry    `json:"geometry"`
	Pages    []Page          `json:"pages"`
	Totals   document.Totals `json:"totals"`
	Warnings []Warning       `json:"warnings,omitempty"`
	Meta     DocumentMeta    `json:"meta"`
}

// Page 记录页面尺寸、边距与按顺序放置的块。
type Page struct {
	Index      int         `json:"index"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Margin     Margin      `json:"margin"`
	Placements []Placement `json:"placements"`
}

// Placement 是一个块在页面上的纵向位置。Oversized 表示块高于整页可用高度，被单独放在新页上。
type Placement struct {
	Block     Block   `json:"block"`
	Y         float64 `json:"y"`
	Oversized bool    `json:"oversized,omitempty"`
}

// Bottom 返回块底边的 y 坐标。
func (p Placement) Bottom() float64 { return p.Y + p.Block.Height }

// Warning 记录一次降级排版。
type Warning struct {
	Page    int       `json:"page"`
	Kind    BlockKind `json:"kind"`
	Height  float64   `json:"height"`
	Message string    `json:"message"`
}

// Block 是一个已定尺寸的内容单元。语义内容保存在对应 kind 的字段中；
// Texts/Rects/Rules 是预先算好的绘制指令，y 坐标相对于块顶部。
type Block struct {
	Kind   BlockKind `json:"kind"`
	X      float64   `json:"x"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`

	Heading   *HeadingContent   `json:"heading,omitempty"`
	Parties   *PartiesContent   `json:"parties,omitempty"`
	Paragraph *ParagraphContent `json:"paragraph,omitempty"`
	Row       *RowContent       `json:"row,omitempty"`
	Totals    *TotalsContent    `json:"totals,omitempty"`
	Footer    *FooterContent    `json:"footer,omitempty"`

	Texts []TextRun `json:"texts,omitempty"`
	Rects []Rect    `json:"rects,omitempty"`
	Rules []Rule    `json:"rules,omitempty"`
}

// HeadingContent 是文档头部：标题、开票方名称与右侧的键值行。
type HeadingContent struct {
	Title  string     `json:"title"`
	Issuer string     `json:"issuer"`
	Meta   []KeyValue `json:"meta"`
}

// KeyValue 是一行 "标签: 值"。
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PartiesContent 是并排的两方信息。
type PartiesContent struct {
	Issuer       PartyColumn `json:"issuer"`
	Counterparty PartyColumn `json:"counterparty"`
}

// PartyColumn 是一方的标签、名称与按占位符策略处理后的字段。
type PartyColumn struct {
	Label  string           `json:"label"`
	Name   string           `json:"name"`
	Fields []document.Field `json:"fields"`
}

// ParagraphContent 是一段折行后的文本。长段落会被拆成多块，Continued 标记续块。
type ParagraphContent struct {
	Role      string   `json:"role"`
	Label     string   `json:"label,omitempty"`
	Lines     []string `json:"lines"`
	Continued bool     `json:"continued,omitempty"`
}

// RowContent 是表格中的一行条目，数值列为已格式化的显示文本。
type RowContent struct {
	Index       int      `json:"index"`
	Description []string `json:"description"`
	Notes       []string `json:"notes,omitempty"`
	Quantity    string   `json:"quantity"`
	UnitPrice   string   `json:"unitPrice"`
	LineTotal   string   `json:"lineTotal"`
}

// TotalsContent 是汇总框中的三行金额。
type TotalsContent struct {
	Subtotal KeyValue `json:"subtotal"`
	Tax      KeyValue `json:"tax"`
	Total    KeyValue `json:"total"`
}

// FooterContent 是签名区的两个标签。
type FooterContent struct {
	Signatures []string `json:"signatures"`
}

// TextRun 是一行左对齐文本。X 为页面坐标，Y 为相对块顶部的行框顶边，
// LineHeight 为行框高度。右对齐在布局阶段通过测量宽度换算为 X。
type TextRun struct {
	Content    string  `json:"content"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	MaxWidth   float64 `json:"maxWidth"`
	LineHeight float64 `json:"lineHeight"`
	Font       Font    `json:"font"`
	Color      Color   `json:"color"`
}

// Rect 是一个填充矩形，Y 相对块顶部。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   Color   `json:"fill"`
}

// Rule 是一条线段，Y1/Y2 相对块顶部。
type Rule struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"` // <=0 时由渲染器给默认值
	Color Color   `json:"color"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
