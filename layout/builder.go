package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/money"
)

// 表格列宽比例：描述、数量、单价、金额。
var columnRatios = [4]float64{0.52, 0.12, 0.18, 0.18}

const (
	totalsWidthRatio = 0.45
	ruleWidth        = 0.5
	creator          = "folio"
)

// Build 根据文档模型与页面几何计算分页布局，按区块顺序单遍推进游标。
// 几何非法或固定高度区块放不进空白页时返回配置错误；其余数据问题都在本地降级处理。
// Build 不持有跨调用状态，可以并发调用。
func Build(model *document.Model, geometry PageGeometry, opts Options) (*Result, error) {
	if model == nil {
		return nil, errors.New("layout: 文档为空")
	}
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	if opts.Measurer == nil {
		return nil, ErrNilMeasurer
	}

	doc := model.Normalize()
	b := &builder{
		model:    doc,
		labels:   doc.Labels(),
		money:    money.NewFormatter(doc.Locale),
		currency: doc.Currency,
		geometry: geometry,
		style:    opts.style(),
		measurer: opts.Measurer,
		logger:   opts.logger(),
		left:     geometry.Margin.Left,
		width:    geometry.ContentWidth(),
	}
	return b.build()
}

type builder struct {
	model    document.Model
	labels   document.Labels
	money    *money.Formatter
	currency string
	geometry PageGeometry
	style    Style
	measurer TextMeasurer
	logger   *slog.Logger

	left  float64
	width float64

	cursor   *Cursor
	lastKind BlockKind
	warnings []Warning
}

func (b *builder) build() (*Result, error) {
	totals := b.model.Totals()

	heading, err := b.headingBlock()
	if err != nil {
		return nil, err
	}
	tableHeader, err := b.tableHeaderBlock()
	if err != nil {
		return nil, err
	}
	totalsBox, err := b.totalsBlock(totals)
	if err != nil {
		return nil, err
	}
	footer := b.footerBlock()

	// 固定高度区块必须能放进一张空白页，否则属于几何配置错误。
	usable := b.geometry.UsableHeight()
	for _, blk := range []Block{heading, tableHeader, totalsBox, footer} {
		if blk.Height > usable {
			return nil, fmt.Errorf("%w: %s 需要 %.1fpt，页面可用高度 %.1fpt", ErrSectionTooTall, blk.Kind, blk.Height, usable)
		}
	}

	b.cursor = NewCursor(b.geometry)

	b.place(heading)
	b.place(b.separatorBlock())
	b.gap()

	parties, err := b.partiesBlock()
	if err != nil {
		return nil, err
	}
	b.place(parties)
	b.gap()

	if err := b.paragraph("title", "", b.model.Title, b.style.heading()); err != nil {
		return nil, err
	}
	if err := b.paragraph("description", "", b.model.Description, b.style.body()); err != nil {
		return nil, err
	}
	b.gap()

	// 表头只放一次，分页后不重复。
	b.place(tableHeader)
	for i, it := range b.model.Items {
		row, err := b.rowBlock(i, it)
		if err != nil {
			return nil, err
		}
		b.place(row)
	}
	b.gap()
	b.place(totalsBox)

	sections := []struct{ role, label, text string }{
		{"notes", b.labels.Notes, b.model.Notes},
		{"terms", b.labels.Terms, b.model.Terms},
	}
	for _, sec := range sections {
		if strings.TrimSpace(sec.text) == "" {
			continue
		}
		b.gap()
		if err := b.paragraph(sec.role, sec.label, sec.text, b.style.body()); err != nil {
			return nil, err
		}
	}

	b.placeFooter(footer)

	return &Result{
		Geometry: b.geometry,
		Pages:    b.cursor.Pages(),
		Totals:   totals,
		Warnings: b.warnings,
		Meta:     b.meta(),
	}, nil
}

// place 通过游标放置块；超高块记录为降级警告而不是错误。
func (b *builder) place(blk Block) {
	p := b.cursor.Place(blk)
	b.lastKind = blk.Kind
	if !p.Oversized {
		return
	}
	w := Warning{
		Page:    b.cursor.PageIndex(),
		Kind:    blk.Kind,
		Height:  blk.Height,
		Message: fmt.Sprintf("block height %.1fpt exceeds usable page height %.1fpt", blk.Height, b.geometry.UsableHeight()),
	}
	b.warnings = append(b.warnings, w)
	b.logger.Warn("oversized block",
		slog.Int("page", w.Page),
		slog.String("kind", string(w.Kind)),
		slog.Float64("height", w.Height),
		slog.Float64("usable", b.geometry.UsableHeight()),
	)
}

// gap 放置区块间距。页顶、空间不足或紧跟另一个间距时跳过。
func (b *builder) gap() {
	h := b.style.SectionGap
	if h <= 0 || b.cursor.AtTop() || b.lastKind == KindSpacer || h > b.cursor.Remaining() {
		return
	}
	b.place(Block{Kind: KindSpacer, X: b.left, Width: b.width, Height: h})
}

// placeFooter 先向前看：剩余空间不足以容纳间距、页脚与预留空间时换页，避免页脚孤零零地挤在页底。
func (b *builder) placeFooter(footer Block) {
	s := b.style
	need := s.SectionGap + footer.Height + s.FooterLeadIn
	if !b.cursor.AtTop() && b.cursor.Remaining() < need {
		b.cursor.NewPage()
	}
	b.gap()
	b.place(footer)
}

func (b *builder) measure(text string, font Font, maxWidth float64) (Measurement, error) {
	m, err := b.measurer.Measure(text, font, maxWidth)
	if err != nil {
		return Measurement{}, fmt.Errorf("测量文本失败: %w", err)
	}
	return m, nil
}

func (b *builder) run(content string, x, y, maxWidth float64, font Font, color Color) TextRun {
	return TextRun{
		Content:    content,
		X:          x,
		Y:          y,
		MaxWidth:   maxWidth,
		LineHeight: b.style.lineHeight(font.Size),
		Font:       font,
		Color:      color,
	}
}

// rightRun 生成右边缘对齐于 right 的单行文本；超出 maxWidth 时从列左边开始。
func (b *builder) rightRun(content string, right, maxWidth, y float64, font Font, color Color) (TextRun, error) {
	m, err := b.measure(content, font, 0)
	if err != nil {
		return TextRun{}, err
	}
	w := math.Min(m.Width, maxWidth)
	return b.run(content, right-w, y, maxWidth, font, color), nil
}

// columns 返回表格各列的边界 x 坐标。
func (b *builder) columns() [5]float64 {
	var xs [5]float64
	xs[0] = b.left
	for i, r := range columnRatios {
		xs[i+1] = xs[i] + r*b.width
	}
	return xs
}

func (b *builder) headingBlock() (Block, error) {
	s, l, h := b.style, b.labels, b.model.Header
	content := &HeadingContent{
		Title:  l.KindLabel(h.Kind),
		Issuer: b.model.Issuer.Name(l),
	}
	add := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			content.Meta = append(content.Meta, KeyValue{Key: key, Value: value})
		}
	}
	add(l.Reference, h.Reference)
	add(l.IssueDate, h.IssueDate.String())
	if h.DueDate != nil {
		add(l.DueDate, h.DueDate.String())
	}
	add(l.Status, h.Status)

	pad := s.CellPadding
	colW := b.width / 2
	blk := Block{Kind: KindHeading, X: b.left, Width: b.width, Heading: content}

	// 左列：标题与开票方名称，按列宽折行。
	left := pad
	for _, part := range []struct {
		text  string
		font  Font
		color Color
	}{
		{content.Title, s.title(), s.Accent},
		{content.Issuer, s.bold(), s.Text},
	} {
		m, err := b.measure(part.text, part.font, colW)
		if err != nil {
			return Block{}, err
		}
		for _, line := range m.Lines {
			blk.Texts = append(blk.Texts, b.run(line, b.left, left, colW, part.font, part.color))
			left += s.lineHeight(part.font.Size)
		}
	}

	// 右列：编号、日期等，每一行右对齐。
	right := pad
	for _, kv := range content.Meta {
		m, err := b.measure(kv.Key+": "+kv.Value, s.body(), colW)
		if err != nil {
			return Block{}, err
		}
		for _, line := range m.Lines {
			run, err := b.rightRun(line, b.left+b.width, colW, right, s.body(), s.Text)
			if err != nil {
				return Block{}, err
			}
			blk.Texts = append(blk.Texts, run)
			right += s.lineHeight(s.BodySize)
		}
	}
	blk.Height = math.Max(left, right) + pad
	return blk, nil
}

func (b *builder) separatorBlock() Block {
	h := b.style.SeparatorHeight
	return Block{
		Kind:   KindSeparator,
		X:      b.left,
		Width:  b.width,
		Height: h,
		Rules: []Rule{{
			X1: b.left, Y1: h / 2, X2: b.left + b.width, Y2: h / 2,
			Width: 2 * ruleWidth, Color: b.style.Accent,
		}},
	}
}

// partiesBlock 把开票方与客户并排放成一个整体，高度取两列中较高者。
func (b *builder) partiesBlock() (Block, error) {
	s, l := b.style, b.labels
	content := &PartiesContent{
		Issuer: PartyColumn{
			Label:  l.Issuer,
			Name:   b.model.Issuer.Name(l),
			Fields: b.model.Issuer.Fields(l),
		},
		Counterparty: PartyColumn{
			Label:  l.Counterparty,
			Name:   b.model.Counterparty.Name(l),
			Fields: b.model.Counterparty.Fields(l),
		},
	}
	blk := Block{Kind: KindKeyValueRow, X: b.left, Width: b.width, Parties: content}
	colW := (b.width - s.ColumnGap) / 2
	left, err := b.partyColumn(&blk, content.Issuer, b.left, colW)
	if err != nil {
		return Block{}, err
	}
	right, err := b.partyColumn(&blk, content.Counterparty, b.left+colW+s.ColumnGap, colW)
	if err != nil {
		return Block{}, err
	}
	blk.Height = math.Max(left, right)
	return blk, nil
}

func (b *builder) partyColumn(blk *Block, col PartyColumn, x, width float64) (float64, error) {
	s := b.style
	y := 0.0
	add := func(text string, font Font, color Color) error {
		m, err := b.measure(text, font, width)
		if err != nil {
			return err
		}
		lh := s.lineHeight(font.Size)
		for _, line := range m.Lines {
			blk.Texts = append(blk.Texts, b.run(line, x, y, width, font, color))
			y += lh
		}
		return nil
	}
	if err := add(col.Label, Font{Size: s.SmallSize, Bold: true}, s.Muted); err != nil {
		return 0, err
	}
	if err := add(col.Name, s.bold(), s.Text); err != nil {
		return 0, err
	}
	for _, f := range col.Fields {
		color := s.Text
		if f.Placeholder {
			color = s.Muted
		}
		if err := add(f.Text, s.body(), color); err != nil {
			return 0, err
		}
	}
	return y, nil
}

type paragraphLine struct {
	content string
	font    Font
	color   Color
	label   bool
}

// paragraph 放置一段折行文本。能放进空白页的段落整体预留；更高的段落按行拆成多块，
// 先填满当前页剩余空间再续到下一页，因此只有表格行可能成为超高块。
func (b *builder) paragraph(role, label, text string, font Font) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	s := b.style
	var lines []paragraphLine
	if label != "" {
		lines = append(lines, paragraphLine{content: label, font: s.heading(), color: s.Accent, label: true})
	}
	m, err := b.measure(text, font, b.width)
	if err != nil {
		return err
	}
	for _, ln := range m.Lines {
		lines = append(lines, paragraphLine{content: ln, font: font, color: s.Text})
	}

	if b.linesHeight(lines) <= b.geometry.UsableHeight() {
		b.place(b.paragraphBlock(role, label, lines, false))
		return nil
	}

	continued := false
	for len(lines) > 0 {
		n := b.fitLines(lines, b.cursor.Remaining())
		orphanLabel := n == 1 && lines[0].label && len(lines) > 1
		if (n == 0 || orphanLabel) && !b.cursor.AtTop() {
			b.cursor.NewPage()
			continue
		}
		if n == 0 {
			n = 1
		}
		b.place(b.paragraphBlock(role, label, lines[:n], continued))
		lines = lines[n:]
		continued = true
	}
	return nil
}

func (b *builder) linesHeight(lines []paragraphLine) float64 {
	h := 0.0
	for _, ln := range lines {
		h += b.style.lineHeight(ln.font.Size)
	}
	return h
}

// fitLines 返回在 avail 高度内能放下的前缀行数。
func (b *builder) fitLines(lines []paragraphLine, avail float64) int {
	h := 0.0
	for i, ln := range lines {
		h += b.style.lineHeight(ln.font.Size)
		if h > avail {
			return i
		}
	}
	return len(lines)
}

func (b *builder) paragraphBlock(role, label string, lines []paragraphLine, continued bool) Block {
	content := &ParagraphContent{Role: role, Label: label, Continued: continued}
	blk := Block{Kind: KindParagraph, X: b.left, Width: b.width, Paragraph: content}
	y := 0.0
	for _, ln := range lines {
		if !ln.label {
			content.Lines = append(content.Lines, ln.content)
		}
		blk.Texts = append(blk.Texts, b.run(ln.content, b.left, y, b.width, ln.font, ln.color))
		y += b.style.lineHeight(ln.font.Size)
	}
	blk.Height = y
	return blk
}

func (b *builder) tableHeaderBlock() (Block, error) {
	s, l := b.style, b.labels
	pad := s.CellPadding
	h := s.lineHeight(s.BodySize) + 2*pad
	cols := b.columns()
	blk := Block{
		Kind:   KindTableHeader,
		X:      b.left,
		Width:  b.width,
		Height: h,
		Rects:  []Rect{{X: b.left, Y: 0, Width: b.width, Height: h, Fill: s.Band}},
	}
	titles := [4]string{l.Description, l.Quantity, l.UnitPrice, l.LineTotal}
	blk.Texts = append(blk.Texts, b.run(titles[0], cols[0]+pad, pad, cols[1]-cols[0]-2*pad, s.bold(), s.Accent))
	for i := 1; i < len(titles); i++ {
		run, err := b.rightRun(titles[i], cols[i+1]-pad, cols[i+1]-cols[i]-2*pad, pad, s.bold(), s.Accent)
		if err != nil {
			return Block{}, err
		}
		blk.Texts = append(blk.Texts, run)
	}
	return blk, nil
}

// rowBlock 生成一行条目：高度 = max(最小行高, 描述行数×行高 + 备注行数×小字行高 + 上下内边距)。
// 数量与单价按原始输入显示，金额列显示参与汇总的值。
func (b *builder) rowBlock(index int, it document.LineItem) (Block, error) {
	s := b.style
	pad := s.CellPadding
	cols := b.columns()
	descW := cols[1] - cols[0] - 2*pad

	desc, err := b.measure(strings.TrimSpace(it.Description), s.body(), descW)
	if err != nil {
		return Block{}, err
	}
	notes, err := b.measure(strings.TrimSpace(it.Notes), s.small(), descW)
	if err != nil {
		return Block{}, err
	}
	bodyLH, smallLH := s.lineHeight(s.BodySize), s.lineHeight(s.SmallSize)
	h := math.Max(s.MinRowHeight, float64(desc.LineCount)*bodyLH+float64(notes.LineCount)*smallLH+2*pad)

	content := &RowContent{
		Index:       index,
		Description: desc.Lines,
		Notes:       notes.Lines,
		Quantity:    quantityText(it.Quantity),
		UnitPrice:   b.priceText(it.UnitPrice),
		LineTotal:   b.money.FormatDecimal(it.LineTotal(), b.currency),
	}
	blk := Block{Kind: KindTableRow, X: b.left, Width: b.width, Height: h, Row: content}

	y := pad
	for _, line := range desc.Lines {
		blk.Texts = append(blk.Texts, b.run(line, cols[0]+pad, y, descW, s.body(), s.Text))
		y += bodyLH
	}
	for _, line := range notes.Lines {
		blk.Texts = append(blk.Texts, b.run(line, cols[0]+pad, y, descW, s.small(), s.Muted))
		y += smallLH
	}
	for i, v := range [3]string{content.Quantity, content.UnitPrice, content.LineTotal} {
		c := i + 1
		run, err := b.rightRun(v, cols[c+1]-pad, cols[c+1]-cols[c]-2*pad, pad, s.body(), s.Text)
		if err != nil {
			return Block{}, err
		}
		blk.Texts = append(blk.Texts, run)
	}
	blk.Rules = []Rule{{X1: b.left, Y1: h, X2: b.left + b.width, Y2: h, Width: ruleWidth, Color: s.Line}}
	return blk, nil
}

// quantityText 原样显示数量，负数与 NaN/Inf 也如实呈现，便于人工发现异常数据。
func quantityText(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func (b *builder) priceText(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return strconv.FormatFloat(p, 'g', -1, 64)
	}
	return b.money.Format(p, b.currency)
}

// totalsBlock 生成右对齐的合计框：小计、税额与突出显示的总计，三者各自只舍入一次。
func (b *builder) totalsBlock(t document.Totals) (Block, error) {
	s, l := b.style, b.labels
	pad := s.CellPadding
	lh := s.lineHeight(s.BodySize)
	sub, tax, total := t.Rounded()
	content := &TotalsContent{
		Subtotal: KeyValue{Key: l.Subtotal, Value: b.money.FormatDecimal(sub, b.currency)},
		Tax:      KeyValue{Key: fmt.Sprintf("%s (%s%%)", l.Tax, t.TaxRate.String()), Value: b.money.FormatDecimal(tax, b.currency)},
		Total:    KeyValue{Key: l.Total, Value: b.money.FormatDecimal(total, b.currency)},
	}
	width := b.width * totalsWidthRatio
	x := b.left + b.width - width
	h := 3*lh + 3*pad
	blk := Block{
		Kind:   KindTotalsBox,
		X:      x,
		Width:  width,
		Height: h,
		Totals: content,
		Rects:  []Rect{{X: x, Y: 2*lh + 1.5*pad, Width: width, Height: lh + 1.5*pad, Fill: s.Band}},
	}
	rows := []struct {
		kv   KeyValue
		y    float64
		font Font
	}{
		{content.Subtotal, pad, s.body()},
		{content.Tax, pad + lh, s.body()},
		{content.Total, 2*lh + 2*pad, s.bold()},
	}
	half := width/2 - pad
	for _, r := range rows {
		blk.Texts = append(blk.Texts, b.run(r.kv.Key, x+pad, r.y, half, r.font, s.Text))
		run, err := b.rightRun(r.kv.Value, x+width-pad, half, r.y, r.font, s.Text)
		if err != nil {
			return Block{}, err
		}
		blk.Texts = append(blk.Texts, run)
	}
	return blk, nil
}

// footerBlock 生成固定高度的签名区：两条签名线及其下方标签。
func (b *builder) footerBlock() Block {
	s, l := b.style, b.labels
	h := s.FooterHeight
	content := &FooterContent{Signatures: []string{l.IssuerSignature, l.CounterpartySignature}}
	blk := Block{Kind: KindFooter, X: b.left, Width: b.width, Height: h, Footer: content}
	colW := (b.width - s.ColumnGap) / 2
	lineY := h - s.lineHeight(s.SmallSize) - s.CellPadding
	for i, label := range content.Signatures {
		x := b.left + float64(i)*(colW+s.ColumnGap)
		blk.Rules = append(blk.Rules, Rule{X1: x, Y1: lineY, X2: x + colW, Y2: lineY, Width: ruleWidth, Color: s.Muted})
		blk.Texts = append(blk.Texts, b.run(label, x, lineY+s.CellPadding/2, colW, s.small(), s.Muted))
	}
	return blk
}

func (b *builder) meta() DocumentMeta {
	l, h := b.labels, b.model.Header
	title := strings.TrimSpace(l.KindLabel(h.Kind) + " " + strings.TrimSpace(h.Reference))
	return DocumentMeta{
		Title:    title,
		Author:   b.model.Issuer.Name(l),
		Subject:  strings.TrimSpace(b.model.Title),
		Creator:  creator,
		Keywords: []string{string(h.Kind), b.currency},
	}
}
