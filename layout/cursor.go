package layout

// Cursor 是布局过程中唯一的控制状态：当前页与当前写入位置 y。
// 它只向前推进，(PageIndex, Y) 在整个过程中按字典序单调不减。
type Cursor struct {
	geometry PageGeometry
	pages    []Page
	y        float64
	fresh    bool
}

// NewCursor 创建一个位于首页内容区顶部的游标。
func NewCursor(g PageGeometry) *Cursor {
	c := &Cursor{geometry: g}
	c.NewPage()
	return c
}

// PageIndex 返回当前页序号（从 0 开始）。
func (c *Cursor) PageIndex() int { return len(c.pages) - 1 }

// Y 返回当前写入位置。
func (c *Cursor) Y() float64 { return c.y }

// Remaining 返回当前页剩余可用高度。放置超高块后可能为负。
func (c *Cursor) Remaining() float64 { return c.geometry.ContentBottom() - c.y }

// AtTop 报告当前页是否还未放置任何内容。
func (c *Cursor) AtTop() bool { return c.fresh }

// NewPage 追加一页空白页并把 y 重置到上边距。
func (c *Cursor) NewPage() {
	g := c.geometry
	c.pages = append(c.pages, Page{
		Index:  len(c.pages),
		Width:  g.Width,
		Height: g.Height,
		Margin: g.Margin,
	})
	c.y = g.Margin.Top
	c.fresh = true
}

// Reserve 为高度 h 的块预留空间，返回块所在页与起始 y。
// 剩余空间不足时先换页；已在空白页顶部时不再换页，超出整页的块原地放置并返回 oversized。
func (c *Cursor) Reserve(h float64) (page int, y float64, oversized bool) {
	if h > c.Remaining() && !c.fresh {
		c.NewPage()
	}
	oversized = h > c.Remaining()
	page, y = c.PageIndex(), c.y
	c.y += h
	c.fresh = false
	return page, y, oversized
}

// Place 预留空间并把块记录到所在页。
func (c *Cursor) Place(b Block) Placement {
	page, y, oversized := c.Reserve(b.Height)
	p := Placement{Block: b, Y: y, Oversized: oversized}
	c.pages[page].Placements = append(c.pages[page].Placements, p)
	return p
}

// Pages 返回到目前为止产生的所有页面。
func (c *Cursor) Pages() []Page { return c.pages }
