package document

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals 是由条目派生的汇总金额，均未舍入；显示时通过 Rounded 一次性舍入到两位小数。
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	TaxRate  decimal.Decimal `json:"taxRate"`
}

// Usable 报告数量与单价是否可参与汇总：必须是有限的非负数。
func (it LineItem) Usable() bool {
	return usable(it.Quantity) && usable(it.UnitPrice)
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// LineTotal 返回参与汇总的行金额，不可用的条目计为 0。
func (it LineItem) LineTotal() decimal.Decimal {
	if !it.Usable() {
		return decimal.Zero
	}
	return decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.UnitPrice))
}

// Totals 计算 subtotal = Σ lineTotal、tax = subtotal × rate / 100、total = subtotal + tax。
func (m Model) Totals() Totals {
	sub := decimal.Zero
	for _, it := range m.Items {
		sub = sub.Add(it.LineTotal())
	}
	rate := decimal.NewFromFloat(m.TaxRate())
	tax := sub.Mul(rate).Div(hundred)
	return Totals{
		Subtotal: sub,
		Tax:      tax,
		Total:    sub.Add(tax),
		TaxRate:  rate,
	}
}

// Rounded 分别把三个金额舍入到两位小数；total 由未舍入的和舍入一次得到。
func (t Totals) Rounded() (subtotal, tax, total decimal.Decimal) {
	return t.Subtotal.Round(2), t.Tax.Round(2), t.Total.Round(2)
}
