// Package document 定义排版引擎的输入：结构化、已校验的商业文档模型（发票、报价单、合同）。
package document

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ByLCY/folio/money"
)

// Kind 是文档类型。
type Kind string

const (
	KindInvoice  Kind = "invoice"
	KindBudget   Kind = "budget"
	KindContract Kind = "contract"
)

// DefaultTaxRatePercent 是开票方所在辖区的默认税率。
const DefaultTaxRatePercent = 21.0

// Header 是文档头部信息。
type Header struct {
	Kind      Kind   `json:"documentKind"`
	Reference string `json:"referenceNumber"`
	IssueDate Date   `json:"issueDate"`
	DueDate   *Date  `json:"dueDate,omitempty"`
	Status    string `json:"status,omitempty"`
}

// LineItem 是一行计费项目。Quantity/UnitPrice 保留原始输入，便于人工核对异常数据。
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Notes       string  `json:"notes,omitempty"`
}

// Model 是一次排版请求的文档模型，排版期间不可变。
type Model struct {
	Issuer         Party      `json:"issuer"`
	Counterparty   Party      `json:"counterparty"`
	Header         Header     `json:"header"`
	Title          string     `json:"titleLine,omitempty"`
	Description    string     `json:"descriptionLine,omitempty"`
	Items          []LineItem `json:"lineItems"`
	TaxRatePercent *float64   `json:"taxRatePercent,omitempty"`
	Currency       string     `json:"currency,omitempty"`
	Locale         string     `json:"locale,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Terms          string     `json:"termsAndConditions,omitempty"`
}

// Decode 从 JSON 读取文档模型。返回值保留输入原样，调用方可以先补充外部默认值，
// 再由 Normalize（或 layout.Build）补全其余字段。
func Decode(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("解析文档 JSON 失败: %w", err)
	}
	return &m, nil
}

// Normalize 返回补全默认值后的副本：文档类型、货币、locale 与税率。
// 条目切片会被复制，调用方之后修改原模型不会影响副本。
func (m Model) Normalize() Model {
	out := m
	if out.Header.Kind == "" {
		out.Header.Kind = KindInvoice
	}
	out.Header.Kind = Kind(strings.ToLower(strings.TrimSpace(string(out.Header.Kind))))
	out.Currency = money.Code(out.Currency)
	if strings.TrimSpace(out.Locale) == "" {
		out.Locale = money.DefaultLocale
	}
	rate := out.TaxRate()
	out.TaxRatePercent = &rate
	out.Items = append([]LineItem(nil), m.Items...)
	return out
}

// TaxRate 返回有效税率：缺失或非有限值时取默认值，负数视为 0。
func (m Model) TaxRate() float64 {
	if m.TaxRatePercent == nil {
		return DefaultTaxRatePercent
	}
	r := *m.TaxRatePercent
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		return DefaultTaxRatePercent
	case r < 0:
		return 0
	}
	return r
}

// Labels 返回与文档 locale 对应的文案。
func (m Model) Labels() Labels { return LabelsFor(m.Locale) }

// Bindings 返回可供模板插值的数据，键名与 ${issuer.name}、${client.email} 等路径对应。
func (m Model) Bindings() map[string]any {
	l := m.Labels()
	t := m.Totals()
	sub, tax, total := t.Rounded()
	doc := map[string]any{
		"kind":      string(m.Header.Kind),
		"title":     l.KindLabel(m.Header.Kind),
		"reference": m.Header.Reference,
		"date":      m.Header.IssueDate.String(),
		"status":    m.Header.Status,
	}
	if m.Header.DueDate != nil {
		doc["dueDate"] = m.Header.DueDate.String()
	}
	if s := strings.TrimSpace(m.Title); s != "" {
		doc["titleLine"] = s
	}
	return map[string]any{
		"issuer":   m.Issuer.bindings(l),
		"client":   m.Counterparty.bindings(l),
		"document": doc,
		"currency": money.Code(m.Currency),
		"totals": map[string]any{
			"subtotal": sub.StringFixed(2),
			"tax":      tax.StringFixed(2),
			"total":    total.StringFixed(2),
			"taxRate":  m.TaxRate(),
		},
	}
}
