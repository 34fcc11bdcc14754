package document

import (
	"fmt"
	"strings"
)

// Party 描述文档的一方（开票方或客户）。除 DisplayName 外的字段都是可选的。
type Party struct {
	DisplayName string  `json:"displayName"`
	TaxID       *string `json:"taxId,omitempty"`
	Address     *string `json:"address,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Company     *string `json:"company,omitempty"`
}

// FieldKey 标识一方的某个字段。
type FieldKey string

const (
	FieldCompany FieldKey = "company"
	FieldTaxID   FieldKey = "taxId"
	FieldAddress FieldKey = "address"
	FieldEmail   FieldKey = "email"
	FieldPhone   FieldKey = "phone"
)

// Field 是字段经过占位符策略处理后的显示值。
type Field struct {
	Key         FieldKey `json:"key"`
	Text        string   `json:"text"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

// String 返回去除首尾空白后的值，nil 视为空。
func String(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// Ptr 返回 s 的指针，便于构造可选字段。
func Ptr(s string) *string { return &s }

// Name 返回显示名，缺失时使用占位符。
func (p Party) Name(l Labels) string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	return Placeholder(l, l.Name)
}

// Placeholder 生成统一格式的缺失字段占位文本。
func Placeholder(l Labels, field string) string {
	return fmt.Sprintf(l.Unavailable, field)
}

// Fields 按固定顺序返回可选字段：公司、税号、地址、邮箱、电话。
// 缺失字段以占位符呈现，保证行数确定。
func (p Party) Fields(l Labels) []Field {
	var out []Field
	entries := []struct {
		key   FieldKey
		value string
		label string
	}{
		{FieldCompany, String(p.Company), l.Company},
		{FieldTaxID, String(p.TaxID), l.TaxID},
		{FieldAddress, String(p.Address), l.Address},
		{FieldEmail, String(p.Email), l.Email},
		{FieldPhone, String(p.Phone), l.Phone},
	}
	for _, e := range entries {
		switch {
		case e.value == "":
			out = append(out, Field{Key: e.key, Text: Placeholder(l, e.label), Placeholder: true})
		case e.key == FieldTaxID:
			out = append(out, Field{Key: e.key, Text: e.label + ": " + e.value})
		default:
			out = append(out, Field{Key: e.key, Text: e.value})
		}
	}
	return out
}

func (p Party) bindings(l Labels) map[string]any {
	m := map[string]any{"name": p.Name(l)}
	set := func(key string, v *string) {
		if s := String(v); s != "" {
			m[key] = s
		}
	}
	set("taxId", p.TaxID)
	set("address", p.Address)
	set("email", p.Email)
	set("phone", p.Phone)
	set("company", p.Company)
	return m
}
