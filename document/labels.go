package document

import (
	"strings"

	"golang.org/x/text/language"
)

// Labels 保存文档中出现的固定文案。Unavailable 为占位符格式，%s 为字段名。
type Labels struct {
	Kinds map[Kind]string

	Issuer       string
	Counterparty string

	Reference string
	IssueDate string
	DueDate   string
	Status    string

	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string

	Subtotal string
	Tax      string
	Total    string

	Notes string
	Terms string

	IssuerSignature       string
	CounterpartySignature string

	TaxID   string
	Address string
	Email   string
	Phone   string
	Company string
	Name    string

	Unavailable string
}

var english = Labels{
	Kinds: map[Kind]string{
		KindInvoice:  "INVOICE",
		KindBudget:   "BUDGET",
		KindContract: "CONTRACT",
	},
	Issuer:                "FROM",
	Counterparty:          "BILL TO",
	Reference:             "No.",
	IssueDate:             "Date",
	DueDate:               "Due",
	Status:                "Status",
	Description:           "Description",
	Quantity:              "Qty",
	UnitPrice:             "Unit price",
	LineTotal:             "Amount",
	Subtotal:              "Subtotal",
	Tax:                   "Tax",
	Total:                 "Total",
	Notes:                 "Notes",
	Terms:                 "Terms and conditions",
	IssuerSignature:       "Issuer signature",
	CounterpartySignature: "Client signature",
	TaxID:                 "Tax ID",
	Address:               "Address",
	Email:                 "Email",
	Phone:                 "Phone",
	Company:               "Company",
	Name:                  "Name",
	Unavailable:           "[%s unavailable]",
}

var spanish = Labels{
	Kinds: map[Kind]string{
		KindInvoice:  "FACTURA",
		KindBudget:   "PRESUPUESTO",
		KindContract: "CONTRATO",
	},
	Issuer:                "EMISOR",
	Counterparty:          "CLIENTE",
	Reference:             "Nº",
	IssueDate:             "Fecha",
	DueDate:               "Vence",
	Status:                "Estado",
	Description:           "Descripción",
	Quantity:              "Cant.",
	UnitPrice:             "Precio unit.",
	LineTotal:             "Importe",
	Subtotal:              "Base imponible",
	Tax:                   "IVA",
	Total:                 "Total",
	Notes:                 "Notas",
	Terms:                 "Términos y condiciones",
	IssuerSignature:       "Firma del emisor",
	CounterpartySignature: "Firma del cliente",
	TaxID:                 "NIF",
	Address:               "Dirección",
	Email:                 "Email",
	Phone:                 "Teléfono",
	Company:               "Empresa",
	Name:                  "Nombre",
	Unavailable:           "[%s no disponible]",
}

// LabelsFor 按 locale 的语言选择文案，未知语言回退到英文。
func LabelsFor(locale string) Labels {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return english
	}
	base, _ := tag.Base()
	switch base.String() {
	case "es":
		return spanish
	default:
		return english
	}
}

// KindLabel 返回文档类型的标题，未登记的类型直接大写显示。
func (l Labels) KindLabel(k Kind) string {
	if s, ok := l.Kinds[k]; ok {
		return s
	}
	if k == "" {
		return l.Kinds[KindInvoice]
	}
	return strings.ToUpper(string(k))
}
