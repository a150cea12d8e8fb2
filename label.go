package leilao

import (
	"encoding/json"
)

// Field identifies a known line item. Fields drive the recomputation, custom labels do not.
type Field int

const (
	// CustomField is the field of every user defined ("Outros") label.
	CustomField Field = iota
	Sale
	BrokerCommission
	CapitalGainsTax
	OutstandingBalance
	AcquisitionValue
	DownPayment
	ITBI
	Registry
	AgentFee
	AuctioneerCommission
	DeedFee
	Renovation
	Vacancy
	Debt
	Installment
	Condo
	PropertyTax
)

var knownFields = [...]struct {
	text     string
	category Category
}{
	Sale:                 {"Venda", CategorySale},
	BrokerCommission:     {"Comissão Corretor", CategorySale},
	CapitalGainsTax:      {"Imposto de Ganho de Capital", CategorySale},
	OutstandingBalance:   {"Saldo Devedor", CategorySale},
	AcquisitionValue:     {"Valor Aquisição", CategoryAcquisition},
	DownPayment:          {"Entrada", CategoryAcquisition},
	ITBI:                 {"ITBI", CategoryAcquisition},
	Registry:             {"Registro", CategoryAcquisition},
	AgentFee:             {"Despachante", CategoryAcquisition},
	AuctioneerCommission: {"Comissão Leiloeiro", CategoryAcquisition},
	DeedFee:              {"Taxa Financiamento/Escritura", CategoryAcquisition},
	Renovation:           {"Reforma", CategoryPreparation},
	Vacancy:              {"Desocupação", CategoryPreparation},
	Debt:                 {"Dívida", CategoryPreparation},
	Installment:          {"Prestação", CategoryMaintenance},
	Condo:                {"Condomínio", CategoryMaintenance},
	PropertyTax:          {"IPTU", CategoryMaintenance},
}

// byText indexes known fields by their persisted text.
var byText = func() map[string]Field {
	m := make(map[string]Field, len(knownFields))
	for f := Sale; int(f) < len(knownFields); f++ {
		m[knownFields[f].text] = f
	}
	return m
}()

func (f Field) String() string {
	if f <= CustomField || int(f) >= len(knownFields) {
		return "custom"
	}
	return knownFields[f].text
}

// Label returns the label of a known field.
func (f Field) Label() Label { return Known(f) }

// Label names a line item: either a known field or a custom text with its own category.
//
// Labels are comparable, the zero Label is an empty custom label of the Sale category.
type Label struct {
	field    Field
	text     string
	category Category
}

// Known returns the label of a known field. Unknown values yield an empty custom label.
func Known(f Field) Label {
	if f <= CustomField || int(f) >= len(knownFields) {
		return Label{}
	}
	k := knownFields[f]
	return Label{field: f, text: k.text, category: k.category}
}

// Custom returns a user defined label of category c.
//
// A text that matches a known field yields that field instead, so that a label text is
// never ambiguous within a scenario.
func Custom(text string, c Category) Label { return ParseLabel(text, c) }

// ParseLabel maps a text to its known field, whatever the category, or to a custom label of category c.
func ParseLabel(text string, c Category) Label {
	if f, ok := byText[text]; ok {
		return Known(f)
	}
	return Label{field: CustomField, text: text, category: c}
}

func (l Label) String() string      { return l.text }
func (l Label) Field() Field        { return l.field }
func (l Label) Category() Category  { return l.category }
func (l Label) IsCustom() bool      { return l.field == CustomField }
func (l Label) Is(f Field) bool     { return l.field == f && f != CustomField }
func (l Label) key() string         { return l.text }
func (l Label) sameAs(m Label) bool { return l.key() == m.key() }

func (l Label) MarshalJSON() ([]byte, error) { return json.Marshal(l.text) }

// FieldGroup is the list of known fields of a category, in form order.
type FieldGroup struct {
	Category Category
	Fields   []Field
}

// FieldGroups lists the known fields grouped by category, in form order.
func FieldGroups() []FieldGroup {
	groups := make([]FieldGroup, 0, 4)
	for _, c := range Categories() {
		g := FieldGroup{Category: c}
		for f := Sale; int(f) < len(knownFields); f++ {
			if knownFields[f].category == c {
				g.Fields = append(g.Fields, f)
			}
		}
		groups = append(groups, g)
	}
	return groups
}
