package leilao

import (
	"encoding/json"
	"fmt"
)

// Scenario is one of the two parallel views of a property.
type Scenario int

const (
	// Projected holds the planned numbers.
	Projected Scenario = iota
	// Executed holds the numbers as they happened, missing ones are inherited from Projected.
	Executed
)

func (s Scenario) String() string {
	switch s {
	case Projected:
		return "Projetado"
	case Executed:
		return "Executado"
	default:
		return "unknown"
	}
}

// ParseScenario parses a string into a Scenario, the empty string is Projected.
func ParseScenario(s string) (Scenario, error) {
	switch s {
	case "Projetado", "projetado", "projected", "":
		return Projected, nil
	case "Executado", "executado", "executed":
		return Executed, nil
	default:
		return 0, fmt.Errorf("unknown scenario: %q", s)
	}
}

// Category groups line items.
type Category int

const (
	CategorySale Category = iota
	CategoryAcquisition
	CategoryPreparation
	CategoryMaintenance
)

func (c Category) String() string {
	switch c {
	case CategorySale:
		return "Venda"
	case CategoryAcquisition:
		return "Custo Aquisição"
	case CategoryPreparation:
		return "Custo Preparação"
	case CategoryMaintenance:
		return "Custo Manutenção Anual"
	default:
		return "unknown"
	}
}

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "Venda", "sale":
		return CategorySale, nil
	case "Custo Aquisição", "acquisition":
		return CategoryAcquisition, nil
	case "Custo Preparação", "preparation":
		return CategoryPreparation, nil
	case "Custo Manutenção Anual", "Custo Manutenção", "maintenance":
		return CategoryMaintenance, nil
	default:
		return 0, fmt.Errorf("unknown category: %q", s)
	}
}

// Categories lists all categories in form order.
func Categories() []Category {
	return []Category{CategorySale, CategoryAcquisition, CategoryPreparation, CategoryMaintenance}
}

// PurchaseType is how the property was paid for.
type PurchaseType int

const (
	Cash PurchaseType = iota
	Financed
)

func (p PurchaseType) String() string {
	switch p {
	case Cash:
		return "À Vista"
	case Financed:
		return "Financiado"
	default:
		return "unknown"
	}
}

// ParsePurchaseType parses a string into a PurchaseType, the empty string is Cash.
func ParsePurchaseType(s string) (PurchaseType, error) {
	switch s {
	case "À Vista", "AVista", "cash", "":
		return Cash, nil
	case "Financiado", "financed":
		return Financed, nil
	default:
		return 0, fmt.Errorf("unknown purchase type: %q", s)
	}
}

// Status tells whether the investment is still running.
type Status int

const (
	InProgress Status = iota
	Finished
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "em_andamento"
	case Finished:
		return "finalizado"
	default:
		return "unknown"
	}
}

// ParseStatus parses a string into a Status, the empty string is InProgress.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "em_andamento", "in-progress", "":
		return InProgress, nil
	case "finalizado", "finished":
		return Finished, nil
	default:
		return 0, fmt.Errorf("unknown status: %q", s)
	}
}

// textEnum is implemented by the enums that persist as their String().
type textEnum interface {
	Scenario | Category | PurchaseType | Status
	String() string
}

func marshalText[T textEnum](v T) ([]byte, error) { return json.Marshal(v.String()) }

func unmarshalText[T textEnum](b []byte, parse func(string) (T, error), v *T) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := parse(str)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (s Scenario) MarshalJSON() ([]byte, error)     { return marshalText(s) }
func (s *Scenario) UnmarshalJSON(b []byte) error    { return unmarshalText(b, ParseScenario, s) }
func (c Category) MarshalJSON() ([]byte, error)     { return marshalText(c) }
func (c *Category) UnmarshalJSON(b []byte) error    { return unmarshalText(b, ParseCategory, c) }
func (p PurchaseType) MarshalJSON() ([]byte, error)  { return marshalText(p) }
func (p *PurchaseType) UnmarshalJSON(b []byte) error { return unmarshalText(b, ParsePurchaseType, p) }
func (s Status) MarshalJSON() ([]byte, error)       { return marshalText(s) }
func (s *Status) UnmarshalJSON(b []byte) error      { return unmarshalText(b, ParseStatus, s) }
