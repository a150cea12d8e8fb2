package leilao

import (
	"github.com/etnz/leilao/amortization"
	"github.com/etnz/leilao/date"
)

// PropertyInfo is the property level metadata, duplicated on every entry of the property.
type PropertyInfo struct {
	State        string
	City         string
	Status       Status
	PurchaseType PurchaseType
	PurchaseDate date.Date
	SaleDate     date.Date
	Sold         bool
	ShareCount   int
}

// Shares returns the number of co-investors, at least 1.
func (p PropertyInfo) Shares() int {
	if p.ShareCount < 1 {
		return 1
	}
	return p.ShareCount
}

// DefaultInfo is the metadata of a property nobody described yet.
func DefaultInfo() PropertyInfo {
	return PropertyInfo{State: "SP", Status: InProgress, PurchaseType: Cash, ShareCount: 1}
}

// Financing are the loan simulation parameters.
type Financing struct {
	AnnualRate Percent
	TermMonths int
	System     amortization.System
}

// DefaultFinancing is 9.5% a year over 360 months, SAC.
func DefaultFinancing() Financing {
	return Financing{AnnualRate: 9.5, TermMonths: 360, System: amortization.SAC}
}

// Entry is one labeled monetary line of a property in a scenario.
type Entry struct {
	ID       string
	Property string
	Scenario Scenario
	Label    Label
	// CashFlow is positive for the sale, negative for everything else.
	CashFlow Money
	// Share is CashFlow divided by the number of co-investors.
	Share    Money
	Override Override
	// Percentage is the rate last used to derive CashFlow, if any.
	Percentage *Percent
	// SaleDurationMonths is the manually recorded time to sale, 0 when unset.
	SaleDurationMonths float64
	// Financing is set on the entry the loan parameters are persisted with.
	Financing *Financing
	Info      PropertyInfo
}

// NewEntry returns an empty entry of the given property, scenario and label.
func NewEntry(property string, scenario Scenario, label Label, info PropertyInfo) Entry {
	zero := M(0, DefaultCurrency)
	return Entry{Property: property, Scenario: scenario, Label: label, CashFlow: zero, Share: zero, Info: info}
}

// Category returns the category of the entry's label.
func (e Entry) Category() Category { return e.Label.Category() }

// Value returns the magnitude of the cash flow.
func (e Entry) Value() Money { return e.CashFlow.Abs() }

// WithCashFlow returns a copy of e with the given cash flow and its share.
func (e Entry) WithCashFlow(m Money) Entry {
	e.CashFlow = m
	e.Share = m.DivInt(e.Info.Shares())
	return e
}

// signed returns amount with the sign of label l: only the sale is an inflow.
func signed(l Label, amount Money) Money {
	if l.Is(Sale) {
		return amount.Abs()
	}
	return amount.Abs().Neg()
}
