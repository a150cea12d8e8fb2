package leilao

import (
	"github.com/etnz/leilao/date"
	"github.com/google/uuid"
)

type seedLine struct {
	field  Field
	amount float64
}

type seedProperty struct {
	name  string
	info  PropertyInfo
	lines []seedLine
}

var seedProperties = []seedProperty{
	{
		name: "guapo-casa1",
		info: PropertyInfo{State: "GO", City: "Guapó", PurchaseType: Cash, PurchaseDate: date.New(2025, 1, 15), SaleDate: date.New(2026, 1, 15), ShareCount: 1},
		lines: []seedLine{
			{Sale, 190000}, {DownPayment, 92700}, {Renovation, 10000}, {Vacancy, 5000}, {PropertyTax, 300},
			{ITBI, 3800}, {Registry, 1900},
		},
	},
	{
		name: "jd-helvecia-casa1",
		info: PropertyInfo{State: "GO", City: "Aparecida de Goiânia", PurchaseType: Cash, PurchaseDate: date.New(2025, 3, 12), SaleDate: date.New(2026, 3, 12), ShareCount: 12},
		lines: []seedLine{
			{Sale, 430000}, {DownPayment, 243000}, {AuctioneerCommission, 12150}, {Renovation, 20000}, {PropertyTax, 500},
			{Registry, 4900},
		},
	},
	{
		name: "nova-olinda-casa1",
		info: PropertyInfo{State: "GO", City: "Aparecida de Goiânia", PurchaseType: Financed, PurchaseDate: date.New(2025, 1, 30), SaleDate: date.New(2026, 1, 30), ShareCount: 8},
		lines: []seedLine{
			{Sale, 270000}, {ITBI, 5400}, {Registry, 2700}, {AcquisitionValue, 0},
		},
	},
	{
		name: "trindade2",
		info: PropertyInfo{State: "GO", City: "Trindade", Status: Finished, PurchaseType: Cash, PurchaseDate: date.New(2024, 9, 20), SaleDate: date.New(2025, 6, 20), Sold: true, ShareCount: 1},
		lines: []seedLine{
			{Sale, 160000}, {DownPayment, 96000}, {Renovation, 11000}, {Condo, 1740}, {PropertyTax, 300},
		},
	},
}

// Seed returns the demonstration portfolio: four Projection-only properties in Goiás.
func Seed() Entries {
	var es Entries
	for _, p := range seedProperties {
		for _, l := range p.lines {
			e := NewEntry(p.name, Projected, Known(l.field), p.info)
			e.ID = uuid.NewString()
			es = append(es, e.WithCashFlow(signed(e.Label, BRL(l.amount))))
		}
	}
	return es
}
