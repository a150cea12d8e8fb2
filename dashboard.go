package leilao

import (
	"cmp"
	"fmt"
	"slices"
)

// Filter selects what a Dashboard aggregates. Empty lists select everything.
type Filter struct {
	States        []string
	Properties    []string
	PurchaseTypes []PurchaseType
	Sold          []bool
	Categories    []Category
}

func match[T comparable](selected []T, v T) bool {
	return len(selected) == 0 || slices.Contains(selected, v)
}

// keep reports whether an entry of the consolidated view passes the entry level filters.
func (f Filter) keep(e Entry) bool {
	return match(f.PurchaseTypes, e.Info.PurchaseType) &&
		match(f.Sold, e.Info.Sold) &&
		match(f.Categories, e.Category())
}

// PropertyRow aggregates the shares of a property.
type PropertyRow struct {
	Property string
	Revenue  Money
	Cost     Money // as a positive amount
	Profit   Money
	// Invested is the cash put in: every cost but the ones paid out of the sale.
	Invested Money
	ROI      Percent
}

// CostRow aggregates a cost line across properties.
type CostRow struct {
	Category Category
	Label    string
	Total    Money // sum of the cash flows, negative
	Share    Money // sum of the shares, negative
}

// StateRow is the profit made in a state.
type StateRow struct {
	State  string
	Profit Money
}

// MonthRow is the revenue expected in a month.
//
// Month is "2006-01" for dated sales, "Proj." for sales without a sale date and
// "S/ Data" for properties without any date.
type MonthRow struct {
	Month   string
	Revenue Money
}

// Dashboard aggregates, per co-investor share, a scenario of many properties.
type Dashboard struct {
	Scenario Scenario
	Revenue  Money
	Costs    Money // negative
	Profit   Money

	Properties []PropertyRow
	CostLines  []CostRow
	CostTotal  CostRow
	States     []StateRow
	Months     []MonthRow
}

// notInvested are the costs paid out of the sale price.
var notInvested = []Field{OutstandingBalance, CapitalGainsTax, BrokerCommission}

// DashboardEntries returns the entries a dashboard aggregates: the consolidated view of
// every selected property, without the acquisition value that is a mere reference, and
// filtered by purchase type, sold flag and category.
func DashboardEntries(es Entries, scenario Scenario, f Filter) Entries {
	var res Entries
	for _, p := range es.Properties() {
		first := es.Property(p)[0]
		if !match(f.States, first.Info.State) || !match(f.Properties, p) {
			continue
		}
		for _, e := range Consolidate(es, p, scenario) {
			if e.Label.Is(AcquisitionValue) || !f.keep(e) {
				continue
			}
			res = append(res, e)
		}
	}
	return res
}

// NewDashboard builds the dashboard of a scenario.
func NewDashboard(es Entries, scenario Scenario, f Filter) Dashboard {
	zero := M(0, DefaultCurrency)
	d := Dashboard{Scenario: scenario, Revenue: zero, Costs: zero, Profit: zero}

	rows := make(map[string]*PropertyRow)
	costs := make(map[string]*CostRow)
	states := make(map[string]*StateRow)
	months := make(map[string]*MonthRow)
	monthOrder := make(map[string]string)

	for _, e := range DashboardEntries(es, scenario, f) {
		share := e.Share
		row, ok := rows[e.Property]
		if !ok {
			row = &PropertyRow{Property: e.Property, Revenue: zero, Cost: zero, Profit: zero, Invested: zero}
			rows[e.Property] = row
		}
		row.Profit = row.Profit.Add(share)
		d.Profit = d.Profit.Add(share)

		st, ok := states[e.Info.State]
		if !ok {
			st = &StateRow{State: e.Info.State, Profit: zero}
			states[e.Info.State] = st
		}
		st.Profit = st.Profit.Add(share)

		switch {
		case share.IsPositive():
			d.Revenue = d.Revenue.Add(share)
			row.Revenue = row.Revenue.Add(share)
			month, order := revenueMonth(e.Info)
			m, ok := months[month]
			if !ok {
				m = &MonthRow{Month: month, Revenue: zero}
				months[month] = m
				monthOrder[month] = order
			}
			m.Revenue = m.Revenue.Add(share)
		case share.IsNegative():
			d.Costs = d.Costs.Add(share)
			row.Cost = row.Cost.Add(share.Abs())
			if !slices.ContainsFunc(notInvested, e.Label.Is) {
				row.Invested = row.Invested.Add(share.Abs())
			}
			key := fmt.Sprintf("%s-%s", e.Category(), e.Label)
			c, ok := costs[key]
			if !ok {
				c = &CostRow{Category: e.Category(), Label: e.Label.String(), Total: zero, Share: zero}
				costs[key] = c
			}
			c.Total = c.Total.Add(e.CashFlow)
			c.Share = c.Share.Add(share)
		}
	}

	for _, r := range rows {
		r.ROI = r.Profit.Ratio(r.Invested)
		d.Properties = append(d.Properties, *r)
	}
	slices.SortFunc(d.Properties, func(a, b PropertyRow) int { return cmp.Compare(a.Property, b.Property) })

	d.CostTotal = CostRow{Label: "Total", Total: zero, Share: zero}
	for _, c := range costs {
		d.CostLines = append(d.CostLines, *c)
		d.CostTotal.Total = d.CostTotal.Total.Add(c.Total)
		d.CostTotal.Share = d.CostTotal.Share.Add(c.Share)
	}
	// most expensive first
	slices.SortFunc(d.CostLines, func(a, b CostRow) int {
		if c := a.Share.Decimal().Cmp(b.Share.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})

	for _, s := range states {
		d.States = append(d.States, *s)
	}
	slices.SortFunc(d.States, func(a, b StateRow) int { return cmp.Compare(a.State, b.State) })

	for _, m := range months {
		d.Months = append(d.Months, *m)
	}
	slices.SortFunc(d.Months, func(a, b MonthRow) int { return cmp.Compare(monthOrder[a.Month], monthOrder[b.Month]) })
	return d
}

// revenueMonth returns the month bucket of a revenue and a sortable key for it.
func revenueMonth(info PropertyInfo) (string, string) {
	switch {
	case !info.SaleDate.IsZero():
		m := fmt.Sprintf("%04d-%02d", info.SaleDate.Year(), int(info.SaleDate.Month()))
		return m, "1" + m
	case !info.PurchaseDate.IsZero():
		return "Proj.", "2"
	default:
		return "S/ Data", "0"
	}
}
