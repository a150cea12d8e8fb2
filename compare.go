package leilao

import "github.com/etnz/leilao/date"

// Comparison puts side by side the two scenarios of a property.
type Comparison struct {
	Property  string
	Projected Summary
	Executed  Summary
}

// Compare summarizes both scenarios of a property, an unsold Execution running until on.
func Compare(es Entries, property string, on date.Date) Comparison {
	return Comparison{
		Property:  property,
		Projected: SummarizeOn(es, property, Projected, on),
		Executed:  SummarizeOn(es, property, Executed, on),
	}
}

// BureauCosts returns the taxes and fees of a summary: ITBI, registry, agent, deed and capital gains tax.
func BureauCosts(s Summary) Money {
	total := M(0, DefaultCurrency)
	for _, f := range []Field{ITBI, Registry, AgentFee, DeedFee, CapitalGainsTax} {
		total = total.Add(s.Breakdown.Value(f))
	}
	return total
}

// ProfitDelta returns how much the Execution profit departs from the Projection one.
func (c Comparison) ProfitDelta() Money { return c.Executed.TotalProfit.Sub(c.Projected.TotalProfit) }

// ROIDelta returns how much the Execution total return departs from the Projection one.
func (c Comparison) ROIDelta() Percent { return c.Executed.ROITotal - c.Projected.ROITotal }
