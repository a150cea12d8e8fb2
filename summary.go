package leilao

import (
	"math"

	"github.com/etnz/leilao/date"
)

// daysPerMonth is the average month length used to turn a holding period into months.
const daysPerMonth = 30.44

// Line is the current value of a known field.
type Line struct {
	Label Label
	Value Money
}

// Breakdown lists the current value of every known field, in form order.
type Breakdown []Line

// Value returns the value of field f in the breakdown.
func (b Breakdown) Value(f Field) Money {
	for _, l := range b {
		if l.Label.Is(f) {
			return l.Value
		}
	}
	return M(0, DefaultCurrency)
}

// Summary is the outcome of a property's scenario.
type Summary struct {
	Property        string
	Scenario        Scenario
	Info            PropertyInfo
	TotalProfit     Money
	CapitalEmployed Money
	ROITotal        Percent
	ROIMonthly      Percent
	ProfitPerShare  Money
	DurationMonths  float64
	Breakdown       Breakdown
}

// Summarize computes the outcome of a property's scenario, an unsold Execution running until today.
func Summarize(es Entries, property string, scenario Scenario) Summary {
	return SummarizeOn(es, property, scenario, date.Today())
}

// SummarizeOn computes the outcome of a property's scenario, an unsold Execution running until on.
func SummarizeOn(es Entries, property string, scenario Scenario, on date.Date) Summary {
	s := Summary{Property: property, Scenario: scenario, Info: es.Anchor(property, scenario)}
	for _, g := range FieldGroups() {
		for _, f := range g.Fields {
			s.Breakdown = append(s.Breakdown, Line{Label: Known(f), Value: EffectiveValue(es, property, scenario, Known(f))})
		}
	}
	value := s.Breakdown.Value
	sum := func(fields ...Field) Money {
		total := M(0, DefaultCurrency)
		for _, f := range fields {
			total = total.Add(value(f))
		}
		return total
	}

	s.CapitalEmployed = sum(DownPayment, ITBI, Registry, AgentFee, AuctioneerCommission, DeedFee,
		Renovation, Vacancy, Debt, Installment, Condo, PropertyTax)
	s.TotalProfit = value(Sale).Sub(sum(OutstandingBalance, BrokerCommission, CapitalGainsTax)).Sub(s.CapitalEmployed)
	if s.CapitalEmployed.IsPositive() {
		s.ROITotal = s.TotalProfit.Ratio(s.CapitalEmployed)
	}
	s.DurationMonths = duration(es, property, scenario, s.Info, on)
	s.ROIMonthly = MonthlyROI(s.ROITotal, s.DurationMonths)
	s.ProfitPerShare = s.TotalProfit.DivInt(s.Info.Shares())
	return s
}

// duration returns the holding period used to annualize the return.
//
// Projection is always a year. Execution uses the recorded time to sale, or the time
// elapsed since the purchase date until the sale date (or until on), at least a month.
func duration(es Entries, property string, scenario Scenario, info PropertyInfo, on date.Date) float64 {
	if scenario == Projected {
		return 12
	}
	if sale, ok := es.Find(property, scenario, Known(Sale)); ok && sale.SaleDurationMonths > 0 {
		return sale.SaleDurationMonths
	}
	if info.PurchaseDate.IsZero() {
		return 1
	}
	end := info.SaleDate
	if end.IsZero() {
		end = on
	}
	days := math.Abs(float64(info.PurchaseDate.DaysUntil(end)))
	return math.Max(1, days/daysPerMonth)
}

// MonthlyROI returns the monthly compounded equivalent of a total return over months.
//
// A return of -100% or worse is a full loss, its monthly equivalent is -100%.
func MonthlyROI(total Percent, months float64) Percent {
	base := 1 + float64(total.valid())/100
	if base <= 0 {
		return -100
	}
	if months <= 0 || math.IsNaN(months) {
		months = 1
	}
	return Percent((math.Pow(base, 1/months) - 1) * 100)
}
