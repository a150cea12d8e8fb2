// Package viability is the standalone what-if calculator of an auction bid.
//
// It works on a single set of inputs, without entries, scenarios or inheritance, and
// answers "what if I bid x?" for a range of bids at once (see Sweep).
package viability

import (
	"github.com/etnz/leilao"
	"github.com/etnz/leilao/amortization"
)

// DefaultRows is the number of rows of a sensitivity table.
const DefaultRows = 12

// Inputs are the parameters of a simulation.
//
// Percentages are applied to the bid, except BrokerPct that applies to the sale value.
type Inputs struct {
	MonthsToSale int
	SaleValue    leilao.Money
	BrokerPct    leilao.Percent

	Bid       leilao.Money
	Increment leilao.Money // bid step of the sensitivity table

	AuctioneerPct leilao.Percent
	Auctioneer    leilao.Money // auctioneer commission for Bid, kept coupled with AuctioneerPct
	ITBIPct       leilao.Percent
	ITBI          leilao.Money // ITBI for Bid, kept coupled with ITBIPct

	Registry, Deed leilao.Money

	Renovation        leilao.Money
	Vacancy           leilao.Money
	MonthlyCondo      leilao.Money
	AnnualPropertyTax leilao.Money

	PurchaseType    leilao.PurchaseType
	DownPaymentPct  leilao.Percent
	Financing       leilao.Financing
	CapitalGainsPct leilao.Percent
}

// DefaultInputs returns the inputs of a new simulation.
func DefaultInputs() Inputs {
	return Inputs{
		MonthsToSale:    12,
		BrokerPct:       5,
		Increment:       leilao.BRL(5000),
		AuctioneerPct:   5,
		ITBIPct:         2,
		PurchaseType:    leilao.Cash,
		DownPaymentPct:  20,
		Financing:       leilao.DefaultFinancing(),
		CapitalGainsPct: 15,
	}
}

// WithSaleValue sets the sale value, registry and deed default to 1% of it.
func (in Inputs) WithSaleValue(v leilao.Money) Inputs {
	in.SaleValue = v
	in.Registry = v.MulPercent(1)
	in.Deed = v.MulPercent(1)
	return in
}

// WithBid sets the bid and the commission and tax that depend on it.
func (in Inputs) WithBid(v leilao.Money) Inputs {
	in.Bid = v
	in.Auctioneer = v.MulPercent(in.AuctioneerPct)
	in.ITBI = v.MulPercent(in.ITBIPct)
	return in
}

// WithAuctioneerPct sets the auctioneer commission as a percentage of the bid.
func (in Inputs) WithAuctioneerPct(p leilao.Percent) Inputs {
	in.AuctioneerPct = p
	in.Auctioneer = in.Bid.MulPercent(p)
	return in
}

// WithAuctioneer sets the auctioneer commission as an amount, its percentage follows when the bid is known.
func (in Inputs) WithAuctioneer(v leilao.Money) Inputs {
	in.Auctioneer = v
	if in.Bid.IsPositive() {
		in.AuctioneerPct = v.Ratio(in.Bid)
	}
	return in
}

// WithITBIPct sets the ITBI as a percentage of the bid.
func (in Inputs) WithITBIPct(p leilao.Percent) Inputs {
	in.ITBIPct = p
	in.ITBI = in.Bid.MulPercent(p)
	return in
}

// WithITBI sets the ITBI as an amount, its percentage follows when the bid is known.
func (in Inputs) WithITBI(v leilao.Money) Inputs {
	in.ITBI = v
	if in.Bid.IsPositive() {
		in.ITBIPct = v.Ratio(in.Bid)
	}
	return in
}

// Breakdown details the figures of a Result.
type Breakdown struct {
	Auctioneer      leilao.Money
	ITBI            leilao.Money
	Notary          leilao.Money // registry and deed
	Preparation     leilao.Money // renovation, vacancy and holding costs
	Broker          leilao.Money
	CapitalGainsTax leilao.Money
	Payoff          leilao.Money // loan balance settled at the sale
	Installments    leilao.Money // loan installments paid until the sale
	Interest        leilao.Money // interest part of the installments
}

// Result is the outcome of a simulation for a given bid.
type Result struct {
	Bid             leilao.Money
	Profit          leilao.Money
	CapitalInvested leilao.Money
	ROITotal        leilao.Percent
	ROIMonthly      leilao.Percent
	Breakdown       Breakdown
}

// Calculate simulates the purchase at bid, all other parameters coming from in.
func Calculate(in Inputs, bid leilao.Money) Result {
	months := in.MonthsToSale
	if months < 0 {
		months = 0
	}
	if bid.IsNegative() {
		bid = zero
	}
	b := Breakdown{
		Auctioneer: bid.MulPercent(in.AuctioneerPct),
		ITBI:       bid.MulPercent(in.ITBIPct),
		Notary:     in.Registry.Add(in.Deed),
	}
	acquisition := b.Auctioneer.Add(b.ITBI).Add(b.Notary)

	holding := in.MonthlyCondo.MulInt(months).Add(in.AnnualPropertyTax.MulInt(months).DivInt(12))
	b.Preparation = in.Renovation.Add(in.Vacancy).Add(holding)
	b.Broker = in.SaleValue.MulPercent(in.BrokerPct)

	var capital leilao.Money
	deductible := bid.Add(acquisition).Add(in.Renovation).Add(b.Broker)
	switch in.PurchaseType {
	case leilao.Financed:
		down := bid.MulPercent(in.DownPaymentPct)
		loan := amortization.Loan{
			Principal:  bid.Sub(down).Decimal(),
			AnnualRate: float64(in.Financing.AnnualRate),
			TermMonths: in.Financing.TermMonths,
			System:     in.Financing.System,
		}
		// the balance is the one at the sale, not after a year.
		s := amortization.Schedule(loan, months)
		b.Installments = leilao.BRL(s.PaidToDate)
		b.Interest = leilao.BRL(s.InterestToDate)
		b.Payoff = leilao.BRL(s.Outstanding)
		capital = down.Add(acquisition).Add(b.Preparation).Add(b.Installments)
		deductible = deductible.Add(b.Interest)
	default:
		capital = bid.Add(acquisition).Add(b.Preparation)
	}

	if gain := in.SaleValue.Sub(deductible); gain.IsPositive() {
		b.CapitalGainsTax = gain.MulPercent(in.CapitalGainsPct)
	}

	r := Result{
		Bid:             bid,
		CapitalInvested: capital,
		Profit:          in.SaleValue.Sub(b.Broker).Sub(b.CapitalGainsTax).Sub(b.Payoff).Sub(capital),
		Breakdown:       b,
	}
	if capital.IsPositive() {
		r.ROITotal = r.Profit.Ratio(capital)
	}
	r.ROIMonthly = leilao.MonthlyROI(r.ROITotal, float64(months))
	return r
}

// Sweep runs Calculate for rows bids, starting at in.Bid and growing by increment.
//
// It is empty when no bid is set.
func Sweep(in Inputs, increment leilao.Money, rows int) []Result {
	if !in.Bid.IsPositive() || rows <= 0 {
		return nil
	}
	res := make([]Result, 0, rows)
	for i := 0; i < rows; i++ {
		res = append(res, Calculate(in, in.Bid.Add(increment.MulInt(i))))
	}
	return res
}

var zero = leilao.BRL(0)
