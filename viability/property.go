package viability

import (
	"math"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/date"
)

// FromProperty returns the inputs of a property's scenario, as resolved on the given day.
//
// The bid is the down payment of a cash purchase, or the acquisition value of a financed
// one. The holding period is the duration of the scenario summary, rounded up.
func FromProperty(es leilao.Entries, property string, scenario leilao.Scenario, on date.Date) Inputs {
	value := func(f leilao.Field) leilao.Money {
		return leilao.EffectiveValue(es, property, scenario, leilao.Known(f))
	}
	info := es.Anchor(property, scenario)
	p := leilao.LoadParams(es, property, scenario)
	s := leilao.SummarizeOn(es, property, scenario, on)

	in := DefaultInputs()
	in.MonthsToSale = int(math.Ceil(s.DurationMonths - 1e-9))
	in.SaleValue = value(leilao.Sale)
	in.BrokerPct = p.BrokerCommission
	in.AuctioneerPct = p.AuctioneerCommission
	in.ITBIPct = p.ITBI
	in.Registry = value(leilao.Registry)
	in.Deed = value(leilao.DeedFee)
	in.Renovation = value(leilao.Renovation)
	in.Vacancy = value(leilao.Vacancy)
	in.MonthlyCondo = value(leilao.Condo).DivInt(12)
	in.AnnualPropertyTax = value(leilao.PropertyTax)
	in.PurchaseType = info.PurchaseType
	in.DownPaymentPct = p.DownPayment
	in.Financing = p.Financing
	in.CapitalGainsPct = p.CapitalGains

	bid := value(leilao.DownPayment)
	if info.PurchaseType == leilao.Financed {
		bid = value(leilao.AcquisitionValue)
	}
	return in.WithBid(bid)
}
