package leilao

import "slices"

// Params are the simulation parameters of a property's scenario.
type Params struct {
	ITBI                 Percent
	BrokerCommission     Percent
	AuctioneerCommission Percent
	DownPayment          Percent // of the acquisition value, financed purchases only
	CapitalGains         Percent
	Financing            Financing
}

// DefaultParams are the parameters of a scenario nobody configured.
func DefaultParams() Params {
	return Params{
		ITBI:                 2,
		BrokerCommission:     5,
		AuctioneerCommission: 5,
		DownPayment:          5,
		CapitalGains:         15,
		Financing:            DefaultFinancing(),
	}
}

// Percent returns the parameter of a rate.
func (p Params) Percent(r Rate) Percent {
	switch r {
	case ITBIRate:
		return p.ITBI
	case BrokerRate:
		return p.BrokerCommission
	case AuctioneerRate:
		return p.AuctioneerCommission
	case DownPaymentRate:
		return p.DownPayment
	default:
		return p.CapitalGains
	}
}

func (p *Params) set(r Rate, v Percent) {
	switch r {
	case ITBIRate:
		p.ITBI = v
	case BrokerRate:
		p.BrokerCommission = v
	case AuctioneerRate:
		p.AuctioneerCommission = v
	case DownPaymentRate:
		p.DownPayment = v
	default:
		p.CapitalGains = v
	}
}

// LoadParams reads the parameters persisted on a property's scenario.
//
// Each rate is read on the entry of its field, Execution falling back on Projection, and
// defaults otherwise. Financing is read on the AcquisitionValue entry, or any entry
// carrying one, with the same fallback.
func LoadParams(es Entries, property string, scenario Scenario) Params {
	p := DefaultParams()
	for r := ITBIRate; r <= CapitalGainsRate; r++ {
		if e, ok := EffectiveEntry(es, property, scenario, Known(r.Field())); ok && e.Percentage != nil {
			p.set(r, *e.Percentage)
		}
	}
	if f, ok := findFinancing(es.Scenario(property, scenario)); ok {
		p.Financing = f
	} else if f, ok := findFinancing(es.Scenario(property, Projected)); ok && scenario == Executed {
		p.Financing = f
	}
	return p
}

func findFinancing(es Entries) (Financing, bool) {
	if e, ok := es.find(AcquisitionValue); ok && e.Financing != nil {
		return *e.Financing, true
	}
	if i := slices.IndexFunc(es, func(e Entry) bool { return e.Financing != nil }); i >= 0 {
		return *es[i].Financing, true
	}
	return Financing{}, false
}

// find returns the first entry of a known field, within an already filtered collection.
func (es Entries) find(f Field) (Entry, bool) {
	if i := slices.IndexFunc(es, func(e Entry) bool { return e.Label.Is(f) }); i >= 0 {
		return es[i], true
	}
	return Entry{}, false
}
