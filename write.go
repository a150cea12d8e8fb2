package leilao

import "fmt"

// WriteOptions qualifies a SetValue.
type WriteOptions struct {
	// Automatic writes keep the field's override state, otherwise the field becomes Manual.
	Automatic bool
	// Percentage, when set, is persisted with the value and makes the field Auto again.
	Percentage *Percent
}

func (o WriteOptions) source() EditSource {
	switch {
	case !o.Automatic:
		return DirectEdit
	case o.Percentage != nil:
		return PercentageEdit
	default:
		return AutomaticWrite
	}
}

// SetValue writes the amount of a label in a property's scenario.
//
// The amount is stored as a magnitude carrying the label's sign and its share is computed
// with the property's number of co-investors. The entry is created if needed.
func SetValue(es Entries, property string, scenario Scenario, l Label, amount Money, opts WriteOptions) Entries {
	return es.Upsert(write(es, property, scenario, l, amount, opts))
}

func write(es Entries, property string, scenario Scenario, l Label, amount Money, opts WriteOptions) Entry {
	info := es.Anchor(property, scenario)
	e, ok := es.Find(property, scenario, l)
	if !ok {
		e = NewEntry(property, scenario, l, info)
	}
	e.Info.ShareCount = info.ShareCount
	e.Override = e.Override.Next(opts.source())
	if opts.Percentage != nil {
		p := opts.Percentage.valid()
		e.Percentage = &p
	}
	return e.WithCashFlow(signed(l, amount))
}

// Rate is one of the percentages a user can set on a property.
type Rate int

const (
	ITBIRate Rate = iota
	BrokerRate
	AuctioneerRate
	DownPaymentRate
	CapitalGainsRate
)

// Field returns the field a rate applies to.
func (r Rate) Field() Field {
	switch r {
	case ITBIRate:
		return ITBI
	case BrokerRate:
		return BrokerCommission
	case AuctioneerRate:
		return AuctioneerCommission
	case DownPaymentRate:
		return DownPayment
	default:
		return CapitalGainsTax
	}
}

func (r Rate) String() string {
	switch r {
	case ITBIRate:
		return "itbi"
	case BrokerRate:
		return "broker"
	case AuctioneerRate:
		return "auctioneer"
	case DownPaymentRate:
		return "down-payment"
	case CapitalGainsRate:
		return "capital-gains"
	default:
		return "unknown"
	}
}

// ParseRate parses a rate name.
func ParseRate(s string) (Rate, error) {
	for r := ITBIRate; r <= CapitalGainsRate; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rate: %q", s)
}

// rateBase returns the amount a rate applies to, false when the rate has no base in
// this scenario.
func rateBase(es Entries, property string, scenario Scenario, r Rate) (Money, bool) {
	value := func(f Field) Money { return EffectiveValue(es, property, scenario, Known(f)) }
	financed := es.Anchor(property, scenario).PurchaseType == Financed
	acquisition := value(DownPayment)
	if financed {
		acquisition = value(AcquisitionValue)
	}
	switch r {
	case BrokerRate:
		return value(Sale), true
	case ITBIRate, AuctioneerRate:
		return acquisition, true
	case DownPaymentRate:
		// a cash purchase down payment is the bid itself.
		return value(AcquisitionValue), financed
	default:
		// the capital gains tax depends on the whole scenario, the recomputation derives it.
		return Money{}, false
	}
}

// SetPercentage sets a rate on a property's scenario: the target field is rewritten with
// base × pct, becomes Auto, and persists the rate.
//
// A rate without a base keeps the current amount of the field.
func SetPercentage(es Entries, property string, scenario Scenario, r Rate, pct Percent) Entries {
	pct = pct.valid()
	amount := M(0, DefaultCurrency)
	base, ok := rateBase(es, property, scenario, r)
	switch {
	case !ok:
		amount = EffectiveValue(es, property, scenario, Known(r.Field()))
	case base.IsPositive():
		amount = base.MulPercent(pct)
	}
	return SetValue(es, property, scenario, Known(r.Field()), amount, WriteOptions{Automatic: true, Percentage: &pct})
}

// SetFinancing changes the loan parameters of a property's scenario.
//
// Installment and OutstandingBalance go back to Auto so that the next recomputation shows
// fresh figures. The parameters are persisted on the AcquisitionValue entry.
func SetFinancing(es Entries, property string, scenario Scenario, f Financing) Entries {
	res := es
	for _, field := range []Field{Installment, OutstandingBalance} {
		if e, ok := res.Find(property, scenario, Known(field)); ok && e.Override == Manual {
			e.Override = e.Override.Next(ParameterReset)
			res = res.Upsert(e)
		}
	}
	e, ok := res.Find(property, scenario, Known(AcquisitionValue))
	if !ok {
		e = NewEntry(property, scenario, Known(AcquisitionValue), res.Anchor(property, scenario))
	}
	e.Financing = &f
	return res.Upsert(e)
}

// SetSaleDuration records the months to sale on the Sale entry of a property's scenario.
func SetSaleDuration(es Entries, property string, scenario Scenario, months float64) Entries {
	if months < 0 {
		months = 0
	}
	e, ok := es.Find(property, scenario, Known(Sale))
	if !ok {
		e = NewEntry(property, scenario, Known(Sale), es.Anchor(property, scenario))
	}
	e.SaleDurationMonths = months
	return es.Upsert(e)
}
