package leilao

import (
	"github.com/etnz/leilao/amortization"
)

// registryRate is the share of the sale price used for both the registry and the deed fee.
const registryRate Percent = 1

// pass is a single recomputation of a property's scenario.
//
// Every value is read on the pre-pass snapshot es, except for the fields already derived
// by this pass that are read on settled. Writes are only applied by commit.
type pass struct {
	es       Entries
	property string
	scenario Scenario
	params   Params

	settled map[Field]Money
	writes  []Entry
}

func newPass(es Entries, property string, scenario Scenario, params Params) *pass {
	return &pass{es: es, property: property, scenario: scenario, params: params, settled: make(map[Field]Money)}
}

// value returns the current value of f in this pass.
func (p *pass) value(f Field) Money {
	if v, ok := p.settled[f]; ok {
		return v
	}
	return EffectiveValue(p.es, p.property, p.scenario, Known(f))
}

// derive proposes a computed value for f.
//
// Manual fields keep their value, and values within a cent of the current one, read with
// the Execution fallback, are not rewritten.
func (p *pass) derive(f Field, computed Money) {
	if own, ok := p.es.Find(p.property, p.scenario, Known(f)); ok && own.Override == Manual {
		p.settled[f] = own.Value()
		return
	}
	current := EffectiveValue(p.es, p.property, p.scenario, Known(f))
	if current.WithinCents(computed) {
		p.settled[f] = current
		return
	}
	p.settled[f] = computed
	p.writes = append(p.writes, write(p.es, p.property, p.scenario, Known(f), computed, WriteOptions{Automatic: true}))
}

func (p *pass) commit() Entries {
	res := p.es
	for _, w := range p.writes {
		res = res.Upsert(w)
	}
	return res
}

func (p *pass) sum(fields ...Field) Money {
	total := M(0, DefaultCurrency)
	for _, f := range fields {
		total = total.Add(p.value(f))
	}
	return total
}

func (p *pass) run() {
	params := p.params
	sale := p.value(Sale)
	if sale.IsPositive() {
		p.derive(BrokerCommission, sale.MulPercent(params.BrokerCommission))
		p.derive(Registry, sale.MulPercent(registryRate))
		p.derive(DeedFee, sale.MulPercent(registryRate))
	}

	financed := p.es.Anchor(p.property, p.scenario).PurchaseType == Financed
	base := p.value(DownPayment)
	if financed {
		base = p.value(AcquisitionValue)
	}
	if base.IsPositive() {
		p.derive(ITBI, base.MulPercent(params.ITBI))
	}

	var gainBase Money
	if !financed {
		if dp := p.value(DownPayment); dp.IsPositive() {
			p.derive(AuctioneerCommission, dp.MulPercent(params.AuctioneerCommission))
		}
		gainBase = sale.Sub(p.sum(BrokerCommission, DownPayment, ITBI, Registry, AgentFee, AuctioneerCommission, DeedFee, Renovation))
	} else {
		if av := p.value(AcquisitionValue); av.IsPositive() {
			p.derive(DownPayment, av.MulPercent(params.DownPayment))
			p.derive(AuctioneerCommission, av.MulPercent(params.AuctioneerCommission))

			principal := av.Sub(p.value(DownPayment))
			f := params.Financing
			if principal.IsPositive() && f.TermMonths > 0 {
				loan := amortization.Loan{
					Principal:  principal.Decimal(),
					AnnualRate: float64(f.AnnualRate.valid()),
					TermMonths: f.TermMonths,
					System:     f.System,
				}
				s := amortization.Schedule(loan, 12)
				p.derive(Installment, M(s.Installment, DefaultCurrency).MulInt(12))
				p.derive(OutstandingBalance, M(s.Outstanding, DefaultCurrency).Max(M(0, DefaultCurrency)))
			}
		}
		gainBase = sale.Sub(p.sum(AcquisitionValue, BrokerCommission, AuctioneerCommission, ITBI, Registry, AgentFee, DeedFee, Renovation))
	}
	p.derive(CapitalGainsTax, gainBase.Max(M(0, DefaultCurrency)).MulPercent(params.CapitalGains))
}

// Recompute derives every dependent field of a property's scenario from its root inputs.
//
// The receiver collection is left untouched. Manual fields are never rewritten, and
// recomputing an already recomputed collection changes nothing.
func Recompute(es Entries, property string, scenario Scenario, params Params) Entries {
	p := newPass(es, property, scenario, params)
	p.run()
	return p.commit()
}

// RecomputeAll is Recompute, it is the name used by the callers that recompute after any edit.
func RecomputeAll(es Entries, property string, scenario Scenario, params Params) Entries {
	return Recompute(es, property, scenario, params)
}

// PendingWrites returns the entries a recomputation would write, in derivation order.
func PendingWrites(es Entries, property string, scenario Scenario, params Params) []Entry {
	p := newPass(es, property, scenario, params)
	p.run()
	return p.writes
}
