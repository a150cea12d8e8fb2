package leilao

import (
	"testing"

	"github.com/etnz/leilao/date"
)

// property used by most tests.
const casa = "guapo-casa1"

// assertValue fails if the effective value of f is not want, to the cent.
func assertValue(t *testing.T, es Entries, scenario Scenario, f Field, want float64) {
	t.Helper()
	if got := EffectiveValue(es, casa, scenario, Known(f)); !got.WithinCents(BRL(want)) {
		t.Errorf("%s (%s) = %v, want %v", Known(f), scenario, got, BRL(want))
	}
}

// set is a test helper for a direct user edit.
func set(es Entries, scenario Scenario, f Field, amount float64) Entries {
	return SetValue(es, casa, scenario, Known(f), BRL(amount), WriteOptions{})
}

// cashProperty returns the scenario 1 property: a cash purchase with no derived field yet.
func cashProperty() Entries {
	info := DefaultInfo()
	info.State, info.City = "GO", "Guapó"
	info.PurchaseDate = date.New(2025, 1, 15)
	info.SaleDate = date.New(2026, 1, 15)
	var es Entries
	for _, l := range []struct {
		f Field
		v float64
	}{{Sale, 190000}, {DownPayment, 92700}, {Renovation, 10000}, {Vacancy, 5000}, {PropertyTax, 300}} {
		e := NewEntry(casa, Projected, Known(l.f), info)
		es = es.Upsert(e.WithCashFlow(signed(e.Label, BRL(l.v))))
	}
	return es
}

// financedProperty returns a financed purchase with the given acquisition value.
func financedProperty(acquisition float64) Entries {
	info := DefaultInfo()
	info.PurchaseType = Financed
	info.PurchaseDate = date.New(2025, 1, 30)
	info.SaleDate = date.New(2026, 1, 30)
	var es Entries
	e := NewEntry(casa, Projected, Known(AcquisitionValue), info)
	es = es.Upsert(e.WithCashFlow(signed(e.Label, BRL(acquisition))))
	e = NewEntry(casa, Projected, Known(Sale), info)
	es = es.Upsert(e.WithCashFlow(signed(e.Label, BRL(270000))))
	return es
}
