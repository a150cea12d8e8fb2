package leilao

// EffectiveEntry returns the entry holding the current value of a label.
//
// Execution falls back on Projection for any label it does not hold.
func EffectiveEntry(es Entries, property string, scenario Scenario, l Label) (Entry, bool) {
	if e, ok := es.Find(property, scenario, l); ok {
		return e, true
	}
	if scenario == Executed {
		return es.Find(property, Projected, l)
	}
	return Entry{}, false
}

// EffectiveValue returns the magnitude of the current value of a label, zero when nobody set it.
func EffectiveValue(es Entries, property string, scenario Scenario, l Label) Money {
	if e, ok := EffectiveEntry(es, property, scenario, l); ok {
		return e.Value()
	}
	return M(0, DefaultCurrency)
}

// Resolved is the current value of a label and where it comes from.
type Resolved struct {
	Label     Label
	Value     Money
	Override  Override
	Inherited bool // the value is read on the Projection
	Missing   bool // nobody set the value
}

// Resolve returns the current value of a label with its origin.
func Resolve(es Entries, property string, scenario Scenario, l Label) Resolved {
	e, ok := EffectiveEntry(es, property, scenario, l)
	if !ok {
		return Resolved{Label: l, Value: M(0, DefaultCurrency), Missing: true}
	}
	return Resolved{Label: l, Value: e.Value(), Override: e.Override, Inherited: e.Scenario != scenario}
}

// Consolidate returns the entries of a scenario as seen with inheritance:
// Projection entries replaced, label by label, by the Execution ones.
//
// For the Projection it is simply its own entries.
func Consolidate(es Entries, property string, scenario Scenario) Entries {
	own := es.Scenario(property, scenario)
	if scenario != Executed {
		return own
	}
	var res Entries
	for _, p := range es.Scenario(property, Projected) {
		if _, ok := own.Find(property, Executed, p.Label); !ok {
			res = append(res, p)
		}
	}
	return append(res, own...)
}
