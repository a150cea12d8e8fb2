package leilao

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/etnz/leilao/date"
	"github.com/google/uuid"
)

var (
	// ErrUnknownProperty is returned when a property has no entry at all.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrPropertyExists is returned when a property name is already taken.
	ErrPropertyExists = errors.New("property already exists")
)

// Entries is an ordered collection of entries.
//
// Methods never modify the receiver, they return a new collection instead.
type Entries []Entry

func (es Entries) clone() Entries { return slices.Clone(es) }

func (es Entries) index(property string, scenario Scenario, l Label) int {
	return slices.IndexFunc(es, func(e Entry) bool {
		return e.Property == property && e.Scenario == scenario && e.Label.sameAs(l)
	})
}

// Find returns the entry of the label in the property's scenario, without inheritance.
func (es Entries) Find(property string, scenario Scenario, l Label) (Entry, bool) {
	if i := es.index(property, scenario, l); i >= 0 {
		return es[i], true
	}
	return Entry{}, false
}

// Scenario returns the entries of a property's scenario, in order.
func (es Entries) Scenario(property string, scenario Scenario) Entries {
	var res Entries
	for _, e := range es {
		if e.Property == property && e.Scenario == scenario {
			res = append(res, e)
		}
	}
	return res
}

// Property returns all the entries of a property, both scenarios.
func (es Entries) Property(property string) Entries {
	var res Entries
	for _, e := range es {
		if e.Property == property {
			res = append(res, e)
		}
	}
	return res
}

// Has reports whether the property has at least one entry.
func (es Entries) Has(property string) bool {
	return slices.ContainsFunc(es, func(e Entry) bool { return e.Property == property })
}

// Properties returns the sorted list of property names.
func (es Entries) Properties() []string {
	var names []string
	for _, e := range es {
		names = append(names, e.Property)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// PropertiesByStatus returns the sorted property names grouped by status, as read on their anchor.
func (es Entries) PropertiesByStatus() map[Status][]string {
	res := make(map[Status][]string)
	for _, p := range es.Properties() {
		st := es.Anchor(p, Projected).Status
		res[st] = append(res[st], p)
	}
	return res
}

// Anchor returns the metadata of a property's scenario.
//
// It is read on the first entry of the scenario. Execution always uses the Projection
// purchase date, and an Execution without entries inherits the Projection metadata
// without its sale date. A property without entries gets DefaultInfo.
func (es Entries) Anchor(property string, scenario Scenario) PropertyInfo {
	own := es.Scenario(property, scenario)
	projected := es.Scenario(property, Projected)
	if len(own) > 0 {
		info := own[0].Info
		if scenario == Executed {
			if i := slices.IndexFunc(projected, func(e Entry) bool { return !e.Info.PurchaseDate.IsZero() }); i >= 0 {
				info.PurchaseDate = projected[i].Info.PurchaseDate
			}
		}
		return info
	}
	if scenario == Executed && len(projected) > 0 {
		info := projected[0].Info
		info.SaleDate = date.Date{}
		return info
	}
	return DefaultInfo()
}

// Upsert replaces the entry with the same property, scenario and label, or appends it.
//
// A missing ID is kept from the replaced entry, or freshly assigned.
func (es Entries) Upsert(e Entry) Entries {
	res := es.clone()
	if i := res.index(e.Property, e.Scenario, e.Label); i >= 0 {
		if e.ID == "" {
			e.ID = res[i].ID
		}
		res[i] = e
		return res
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return append(res, e)
}

// Delete removes the entry with the given ID.
func (es Entries) Delete(id string) Entries {
	return slices.DeleteFunc(es.clone(), func(e Entry) bool { return e.ID == id })
}

// DeleteProperty removes every entry of the property.
func (es Entries) DeleteProperty(property string) Entries {
	return slices.DeleteFunc(es.clone(), func(e Entry) bool { return e.Property == property })
}

// AddProperty creates a new property named "Novo Imóvel" (or "Novo Imóvel 2", ...)
// purchased on the given date, with an empty Projection down payment.
func (es Entries) AddProperty(on date.Date) (Entries, string) {
	name := "Novo Imóvel"
	for i := 2; es.Has(name); i++ {
		name = fmt.Sprintf("Novo Imóvel %d", i)
	}
	info := DefaultInfo()
	info.PurchaseDate = on
	return es.Upsert(NewEntry(name, Projected, Known(DownPayment), info)), name
}

// RenameProperty renames every entry of a property.
func (es Entries) RenameProperty(oldName, newName string) (Entries, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return es, fmt.Errorf("cannot rename %q: empty name", oldName)
	}
	if !es.Has(oldName) {
		return es, fmt.Errorf("cannot rename %q: %w", oldName, ErrUnknownProperty)
	}
	if oldName == newName {
		return es, nil
	}
	if es.Has(newName) {
		return es, fmt.Errorf("cannot rename %q to %q: %w", oldName, newName, ErrPropertyExists)
	}
	res := es.clone()
	for i := range res {
		if res[i].Property == oldName {
			res[i].Property = newName
		}
	}
	return res, nil
}

// DuplicateProperty copies every entry of a property under a fresh name
// "name (Cópia)", "name (Cópia 1)", ... and returns that name.
func (es Entries) DuplicateProperty(property string) (Entries, string, error) {
	if !es.Has(property) {
		return es, "", fmt.Errorf("cannot duplicate %q: %w", property, ErrUnknownProperty)
	}
	name := property + " (Cópia)"
	for i := 1; es.Has(name); i++ {
		name = fmt.Sprintf("%s (Cópia %d)", property, i)
	}
	res := es.clone()
	for _, e := range es.Property(property) {
		e.ID = uuid.NewString()
		e.Property = name
		res = append(res, e)
	}
	return res, name, nil
}

// SetStatus changes the status of every entry of a property.
func (es Entries) SetStatus(property string, status Status) Entries {
	res := es.clone()
	for i := range res {
		if res[i].Property == property {
			res[i].Info.Status = status
		}
	}
	return res
}

// UpdateInfo edits the metadata of a property as seen from a scenario and propagates the
// changed fields to every entry of the property.
//
// Changing the purchase date moves the sale date one year later. Changing the number of
// co-investors recomputes every share. In Execution, once both dates are known, the sale
// duration of the Sale entry is synchronized with them.
func (es Entries) UpdateInfo(property string, scenario Scenario, edit func(*PropertyInfo)) Entries {
	old := es.Anchor(property, scenario)
	info := old
	edit(&info)
	if info.PurchaseDate != old.PurchaseDate && info.SaleDate == old.SaleDate && !info.PurchaseDate.IsZero() {
		info.SaleDate = info.PurchaseDate.AddYears(1)
	}

	res := es.clone()
	found := false
	for i := range res {
		if res[i].Property != property {
			continue
		}
		found = true
		res[i].Info = mergeInfo(res[i].Info, old, info)
		res[i] = res[i].WithCashFlow(res[i].CashFlow)
	}
	if !found {
		res = res.Upsert(NewEntry(property, Projected, Known(DownPayment), info))
	}

	if scenario == Executed {
		res = res.syncSaleDuration(property)
	}
	return res
}

// mergeInfo applies to dst the fields that differ between before and after.
func mergeInfo(dst, before, after PropertyInfo) PropertyInfo {
	if after.State != before.State {
		dst.State = after.State
	}
	if after.City != before.City {
		dst.City = after.City
	}
	if after.Status != before.Status {
		dst.Status = after.Status
	}
	if after.PurchaseType != before.PurchaseType {
		dst.PurchaseType = after.PurchaseType
	}
	if after.PurchaseDate != before.PurchaseDate {
		dst.PurchaseDate = after.PurchaseDate
	}
	if after.SaleDate != before.SaleDate {
		dst.SaleDate = after.SaleDate
	}
	if after.Sold != before.Sold {
		dst.Sold = after.Sold
	}
	if after.ShareCount != before.ShareCount {
		dst.ShareCount = after.ShareCount
	}
	return dst
}

// syncSaleDuration records on the Execution Sale entry the months between purchase and sale.
func (es Entries) syncSaleDuration(property string) Entries {
	info := es.Anchor(property, Executed)
	if info.PurchaseDate.IsZero() || info.SaleDate.IsZero() {
		return es
	}
	months := math.Round(float64(info.PurchaseDate.DaysUntil(info.SaleDate))/30.4375*100) / 100
	sale, ok := es.Find(property, Executed, Known(Sale))
	if !ok {
		sale = NewEntry(property, Executed, Known(Sale), info)
	} else if sale.SaleDurationMonths != 0 && math.Abs(sale.SaleDurationMonths-months) <= 0.01 {
		return es
	}
	sale.SaleDurationMonths = months
	return es.Upsert(sale)
}
