// Package backup imports the JSON export of the web dashboard.
//
// The export is the content of its local storage: either the array of financial entries
// itself, or an object holding it under the "imob_dashboard_data_v1" key, as an array or
// as a JSON encoded string. Cash flow and timeline records are ignored.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/leilao"
	"github.com/etnz/leilao/amortization"
	"github.com/etnz/leilao/date"
)

// StorageKey is the local storage key of the financial entries.
const StorageKey = "imob_dashboard_data_v1"

// Import reads an export and returns its entries.
//
// A missing scenario is a Projection, a missing status is in progress and a missing
// co-investor count is one. A label repeated in the same property's scenario keeps the
// last value.
func Import(r io.Reader) (leilao.Entries, error) {
	var root any
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("cannot parse backup: %w", err)
	}
	items, err := records(root)
	if err != nil {
		return nil, err
	}

	var es leilao.Entries
	for i, item := range items {
		e, err := entry(item)
		if err != nil {
			return nil, fmt.Errorf("entry #%d: %w", i, err)
		}
		es = es.Upsert(e)
	}
	return es, nil
}

// records finds the array of entries in the document.
func records(root any) ([]any, error) {
	if obj, ok := root.(map[string]any); ok {
		v, err := jsonpath.Get("$."+StorageKey, obj)
		if err != nil {
			return nil, fmt.Errorf("cannot find %q in backup: %w", StorageKey, err)
		}
		// local storage values are strings.
		if s, ok := v.(string); ok {
			if err := json.Unmarshal([]byte(s), &v); err != nil {
				return nil, fmt.Errorf("cannot parse %q: %w", StorageKey, err)
			}
		}
		root = v
	}
	items, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("backup must be an array of entries, got %T", root)
	}
	return items, nil
}

// record reads attributes of one exported entry.
type record struct{ obj any }

// get returns the attribute, nil if not set. jsonpath returns an error on missing keys.
func (r record) get(key string) any {
	v, err := jsonpath.Get("$."+key, r.obj)
	if err != nil {
		return nil
	}
	return v
}

func (r record) has(key string) bool { return r.get(key) != nil }

func (r record) str(key string) string {
	switch v := r.get(key).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// number reads a number, also accepting strings with a decimal comma.
func (r record) number(key string) (float64, error) {
	switch v := r.get(key).(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), " ", "")
		if s == "" {
			return 0, nil
		}
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q for %q: %w", v, key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("invalid number %v for %q", v, key)
	}
}

func (r record) boolean(key string) bool {
	switch v := r.get(key).(type) {
	case bool:
		return v
	case string:
		return v == "Sim" || v == "true"
	default:
		return false
	}
}

func (r record) date(key string) (date.Date, error) {
	d, err := date.Parse(r.str(key))
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid %q: %w", key, err)
	}
	return d, nil
}

func entry(obj any) (leilao.Entry, error) {
	r := record{obj}
	var e leilao.Entry

	property := r.str("imovel")
	if property == "" {
		return e, fmt.Errorf("missing imovel")
	}
	text := r.str("descricao")
	if text == "" {
		return e, fmt.Errorf("missing descricao of %q", property)
	}

	scenario, err := leilao.ParseScenario(r.str("cenario"))
	if err != nil {
		return e, err
	}
	category := leilao.CategoryAcquisition
	if s := r.str("tipoDespesa"); s != "" {
		if category, err = leilao.ParseCategory(s); err != nil {
			return e, err
		}
	}

	info := leilao.DefaultInfo()
	info.State = r.str("estado")
	info.City = r.str("cidade")
	if s := r.str("statusImovel"); s != "" {
		if info.Status, err = leilao.ParseStatus(s); err != nil {
			return e, err
		}
	}
	if info.PurchaseType, err = leilao.ParsePurchaseType(r.str("tipoCompra")); err != nil {
		return e, err
	}
	if info.PurchaseDate, err = r.date("dataCompra"); err != nil {
		return e, err
	}
	if info.SaleDate, err = r.date("dataVenda"); err != nil {
		return e, err
	}
	info.Sold = r.boolean("vendido")
	shares, err := r.number("numCotistas")
	if err != nil {
		return e, err
	}
	if shares >= 1 {
		info.ShareCount = int(shares)
	}

	e = leilao.NewEntry(property, scenario, leilao.ParseLabel(text, category), info)
	e.ID = r.str("id")
	if r.boolean("manualOverride") {
		e.Override = leilao.Manual
	}
	if r.has("percentual") {
		p, err := r.number("percentual")
		if err != nil {
			return e, err
		}
		pct := leilao.Percent(p)
		e.Percentage = &pct
	}
	if e.SaleDurationMonths, err = r.number("tempoVendaMeses"); err != nil {
		return e, err
	}
	if e.Financing, err = financing(r); err != nil {
		return e, err
	}

	amount, err := r.number("fluxoCaixa")
	if err != nil {
		return e, err
	}
	return e.WithCashFlow(leilao.BRL(amount)), nil
}

// financing reads the loan parameters, nil when none is set.
func financing(r record) (*leilao.Financing, error) {
	if !r.has("taxaJurosAnual") && !r.has("prazoMeses") && !r.has("sistemaAmortizacao") {
		return nil, nil
	}
	f := leilao.DefaultFinancing()
	if r.has("taxaJurosAnual") {
		rate, err := r.number("taxaJurosAnual")
		if err != nil {
			return nil, err
		}
		f.AnnualRate = leilao.Percent(rate)
	}
	if r.has("prazoMeses") {
		term, err := r.number("prazoMeses")
		if err != nil {
			return nil, err
		}
		f.TermMonths = int(term)
	}
	if s := r.str("sistemaAmortizacao"); s != "" {
		system, err := amortization.ParseSystem(s)
		if err != nil {
			return nil, err
		}
		f.System = system
	}
	return &f, nil
}
