package leilao

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/leilao/amortization"
	"github.com/etnz/leilao/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The entries are persisted as JSONL, one entry per line, in a human-readable and
// git-friendly way: keys always come in the same order and empty attributes are omitted.

// jentry is the object read from a line using the json parser.
type jentry struct {
	ID                 string               `json:"id"`
	Property           string               `json:"property"`
	Scenario           Scenario             `json:"scenario"`
	Category           Category             `json:"category"`
	Label              string               `json:"label"`
	CashFlow           decimal.Decimal      `json:"cashFlow"`
	Currency           string               `json:"currency"`
	ManualOverride     bool                 `json:"manualOverride"`
	Percentage         *float64             `json:"percentage"`
	SaleDurationMonths float64              `json:"saleDurationMonths"`
	AnnualRate         *float64             `json:"annualRate"`
	TermMonths         *int                 `json:"termMonths"`
	Amortization       *amortization.System `json:"amortization"`
	State              string               `json:"state"`
	City               string               `json:"city"`
	Status             Status               `json:"status"`
	PurchaseType       PurchaseType         `json:"purchaseType"`
	PurchaseDate       date.Date            `json:"purchaseDate"`
	SaleDate           date.Date            `json:"saleDate"`
	Sold               bool                 `json:"sold"`
	ShareCount         int                  `json:"shareCount"`
}

func (j jentry) entry() Entry {
	e := Entry{
		ID:                 j.ID,
		Property:           j.Property,
		Scenario:           j.Scenario,
		Label:              ParseLabel(j.Label, j.Category),
		SaleDurationMonths: j.SaleDurationMonths,
		Info: PropertyInfo{
			State:        j.State,
			City:         j.City,
			Status:       j.Status,
			PurchaseType: j.PurchaseType,
			PurchaseDate: j.PurchaseDate,
			SaleDate:     j.SaleDate,
			Sold:         j.Sold,
			ShareCount:   j.ShareCount,
		},
	}
	if j.ManualOverride {
		e.Override = Manual
	}
	if j.Percentage != nil {
		p := Percent(*j.Percentage).valid()
		e.Percentage = &p
	}
	if j.AnnualRate != nil || j.TermMonths != nil || j.Amortization != nil {
		f := DefaultFinancing()
		if j.AnnualRate != nil {
			f.AnnualRate = Percent(*j.AnnualRate).valid()
		}
		if j.TermMonths != nil {
			f.TermMonths = *j.TermMonths
		}
		if j.Amortization != nil {
			f.System = *j.Amortization
		}
		e.Financing = &f
	}
	return e.WithCashFlow(M(j.CashFlow, DefaultCurrency))
}

// DecodeEntries reads a JSONL stream of entries.
//
// Shares are recomputed from the cash flows. A label appearing twice in the same
// property's scenario is an error.
func DecodeEntries(r io.Reader) (Entries, error) {
	var es Entries
	seen := make(map[string]int)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue // Skip empty lines
		}
		var j jentry
		if err := json.Unmarshal(line, &j); err != nil {
			return nil, fmt.Errorf("parse error on line %d: %w", i, err)
		}
		if j.Property == "" {
			return nil, fmt.Errorf("parse error on line %d: missing property", i)
		}
		if j.Label == "" {
			return nil, fmt.Errorf("parse error on line %d: missing label", i)
		}
		if j.Currency != "" && j.Currency != DefaultCurrency {
			return nil, fmt.Errorf("parse error on line %d: unsupported currency %q, amounts are in %s", i, j.Currency, DefaultCurrency)
		}
		key := fmt.Sprintf("%s\x00%s\x00%s", j.Property, j.Scenario, j.Label)
		if prev, exists := seen[key]; exists {
			return nil, fmt.Errorf("parse error on line %d: label %q of %q (%s) is already defined on line %d", i, j.Label, j.Property, j.Scenario, prev)
		}
		seen[key] = i
		es = append(es, j.entry())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error after line %d: %w", i, err)
	}
	return es, nil
}

// MarshalJSON writes the canonical persisted form of the entry.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", e.ID)
	w.Append("property", e.Property)
	w.Append("scenario", e.Scenario)
	w.Append("category", e.Category())
	w.Append("label", e.Label)
	w.Append("cashFlow", e.CashFlow.rounded())
	w.Append("share", e.Share.rounded())
	if c := e.CashFlow.Currency(); c != DefaultCurrency {
		w.Optional("currency", c)
	}
	w.Optional("manualOverride", e.Override == Manual)
	if e.Percentage != nil {
		w.Append("percentage", float64(*e.Percentage))
	}
	w.Optional("saleDurationMonths", e.SaleDurationMonths)
	if f := e.Financing; f != nil {
		w.Append("annualRate", float64(f.AnnualRate))
		w.Append("termMonths", f.TermMonths)
		w.Append("amortization", f.System)
	}
	w.Optional("state", e.Info.State)
	w.Optional("city", e.Info.City)
	w.Append("status", e.Info.Status)
	w.Append("purchaseType", e.Info.PurchaseType)
	w.Optional("purchaseDate", e.Info.PurchaseDate)
	w.Optional("saleDate", e.Info.SaleDate)
	w.Optional("sold", e.Info.Sold)
	w.Append("shareCount", e.Info.Shares())
	return w.MarshalJSON()
}

// EncodeEntries writes the entries as a JSONL stream, in order.
func EncodeEntries(w io.Writer, es Entries) error {
	for i, e := range es {
		line, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("cannot encode entry %d (%s %s %s): %w", i, e.Property, e.Scenario, e.Label, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return fmt.Errorf("cannot write entry %d: %w", i, err)
		}
	}
	return nil
}
