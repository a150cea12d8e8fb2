// Package renderer formats reports as markdown, using the templates embedded in the
// binary.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/viability"
)

//go:embed templates/*.md
var embedded embed.FS

var templates, _ = fs.Sub(embedded, "templates")

// funcs are available in every template.
var funcs = template.FuncMap{
	"signed": func(v any) string {
		switch v := v.(type) {
		case leilao.Money:
			return v.SignedString()
		case leilao.Percent:
			return v.SignedString()
		default:
			return fmt.Sprint(v)
		}
	},
	"months": func(m float64) string { return fmt.Sprintf("%.1f", m) },
}

// RenderSummary renders the outcome of a property's scenario.
func RenderSummary(s leilao.Summary) string {
	partials := map[string]string{
		"property_info":     "property_info.md",
		"summary_breakdown": "summary_breakdown.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// comparisonRow is a field in both scenarios.
type comparisonRow struct {
	Label               leilao.Label
	Projected, Executed leilao.Money
	Delta               leilao.Money
}

type comparison struct {
	leilao.Comparison
	Rows []comparisonRow
	// Bureau are the taxes and fees of each scenario.
	BureauProjected, BureauExecuted leilao.Money
	CapitalDelta                    leilao.Money
	ROIMonthlyDelta                 leilao.Percent
}

// RenderComparison renders both scenarios of a property side by side.
//
// Fields that are zero in both scenarios are left out.
func RenderComparison(c leilao.Comparison) string {
	v := comparison{
		Comparison:      c,
		BureauProjected: leilao.BureauCosts(c.Projected),
		BureauExecuted:  leilao.BureauCosts(c.Executed),
		CapitalDelta:    c.Executed.CapitalEmployed.Sub(c.Projected.CapitalEmployed),
		ROIMonthlyDelta: c.Executed.ROIMonthly - c.Projected.ROIMonthly,
	}
	for _, l := range c.Projected.Breakdown {
		p, e := l.Value, c.Executed.Breakdown.Value(l.Label.Field())
		if p.IsZero() && e.IsZero() {
			continue
		}
		v.Rows = append(v.Rows, comparisonRow{Label: l.Label, Projected: p, Executed: e, Delta: e.Sub(p)})
	}
	partials := map[string]string{
		"property_info": "property_info.md",
	}
	return renderTemplate("comparison", "comparison.md", partials, v)
}

// RenderDashboard renders a portfolio dashboard.
func RenderDashboard(d leilao.Dashboard) string {
	partials := map[string]string{
		"dashboard_properties": "dashboard_properties.md",
		"dashboard_costs":      "dashboard_costs.md",
		"dashboard_states":     "dashboard_states.md",
		"dashboard_months":     "dashboard_months.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

type sweep struct {
	Inputs viability.Inputs
	Base   viability.Result
	Rows   []viability.Result
}

// RenderSweep renders a simulation and its sensitivity table.
func RenderSweep(in viability.Inputs, rows []viability.Result) string {
	return renderTemplate("sweep", "sweep.md", nil, sweep{
		Inputs: in,
		Base:   viability.Calculate(in, in.Bid),
		Rows:   rows,
	})
}

// RenderProperties renders the list of properties of the store, by status.
func RenderProperties(es leilao.Entries) string {
	type property struct {
		Name string
		Info leilao.PropertyInfo
	}
	byStatus := es.PropertiesByStatus()
	var data struct{ InProgress, Finished []property }
	for _, name := range byStatus[leilao.InProgress] {
		data.InProgress = append(data.InProgress, property{name, es.Anchor(name, leilao.Projected)})
	}
	for _, name := range byStatus[leilao.Finished] {
		data.Finished = append(data.Finished, property{name, es.Anchor(name, leilao.Projected)})
	}
	return renderTemplate("properties", "properties.md", nil, data)
}

func newTemplate(name string) *template.Template { return template.New(name).Funcs(funcs) }

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := newTemplate(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
