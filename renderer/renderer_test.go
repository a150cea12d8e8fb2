package renderer

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/date"
	"github.com/etnz/leilao/viability"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// table is a markdown table, header row included.
type table [][]string

// parseTables returns the tables of a markdown document.
func parseTables(t *testing.T, doc string) []table {
	t.Helper()
	if strings.HasPrefix(doc, "error ") {
		t.Fatalf("rendering failed: %s", doc)
	}
	source := []byte(doc)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(source))

	var tables []table
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *east.Table:
			tables = append(tables, nil)
		case *east.TableHeader, *east.TableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, cellText(c, source))
			}
			tables[len(tables)-1] = append(tables[len(tables)-1], row)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return tables
}

// cellText concatenates the text of a node.
func cellText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
		case *ast.String:
			b.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// lookup returns the cells of the first row starting with key.
func (tb table) lookup(key string) []string {
	for _, row := range tb {
		if len(row) > 0 && row[0] == key {
			return row[1:]
		}
	}
	return nil
}

func seed() leilao.Entries {
	es := leilao.Seed()
	for _, p := range es.Properties() {
		es = leilao.Recompute(es, p, leilao.Projected, leilao.LoadParams(es, p, leilao.Projected))
	}
	return es
}

func TestRenderSummary(t *testing.T) {
	s := leilao.SummarizeOn(seed(), "guapo-casa1", leilao.Projected, date.New(2025, 6, 1))
	doc := RenderSummary(s)
	if !strings.HasPrefix(doc, "# guapo-casa1 (Projetado)") {
		t.Errorf("title = %q", strings.SplitN(doc, "\n", 2)[0])
	}
	if !strings.Contains(doc, "GO / Guapó") {
		t.Errorf("summary must show the location:\n%s", doc)
	}

	tables := parseTables(t, doc)
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(tables))
	}
	if got, want := tables[0].lookup("Total Profit"), []string{s.TotalProfit.String()}; !cmp.Equal(got, want) {
		t.Errorf("Total Profit = %v, want %v", got, want)
	}
	if got, want := tables[0].lookup("ROI Total"), []string{s.ROITotal.String()}; !cmp.Equal(got, want) {
		t.Errorf("ROI Total = %v, want %v", got, want)
	}
	if got, want := tables[0].lookup("Duration (months)"), []string{"12.0"}; !cmp.Equal(got, want) {
		t.Errorf("Duration = %v, want %v", got, want)
	}

	// zero fields are left out of the breakdown.
	breakdown := tables[1]
	if got := breakdown.lookup("Venda"); !cmp.Equal(got, []string{"Venda", "R$190.000,00"}) {
		t.Errorf("Venda row = %v", got)
	}
	for _, row := range breakdown[1:] {
		if row[2] == leilao.BRL(0).String() {
			t.Errorf("breakdown contains a zero line: %v", row)
		}
	}
}

func TestRenderComparison(t *testing.T) {
	es := leilao.SetValue(seed(), "guapo-casa1", leilao.Executed, leilao.Known(leilao.Sale), leilao.BRL(200000), leilao.WriteOptions{})
	c := leilao.Compare(es, "guapo-casa1", date.New(2025, 6, 1))
	tables := parseTables(t, RenderComparison(c))
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(tables))
	}
	fields := tables[1]
	want := []string{"R$190.000,00", "R$200.000,00", "+R$10.000,00"}
	if got := fields.lookup("Venda"); !cmp.Equal(got, want) {
		t.Errorf("Venda row = %v, want %v", got, want)
	}
	// inherited fields have no delta.
	if got := fields.lookup("Entrada"); len(got) != 3 || got[2] != "-" {
		t.Errorf("Entrada row = %v, want no delta", got)
	}
	if got := tables[0].lookup("Total Profit"); len(got) != 3 || got[2] != c.ProfitDelta().SignedString() {
		t.Errorf("Total Profit row = %v, want delta %v", got, c.ProfitDelta().SignedString())
	}
}

func TestRenderDashboard(t *testing.T) {
	d := leilao.NewDashboard(seed(), leilao.Projected, leilao.Filter{})
	tables := parseTables(t, RenderDashboard(d))
	// totals, properties, costs, states, months
	if len(tables) != 5 {
		t.Fatalf("len(tables) = %d, want 5", len(tables))
	}
	if got, want := tables[0][1], []string{d.Revenue.String(), d.Costs.String(), d.Profit.String()}; !cmp.Equal(got, want) {
		t.Errorf("totals = %v, want %v", got, want)
	}
	if got := len(tables[1]) - 1; got != len(d.Properties) {
		t.Errorf("%d property rows, want %d", got, len(d.Properties))
	}
	if got := tables[2].lookup("Total"); len(got) != 3 || got[2] != d.CostTotal.Share.String() {
		t.Errorf("cost total row = %v, want share %v", got, d.CostTotal.Share)
	}
	if got := tables[3].lookup("GO"); !cmp.Equal(got, []string{d.Profit.String()}) {
		t.Errorf("GO row = %v, want %v", got, d.Profit)
	}
}

func TestRenderDashboard_Empty(t *testing.T) {
	d := leilao.NewDashboard(seed(), leilao.Projected, leilao.Filter{States: []string{"SP"}})
	if tables := parseTables(t, RenderDashboard(d)); len(tables) != 1 {
		t.Errorf("len(tables) = %d, want only the totals", len(tables))
	}
}

func TestRenderSweep(t *testing.T) {
	in := viability.DefaultInputs().WithSaleValue(leilao.BRL(250000)).WithBid(leilao.BRL(100000))
	rows := viability.Sweep(in, in.Increment, viability.DefaultRows)
	doc := RenderSweep(in, rows)
	tables := parseTables(t, doc)
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(tables))
	}
	if got := len(tables[1]) - 1; got != viability.DefaultRows {
		t.Errorf("%d sensitivity rows, want %d", got, viability.DefaultRows)
	}
	if got := tables[1][1][0]; got != "R$100.000,00" {
		t.Errorf("first bid = %q, want R$100.000,00", got)
	}
	if got := tables[1][12][0]; got != "R$155.000,00" {
		t.Errorf("last bid = %q, want R$155.000,00", got)
	}

	// no bid, no sensitivity table.
	if tables := parseTables(t, RenderSweep(viability.DefaultInputs(), nil)); len(tables) != 1 {
		t.Errorf("len(tables) = %d, want 1 without a bid", len(tables))
	}
}

func TestRenderProperties(t *testing.T) {
	tables := parseTables(t, RenderProperties(seed()))
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want in progress and finished", len(tables))
	}
	if got := len(tables[0]) - 1; got != 3 {
		t.Errorf("%d properties in progress, want 3", got)
	}
	if got := tables[1].lookup("trindade2"); len(got) != 5 || got[0] != "GO" {
		t.Errorf("trindade2 row = %v", got)
	}
}

func TestTemplatesParse(t *testing.T) {
	files, err := fs.Glob(templates, "*.md")
	if err != nil || len(files) == 0 {
		t.Fatalf("no template found: %v", err)
	}
	for _, f := range files {
		content, err := fs.ReadFile(templates, f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := newTemplate(f).Parse(string(content)); err != nil {
			t.Errorf("template %q does not parse: %v", f, err)
		}
	}
}
