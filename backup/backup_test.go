package backup

import (
	"strconv"
	"strings"
	"testing"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/amortization"
	"github.com/etnz/leilao/date"
)

const export = `[
  {"id":"1","estado":"GO","cidade":"Guapó","imovel":"guapo-casa1","cenario":"Projetado","statusImovel":"em_andamento","tipoCompra":"À Vista","dataCompra":"2025-01-15","dataVenda":"2026-01-15","fluxoCaixa":190000,"tipoDespesa":"Venda","descricao":"Venda","cota":190000,"vendido":"Não","numCotistas":1},
  {"id":"2","estado":"GO","cidade":"Guapó","imovel":"guapo-casa1","tipoCompra":"À Vista","fluxoCaixa":-3800,"tipoDespesa":"Custo Aquisição","descricao":"ITBI","cota":-3800,"vendido":"Não","numCotistas":1,"manualOverride":false,"percentual":2},
  {"id":"3","estado":"GO","cidade":"Nova Olinda","imovel":"nova-olinda-casa1","cenario":"Executado","statusImovel":"finalizado","tipoCompra":"Financiado","dataCompra":"2025-01-30T00:00:00.000Z","fluxoCaixa":"-1.234,56","tipoDespesa":"Custo Preparação","descricao":"Pintura","vendido":"Sim","numCotistas":4,"manualOverride":true,"taxaJurosAnual":11,"sistemaAmortizacao":"Price","tempoVendaMeses":5.95}
]`

func TestImport(t *testing.T) {
	es, err := Import(strings.NewReader(export))
	if err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if len(es) != 3 {
		t.Fatalf("len(Import()) = %d, want 3", len(es))
	}

	sale, ok := es.Find("guapo-casa1", leilao.Projected, leilao.Known(leilao.Sale))
	if !ok {
		t.Fatal("the sale is missing")
	}
	if !sale.CashFlow.Equal(leilao.BRL(190000)) || sale.Info.City != "Guapó" || sale.Info.SaleDate != date.New(2026, 1, 15) {
		t.Errorf("sale = %+v, want the exported sale", sale)
	}

	itbi, ok := es.Find("guapo-casa1", leilao.Projected, leilao.Known(leilao.ITBI))
	if !ok {
		t.Fatal("the ITBI is missing, a missing scenario is a Projection")
	}
	if itbi.Percentage == nil || *itbi.Percentage != 2 || itbi.Override != leilao.Auto || itbi.Info.Status != leilao.InProgress {
		t.Errorf("ITBI = %+v, want an automatic 2%% ITBI in progress", itbi)
	}
	if itbi.Financing != nil {
		t.Errorf("Financing = %v, want none", itbi.Financing)
	}

	paint, ok := es.Find("nova-olinda-casa1", leilao.Executed, leilao.Custom("Pintura", leilao.CategoryPreparation))
	if !ok {
		t.Fatal("the custom label is missing")
	}
	if !paint.CashFlow.Equal(leilao.BRL(-1234.56)) || !paint.Share.Equal(leilao.BRL(-308.64)) {
		t.Errorf("CashFlow, Share = %v, %v, want -1234.56, -308.64", paint.CashFlow, paint.Share)
	}
	if paint.Override != leilao.Manual || !paint.Info.Sold || paint.Info.Status != leilao.Finished || paint.SaleDurationMonths != 5.95 {
		t.Errorf("paint = %+v, want a manual, sold, finished entry", paint)
	}
	if paint.Info.PurchaseDate != date.New(2025, 1, 30) {
		t.Errorf("PurchaseDate = %v, want 2025-01-30", paint.Info.PurchaseDate)
	}
	if want := (leilao.Financing{AnnualRate: 11, TermMonths: 360, System: amortization.Price}); paint.Financing == nil || *paint.Financing != want {
		t.Errorf("Financing = %v, want %v", paint.Financing, want)
	}
}

func TestImport_LocalStorage(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"array", `{"imob_dashboard_data_v1":` + export + `}`},
		{"string", `{"imob_dashboard_data_v1":` + strconv.Quote(export) + `}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			es, err := Import(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Import() unexpected error: %v", err)
			}
			if got := es.Properties(); len(got) != 2 {
				t.Errorf("Properties() = %v, want 2 properties", got)
			}
		})
	}
}

func TestImport_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"not json", `[{`, "cannot parse backup"},
		{"no entries", `{"imob_fluxo_caixa_data_v1":[]}`, "cannot find"},
		{"not an array", `"hello"`, "array of entries"},
		{"no property", `[{"descricao":"Venda"}]`, "entry #0: missing imovel"},
		{"no label", `[{"imovel":"a"}]`, "missing descricao"},
		{"bad scenario", `[{"imovel":"a","descricao":"Venda","cenario":"Sonhado"}]`, "unknown scenario"},
		{"bad amount", `[{"imovel":"a","descricao":"Venda","fluxoCaixa":"abc"}]`, "invalid number"},
		{"bad date", `[{"imovel":"a","descricao":"Venda","dataCompra":"15/01/2025"}]`, "dataCompra"},
		{"bad system", `[{"imovel":"a","descricao":"Venda","sistemaAmortizacao":"Alemão"}]`, "amortization system"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tc.input))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Import() error = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestImport_LastValueWins(t *testing.T) {
	input := `[{"imovel":"a","descricao":"Venda","fluxoCaixa":1},{"imovel":"a","descricao":"Venda","fluxoCaixa":2,"numCotistas":0}]`
	es, err := Import(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if len(es) != 1 || !es[0].CashFlow.Equal(leilao.BRL(2)) || es[0].Info.Shares() != 1 {
		t.Errorf("Import() = %+v, want a single sale of 2 with one co-investor", es)
	}
}
