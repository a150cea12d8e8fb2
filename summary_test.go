package leilao

import (
	"math"
	"testing"

	"github.com/etnz/leilao/date"
)

func TestSummarize_CashPurchase(t *testing.T) {
	es := Recompute(cashProperty(), casa, Projected, DefaultParams())
	s := SummarizeOn(es, casa, Projected, date.New(2025, 6, 1))

	// 92700 + 1854 + 1900 + 4635 + 1900 + 10000 + 5000 + 300
	if want := BRL(118289); !s.CapitalEmployed.WithinCents(want) {
		t.Errorf("CapitalEmployed = %v, want %v", s.CapitalEmployed, want)
	}
	// 190000 - 9500 - 10126.65 - 118289
	if want := BRL(52084.35); !s.TotalProfit.WithinCents(want) {
		t.Errorf("TotalProfit = %v, want %v", s.TotalProfit, want)
	}
	if want := Percent(44.03144); !s.ROITotal.Equal(want) {
		t.Errorf("ROITotal = %v, want %v", s.ROITotal, want)
	}
	if s.DurationMonths != 12 {
		t.Errorf("DurationMonths = %v, want 12 for a Projection", s.DurationMonths)
	}
	if want := MonthlyROI(s.ROITotal, 12); s.ROIMonthly != want {
		t.Errorf("ROIMonthly = %v, want %v", s.ROIMonthly, want)
	}
	if !s.ProfitPerShare.Equal(s.TotalProfit) {
		t.Errorf("ProfitPerShare = %v, want %v for a single co-investor", s.ProfitPerShare, s.TotalProfit)
	}
}

func TestSummarize_ROISigns(t *testing.T) {
	t.Run("loss", func(t *testing.T) {
		es := set(nil, Projected, Sale, 50000)
		es = set(es, Projected, DownPayment, 80000)
		s := Summarize(es, casa, Projected)
		if !s.TotalProfit.IsNegative() || s.ROITotal >= 0 || s.ROIMonthly >= 0 {
			t.Errorf("Summarize() = %v %v %v, want a loss", s.TotalProfit, s.ROITotal, s.ROIMonthly)
		}
	})

	t.Run("full loss", func(t *testing.T) {
		es := set(nil, Projected, DownPayment, 1000)
		es = set(es, Projected, Renovation, 500)
		s := Summarize(es, casa, Projected)
		if s.ROITotal != -100 {
			t.Errorf("ROITotal = %v, want exactly -100", s.ROITotal)
		}
		if s.ROIMonthly != -100 {
			t.Errorf("ROIMonthly = %v, want exactly -100", s.ROIMonthly)
		}
	})

	t.Run("beyond full loss", func(t *testing.T) {
		es := set(nil, Projected, DownPayment, 1000)
		es = set(es, Projected, OutstandingBalance, 5000)
		s := Summarize(es, casa, Projected)
		if s.ROITotal >= -100 || s.ROIMonthly != -100 {
			t.Errorf("ROITotal, ROIMonthly = %v, %v, want below -100 and -100", s.ROITotal, s.ROIMonthly)
		}
		if math.IsNaN(float64(s.ROIMonthly)) {
			t.Error("ROIMonthly must be defined")
		}
	})

	t.Run("no capital", func(t *testing.T) {
		es := set(nil, Projected, Sale, 1000)
		s := Summarize(es, casa, Projected)
		if s.ROITotal != 0 {
			t.Errorf("ROITotal = %v, want 0 without capital employed", s.ROITotal)
		}
	})
}

func TestSummarize_Duration(t *testing.T) {
	base := cashProperty()
	executed := SetValue(base, casa, Executed, Known(Sale), BRL(200000), WriteOptions{})
	on := date.New(2025, 7, 15)

	testCases := []struct {
		name string
		es   Entries
		want float64
	}{
		{"projection", base, 12},
		// the anchor of an Execution has no sale date yet: 181 days until on.
		{"unsold", executed, 181 / 30.44},
		{"recorded", SetSaleDuration(executed, casa, Executed, 6), 6},
		// selling records the time to sale: 10 days.
		{"sold", executed.UpdateInfo(casa, Executed, func(p *PropertyInfo) { p.SaleDate = date.New(2025, 1, 25) }), 0.33},
		{"no purchase date", executed.UpdateInfo(casa, Executed, func(p *PropertyInfo) { p.PurchaseDate = date.Date{} }), 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			scenario := Executed
			if tc.name == "projection" {
				scenario = Projected
			}
			s := SummarizeOn(tc.es, casa, scenario, on)
			if math.Abs(s.DurationMonths-tc.want) > 1e-9 {
				t.Errorf("DurationMonths = %v, want %v", s.DurationMonths, tc.want)
			}
		})
	}
}

func TestMonthlyROI(t *testing.T) {
	testCases := []struct {
		total  Percent
		months float64
		want   Percent
	}{
		{21, 2, 10},
		{0, 12, 0},
		{-100, 12, -100},
		{-150, 3, -100},
		{10, 1, 10},
	}
	for _, tc := range testCases {
		if got := MonthlyROI(tc.total, tc.months); !got.Equal(tc.want) {
			t.Errorf("MonthlyROI(%v, %v) = %v, want %v", tc.total, tc.months, got, tc.want)
		}
	}
}

func TestCompare(t *testing.T) {
	es := Recompute(cashProperty(), casa, Projected, DefaultParams())
	es = SetValue(es, casa, Executed, Known(Sale), BRL(200000), WriteOptions{})
	es = Recompute(es, casa, Executed, LoadParams(es, casa, Executed))

	c := Compare(es, casa, date.New(2026, 1, 15))
	if !c.ProfitDelta().IsPositive() {
		t.Errorf("ProfitDelta() = %v, want a better Execution", c.ProfitDelta())
	}
	// 1854 + 1900 + 1900 + 10126.65
	if want := BRL(15780.65); !BureauCosts(c.Projected).WithinCents(want) {
		t.Errorf("BureauCosts(Projected) = %v, want %v", BureauCosts(c.Projected), want)
	}
	if c.ROIDelta() <= 0 {
		t.Errorf("ROIDelta() = %v, want positive", c.ROIDelta())
	}
}
