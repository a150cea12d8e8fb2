package amortization

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// near reports whether a and b differ by less than a cent.
func near(a, b decimal.Decimal) bool { return a.Sub(b).Abs().LessThan(d(0.01)) }

func TestSchedule_SACvsPrice(t *testing.T) {
	sac := Schedule(Loan{Principal: d(100000), AnnualRate: 12, TermMonths: 120, System: SAC}, 12)
	price := Schedule(Loan{Principal: d(100000), AnnualRate: 12, TermMonths: 120, System: Price}, 12)

	if !sac.Installment.GreaterThan(price.Installment) {
		t.Errorf("SAC first installment %v should exceed Price first installment %v", sac.Installment, price.Installment)
	}
	if !sac.Outstanding.LessThan(price.Outstanding) {
		t.Errorf("SAC balance after 12 months %v should be lower than Price balance %v", sac.Outstanding, price.Outstanding)
	}

	// 100000/120 + 100000*1%
	if want := d(1833.33); !near(sac.Installment, want) {
		t.Errorf("SAC Installment = %v, want %v", sac.Installment, want)
	}
	if want := d(90000); !near(sac.Outstanding, want) {
		t.Errorf("SAC Outstanding = %v, want %v", sac.Outstanding, want)
	}
	if want := d(1434.71); !near(price.Installment, want) {
		t.Errorf("Price Installment = %v, want %v", price.Installment, want)
	}
	if !near(price.LastInstallment, price.Installment) {
		t.Errorf("Price installments should be constant, got %v then %v", price.Installment, price.LastInstallment)
	}
}

func TestSchedule_PriceClosedForm(t *testing.T) {
	// balance after k payments: P * ((1+r)^n - (1+r)^k) / ((1+r)^n - 1)
	p, n, k := d(100000), 120, 12
	r := MonthlyRate(12)
	fn := pow(decimal.NewFromInt(1).Add(r), n)
	fk := pow(decimal.NewFromInt(1).Add(r), k)
	want := p.Mul(fn.Sub(fk)).Div(fn.Sub(decimal.NewFromInt(1)))

	got := Schedule(Loan{Principal: p, AnnualRate: 12, TermMonths: n, System: Price}, k)
	if !near(got.Outstanding, want) {
		t.Errorf("Outstanding = %v, want %v", got.Outstanding, want)
	}
}

func TestSchedule_Payoff(t *testing.T) {
	for _, system := range []System{SAC, Price} {
		t.Run(system.String(), func(t *testing.T) {
			l := Loan{Principal: d(50000), AnnualRate: 9.5, TermMonths: 24, System: system}
			full := Schedule(l, 24)
			if !full.Outstanding.IsZero() {
				t.Errorf("Outstanding after the full term = %v, want 0", full.Outstanding)
			}
			if got := full.PaidToDate.Sub(full.InterestToDate); !near(got, l.Principal) {
				t.Errorf("principal repaid = %v, want %v", got, l.Principal)
			}
			if full.Outstanding.IsNegative() {
				t.Errorf("Outstanding must never be negative, got %v", full.Outstanding)
			}

			// after the payoff nothing more is paid.
			beyond := Schedule(l, 36)
			if !beyond.PaidToDate.Equal(full.PaidToDate) {
				t.Errorf("PaidToDate beyond the term = %v, want %v", beyond.PaidToDate, full.PaidToDate)
			}
		})
	}
}

func TestSchedule_Degenerate(t *testing.T) {
	testCases := []struct {
		name string
		loan Loan
	}{
		{"zero term", Loan{Principal: d(1000), AnnualRate: 10, TermMonths: 0}},
		{"negative term", Loan{Principal: d(1000), AnnualRate: 10, TermMonths: -3, System: Price}},
		{"zero principal", Loan{Principal: decimal.Zero, AnnualRate: 10, TermMonths: 12}},
		{"negative principal", Loan{Principal: d(-1000), AnnualRate: 10, TermMonths: 12, System: Price}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Schedule(tc.loan, 12)
			if !got.Installment.IsZero() || !got.Outstanding.IsZero() || !got.InterestToDate.IsZero() || !got.PaidToDate.IsZero() {
				t.Errorf("Schedule() = %+v, want a zero snapshot", got)
			}
		})
	}
}

func TestSchedule_ZeroRate(t *testing.T) {
	for _, system := range []System{SAC, Price} {
		t.Run(system.String(), func(t *testing.T) {
			got := Schedule(Loan{Principal: d(12000), AnnualRate: 0, TermMonths: 12, System: system}, 6)
			if !near(got.Installment, d(1000)) {
				t.Errorf("Installment = %v, want 1000", got.Installment)
			}
			if !got.InterestToDate.IsZero() {
				t.Errorf("InterestToDate = %v, want 0", got.InterestToDate)
			}
			if !near(got.Outstanding, d(6000)) {
				t.Errorf("Outstanding = %v, want 6000", got.Outstanding)
			}
		})
	}
}

func TestParseSystem(t *testing.T) {
	for _, s := range []System{SAC, Price} {
		got, err := ParseSystem(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSystem(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseSystem("german"); err == nil {
		t.Error("ParseSystem() expected an error")
	}
}
