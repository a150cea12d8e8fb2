// Package amortization simulates loan repayment schedules for the two systems
// used by Brazilian real-estate financing: SAC (constant amortization, declining
// installments) and Price (constant installment, French system).
//
// Schedules are simulated month by month, because the interest of a month depends
// on the outstanding balance of the previous one and callers need the state of the
// loan at a given month (e.g. the balance to settle on the sale date).
package amortization

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// System is an amortization system.
type System int

const (
	// SAC is the constant amortization system: principal/term is repaid every month.
	SAC System = iota
	// Price is the constant installment system.
	Price
)

func (s System) String() string {
	switch s {
	case SAC:
		return "SAC"
	case Price:
		return "Price"
	default:
		return "unknown"
	}
}

// ParseSystem parses a string into a System.
func ParseSystem(s string) (System, error) {
	switch s {
	case "SAC", "sac":
		return SAC, nil
	case "Price", "price", "PRICE":
		return Price, nil
	default:
		return 0, fmt.Errorf("unknown amortization system: %q", s)
	}
}

func (s System) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *System) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := ParseSystem(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Loan describes a financed amount.
type Loan struct {
	Principal  decimal.Decimal
	AnnualRate float64 // in percent, 9.5 means 9.5% a year
	TermMonths int
	System     System
}

// Snapshot is the state of a loan after a number of monthly payments.
type Snapshot struct {
	Installment     decimal.Decimal // installment of the first month
	LastInstallment decimal.Decimal // installment of the last simulated month
	PaidToDate      decimal.Decimal // sum of all installments paid
	InterestToDate  decimal.Decimal // sum of the interest part of all installments paid
	Outstanding     decimal.Decimal // balance still due
}

// scale is the number of decimal places kept during the simulation.
const scale = 20

// dust is the residue under which a balance is considered settled.
var dust = decimal.New(1, -9)

var twelveHundred = decimal.NewFromInt(1200)

// MonthlyRate converts an annual percentage into a monthly rate (9.5 -> 0.0079166...).
//
// Negative rates are meaningless here and are treated as zero.
func MonthlyRate(annualRate float64) decimal.Decimal {
	if annualRate <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(annualRate).DivRound(twelveHundred, scale)
}

// PriceInstallment returns the constant installment principal*(r(1+r)^n)/((1+r)^n - 1).
//
// A zero rate degrades into a straight line principal/n.
func PriceInstallment(principal, rate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	months := decimal.NewFromInt(int64(n))
	factor := pow(decimal.NewFromInt(1).Add(rate), n)
	denominator := factor.Sub(decimal.NewFromInt(1))
	if !denominator.IsPositive() {
		return principal.DivRound(months, scale)
	}
	return principal.Mul(rate).Mul(factor).DivRound(denominator, scale)
}

// Schedule simulates the loan up to monthOffset payments and returns the state of the loan.
//
// A non-positive term or principal yields a zero Snapshot. Once the balance is settled the
// following months pay nothing, so a monthOffset beyond the term is the payoff state.
func Schedule(l Loan, monthOffset int) Snapshot {
	if l.TermMonths <= 0 || !l.Principal.IsPositive() {
		return Snapshot{}
	}
	rate := MonthlyRate(l.AnnualRate)

	// principalPart returns the amortization of a month with the given interest.
	var principalPart func(interest decimal.Decimal) decimal.Decimal
	switch l.System {
	case Price:
		pmt := PriceInstallment(l.Principal, rate, l.TermMonths)
		principalPart = func(interest decimal.Decimal) decimal.Decimal { return pmt.Sub(interest) }
	default:
		amortization := l.Principal.DivRound(decimal.NewFromInt(int64(l.TermMonths)), scale)
		principalPart = func(decimal.Decimal) decimal.Decimal { return amortization }
	}

	month := func(outstanding decimal.Decimal) (installment, interest, amortized decimal.Decimal) {
		interest = outstanding.Mul(rate).Round(scale)
		amortized = principalPart(interest)
		// the last installment only settles what is left.
		if amortized.GreaterThan(outstanding) {
			amortized = outstanding
		}
		return amortized.Add(interest), interest, amortized
	}

	s := Snapshot{Outstanding: l.Principal}
	s.Installment, _, _ = month(l.Principal)
	for i := 0; i < monthOffset && s.Outstanding.IsPositive(); i++ {
		installment, interest, amortized := month(s.Outstanding)
		s.LastInstallment = installment
		s.PaidToDate = s.PaidToDate.Add(installment)
		s.InterestToDate = s.InterestToDate.Add(interest)
		s.Outstanding = s.Outstanding.Sub(amortized)
		if s.Outstanding.LessThan(dust) {
			s.Outstanding = decimal.Zero
		}
	}
	return s
}

// pow computes x^n by squaring, rounding every step to keep the precision bounded.
func pow(x decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(x).Round(scale)
		}
		x = x.Mul(x).Round(scale)
		n >>= 1
	}
	return result
}
