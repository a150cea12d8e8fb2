package leilao

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Percent is a percentage, 2 means 2%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// valid returns p, or 0 when p is not a number.
func (p Percent) valid() Percent {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return p
}

func (p Percent) decimal() decimal.Decimal { return decimal.NewFromFloat(float64(p.valid())) }
