package loan

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// powScale bounds intermediate precision while compounding.
const powScale = 24

// EMI returns the equal monthly installment for principal p at apr percent
// over n months, rounded half-up to 2 decimals:
//
//	r = apr/100/12
//	r == 0: p/n
//	else:   p*r*(1+r)^n / ((1+r)^n - 1)
func EMI(p, apr decimal.Decimal, n int) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, errors.New("months must be positive")
	}
	if p.Sign() <= 0 {
		return decimal.Zero, errors.New("principal must be positive")
	}
	if apr.Sign() < 0 {
		return decimal.Zero, errors.New("annual rate must not be negative")
	}

	months := decimal.NewFromInt(int64(n))
	r := apr.Div(hundred).Div(twelve)
	if r.IsZero() {
		return p.Div(months).Round(2), nil
	}

	f := compound(one.Add(r), n)
	emi := p.Mul(r).Mul(f).Div(f.Sub(one))
	return emi.Round(2), nil
}

// compound returns base^n by square-and-multiply, trimming to powScale digits.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	out := one
	for n > 0 {
		if n&1 == 1 {
			out = out.Mul(base).Truncate(powScale)
		}
		base = base.Mul(base).Truncate(powScale)
		n >>= 1
	}
	return out
}
