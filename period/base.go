package period

import (
	"fmt"

	"github.com/bwesterb/go-exptable"
	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/numtheory"
)

// tableWindow is the window size of the fixed-base exponentiation table.
const tableWindow = 5

// Base is a base a modulo N against which candidate periods are checked. NewBase
// precomputes a fixed-base exponentiation table for a, which pays off when many
// candidates are checked for the same base.
type Base struct {
	A *big.Int
	N *big.Int

	table *exptable.Table
}

// NewBase prepares base a, 2 <= a < n, for modulus n.
func NewBase(a, n *big.Int) (*Base, error) {
	return newBase(a, n, true)
}

func newBase(a, n *big.Int, withTable bool) (*Base, error) {
	if err := numtheory.ValidateModulus(n); err != nil {
		return nil, err
	}
	if a == nil || a.Cmp(big.NewInt(2)) < 0 || a.Cmp(n) >= 0 {
		return nil, numtheory.Invalid("base %v must lie in [2, %s)", a, n)
	}
	b := &Base{A: new(big.Int).Set(a), N: new(big.Int).Set(n)}
	// The table is only built for odd moduli; even N are split by their factor 2
	// long before anyone asks for a period.
	if withTable && n.Bit(0) == 1 {
		b.table = new(exptable.Table)
		b.table.Compute(b.A.Go(), b.N.Go(), tableWindow)
	}
	return b, nil
}

// Exp returns a^e mod N for e >= 0.
func (b *Base) Exp(e *big.Int) *big.Int {
	ret := new(big.Int)
	if e.Sign() == 0 {
		return ret.SetInt64(1)
	}
	if b.table != nil && e.BitLen() <= b.N.BitLen() {
		b.table.Exp(ret.Go(), e.Go())
		return ret
	}
	return ret.Exp(b.A, e, b.N)
}

// Lucky returns the split of N by gcd(a, N) when a shares a factor with N.
func (b *Base) Lucky() (*Factors, bool) {
	g := numtheory.GCD(b.A, b.N)
	if !numtheory.NontrivialDivisor(g, b.N) {
		return nil, false
	}
	return &Factors{
		Base:     new(big.Int).Set(b.A),
		Factor:   g,
		Cofactor: new(big.Int).Quo(b.N, g),
		Lucky:    true,
	}, true
}

// Validate checks the candidate period r >= 1 against this base.
func (b *Base) Validate(r *big.Int) (Verdict, error) {
	if r == nil || r.Sign() <= 0 {
		return VerificationFailed, numtheory.Invalid("period %v must be positive", r)
	}
	if r.Bit(0) == 1 {
		return OddPeriod, nil
	}
	if b.Exp(r).Cmp(bigONE) != 0 {
		return VerificationFailed, nil
	}
	return Valid, nil
}

// Split validates r and splits N with x = a^(r/2) mod N.
func (b *Base) Split(r *big.Int) (*Factors, error) {
	verdict, err := b.Validate(r)
	if err != nil {
		return nil, err
	}
	if verdict != Valid {
		return nil, b.wrap(verdict.err(), r)
	}

	x := b.Exp(new(big.Int).Rsh(r, 1))
	if x.Cmp(new(big.Int).Sub(b.N, bigONE)) == 0 {
		return nil, b.wrap(ErrTrivialRoot, r)
	}
	f, c, ok := numtheory.SplitBySquareRoot(x, b.N)
	if !ok {
		return nil, b.wrap(ErrTrivialFactors, r)
	}

	Logger.WithFields(logrus.Fields{"n": b.N, "base": b.A, "period": r, "factor": f}).
		Debug("period split n")
	return &Factors{Base: new(big.Int).Set(b.A), Period: new(big.Int).Set(r), Factor: f, Cofactor: c}, nil
}

// Attempt extracts a period candidate from s and tries to split N with it.
func (b *Base) Attempt(s Sample) (*Factors, error) {
	r, err := Extract(s, b.N)
	if err != nil {
		return nil, err
	}
	return b.Split(r)
}

func (b *Base) wrap(err error, r *big.Int) error {
	return errors.WrapPrefix(err, fmt.Sprintf("a = %s, r = %s, n = %s", b.A, r, b.N), 1)
}
