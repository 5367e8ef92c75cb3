// Package numtheory contains the modular arithmetic shared by the factorizers and the
// key generator: gcd, modular exponentiation and inversion, prime search and
// smoothness testing.
package numtheory

import (
	"fmt"

	"github.com/go-errors/errors"

	"github.com/qfactor/qfactor/big"
)

// Often we need to refer to the same small constant big numbers, no point in
// creating them again and again.
var (
	bigZERO = big.NewInt(0)
	bigONE  = big.NewInt(1)
	bigTWO  = big.NewInt(2)
)

var (
	// ErrInvalidArgument is returned (wrapped with the offending parameter) when an input
	// is outside the domain of an operation, e.g. a modulus below 2.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoModInverse is returned when gcd(a, m) != 1.
	ErrNoModInverse = errors.New("modular inverse does not exist")
)

// Invalid wraps ErrInvalidArgument with a description of the offending input. Match
// the result with errors.Is from github.com/go-errors/errors.
func Invalid(format string, args ...interface{}) error {
	return errors.WrapPrefix(ErrInvalidArgument, fmt.Sprintf(format, args...), 1)
}

// GCD returns the non-negative greatest common divisor of a and b, for any signs.
// GCD(0, 0) is 0.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	return new(big.Int).GCD(nil, nil, x, y)
}

// ModPow computes x^y mod m for m >= 1. The exponent can be negative, in which case
// the modular inverse of x is raised to -y (in contrast to Go's Exp function).
func ModPow(x, y, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, Invalid("modulus %s must be positive", m)
	}
	if m.Cmp(bigONE) == 0 {
		return big.NewInt(0), nil
	}
	base := new(big.Int).Mod(x, m)
	if y.Sign() == -1 {
		t, err := ModInverse(base, m)
		if err != nil {
			return nil, err
		}
		return t.Exp(t, new(big.Int).Neg(y), m), nil
	}
	return base.Exp(base, y, m), nil
}

// ModInverse returns d in [1, m) with a*d = 1 (mod m), computed with the extended
// Euclidean algorithm. a may be negative or exceed m.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Cmp(bigTWO) < 0 {
		return nil, Invalid("modulus %s must be at least 2", m)
	}
	r := new(big.Int).Mod(a, m)
	g := new(big.Int)
	x := new(big.Int)
	g.GCD(x, nil, r, m)
	if g.Cmp(bigONE) != 0 {
		return nil, errors.WrapPrefix(ErrNoModInverse, fmt.Sprintf("gcd(%s, %s) = %s", a, m, g), 0)
	}

	if x.Sign() < 0 {
		// x is a Bezout coefficient in (-m, m); shift it into [1, m).
		x.Add(x, m)
	}

	return x, nil
}

// Isqrt returns floor(sqrt(n)) for n >= 0.
func Isqrt(n *big.Int) *big.Int {
	if n.Sign() < 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Sqrt(n)
}

// ValidateModulus checks that n can be factored or used as a modulus: n >= 2.
func ValidateModulus(n *big.Int) error {
	if n == nil {
		return Invalid("modulus is missing")
	}
	if n.Cmp(bigTWO) < 0 {
		return Invalid("modulus %s must be at least 2", n)
	}
	return nil
}

// ValidateBound checks a smoothness bound: b >= 2.
func ValidateBound(b uint64) error {
	if b < 2 {
		return Invalid("smoothness bound %d must be at least 2", b)
	}
	return nil
}
