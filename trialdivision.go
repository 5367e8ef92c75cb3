package qfactor

import (
	"github.com/go-errors/errors"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/numtheory"
)

var (
	bigONE = big.NewInt(1)
	bigTWO = big.NewInt(2)
)

// TrialDivision returns the smallest divisor d of n with 2 <= d <= floor(sqrt(n)) and
// its cofactor n/d. ok is false iff n is prime.
func TrialDivision(n *big.Int) (d, cofactor *big.Int, ok bool, err error) {
	if err = numtheory.ValidateModulus(n); err != nil {
		return nil, nil, false, err
	}

	limit := numtheory.Isqrt(n)
	if limit.IsUint64() && n.IsUint64() {
		return trialDivisionUint64(n.Uint64(), limit.Uint64())
	}

	d = new(big.Int).Set(bigTWO)
	q := new(big.Int)
	r := new(big.Int)
	for ; d.Cmp(limit) <= 0; d.Add(d, bigONE) {
		q.QuoRem(n, d, r)
		if r.Sign() == 0 {
			return d, q, true, nil
		}
	}
	return nil, nil, false, nil
}

func trialDivisionUint64(n, limit uint64) (*big.Int, *big.Int, bool, error) {
	for d := uint64(2); d <= limit; d++ {
		if n%d == 0 {
			return big.NewUint(d), big.NewUint(n / d), true, nil
		}
	}
	return nil, nil, false, nil
}

// CheckSplit returns nil iff factor and cofactor are both nontrivial divisors of n and
// multiply to n. It is used to cross-check results of the probabilistic factorizers
// against each other.
func CheckSplit(n, factor, cofactor *big.Int) error {
	if factor == nil || cofactor == nil {
		return errors.New("split is incomplete")
	}
	if !numtheory.NontrivialDivisor(factor, n) || !numtheory.NontrivialDivisor(cofactor, n) {
		return errors.Errorf("%s * %s is a trivial split of %s", factor, cofactor, n)
	}
	if new(big.Int).Mul(factor, cofactor).Cmp(n) != 0 {
		return errors.Errorf("%s * %s != %s", factor, cofactor, n)
	}
	return nil
}
