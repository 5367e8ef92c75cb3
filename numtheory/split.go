package numtheory

import (
	"github.com/qfactor/qfactor/big"
)

// NontrivialDivisor reports whether 1 < d < n.
func NontrivialDivisor(d, n *big.Int) bool {
	return d.Cmp(bigONE) > 0 && d.Cmp(n) < 0
}

// SplitByGCD tries gcd(u, n) and then gcd(v, n), returning the first that is a
// nontrivial divisor of n together with its cofactor n/f. ok is false when neither is.
func SplitByGCD(u, v, n *big.Int) (factor, cofactor *big.Int, ok bool) {
	for _, w := range []*big.Int{u, v} {
		f := GCD(w, n)
		if NontrivialDivisor(f, n) {
			return f, new(big.Int).Quo(n, f), true
		}
	}
	return nil, nil, false
}

// SplitBySquareRoot splits n using a square root x of 1 modulo n: gcd(x-1, n) is tried
// before gcd(x+1, n).
func SplitBySquareRoot(x, n *big.Int) (factor, cofactor *big.Int, ok bool) {
	return SplitByGCD(new(big.Int).Sub(x, bigONE), new(big.Int).Add(x, bigONE), n)
}
