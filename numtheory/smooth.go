package numtheory

import (
	"github.com/qfactor/qfactor/big"
)

// IsBSmooth reports whether every prime factor of |n| is at most bound. It divides out
// every integer 2..bound in turn and checks that 1 remains, so composite trial divisors
// are harmless: their prime factors are already gone when they are reached.
//
// 1 and -1 are smooth for every bound. 0 is never smooth: it has no finite
// factorization, and x^2 = 0 (mod N) relations carry nothing for a congruence search.
func IsBSmooth(n *big.Int, bound uint64) bool {
	if n.Sign() == 0 {
		return false
	}
	rest := new(big.Int).Abs(n)
	if rest.IsUint64() {
		return isBSmoothUint64(rest.Uint64(), bound)
	}

	d := new(big.Int)
	q := new(big.Int)
	r := new(big.Int)
	for p := uint64(2); p <= bound; p++ {
		d.SetUint64(p)
		for {
			q.QuoRem(rest, d, r)
			if r.Sign() != 0 {
				break
			}
			rest.Set(q)
		}
		if rest.Cmp(bigONE) == 0 {
			return true
		}
		if rest.IsUint64() {
			return isBSmoothUint64From(rest.Uint64(), p+1, bound)
		}
	}
	return rest.Cmp(bigONE) == 0
}

func isBSmoothUint64(n uint64, bound uint64) bool {
	return isBSmoothUint64From(n, 2, bound)
}

func isBSmoothUint64From(n uint64, from, bound uint64) bool {
	for p := from; p <= bound && n != 1; p++ {
		// Once p*p > n the remainder is 1 or a prime, which is smooth iff <= bound.
		if p > n/p {
			return n <= bound
		}
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}
