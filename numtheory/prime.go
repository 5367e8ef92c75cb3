package numtheory

import (
	"github.com/qfactor/qfactor/big"
)

// SmallPrimes is a list of small prime numbers that allows us to rapidly exclude most
// composite candidates when searching for the next prime. The list is truncated at the
// point where SmallPrimesProduct exceeds a uint64.
var SmallPrimes = []uint8{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
}

// SmallPrimesProduct is the product of the values in SmallPrimes. Reducing a candidate
// by this number lets us test it against all of SmallPrimes without further big.Int
// operations.
var SmallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)

// primalityRounds is the number of Miller-Rabin rounds on top of the Baillie-PSW test
// that ProbablyPrime always applies; the result is exact below 2^64.
const primalityRounds = 20

// IsPrime reports whether n is prime (probably prime above 2^64).
func IsPrime(n *big.Int) bool {
	if n.Cmp(bigTWO) < 0 {
		return false
	}
	return n.ProbablyPrime(primalityRounds)
}

// NextPrime returns the smallest prime p >= start. For start <= 2 that is 2.
func NextPrime(start *big.Int) *big.Int {
	if start.Cmp(bigTWO) <= 0 {
		return big.NewInt(2)
	}

	p := new(big.Int).Set(start)
	if p.Bit(0) == 0 {
		p.Add(p, bigONE)
	}

	bigMod := new(big.Int)
NextCandidate:
	for ; ; p.Add(p, bigTWO) {
		// A candidate that is a multiple of one of SmallPrimes can be discarded without
		// running ProbablyPrime, unless it is that prime itself.
		bigMod.Mod(p, SmallPrimesProduct)
		mod := bigMod.Uint64()
		for _, prime := range SmallPrimes {
			if mod%uint64(prime) == 0 && !(p.IsUint64() && p.Uint64() == uint64(prime)) {
				continue NextCandidate
			}
		}

		if p.ProbablyPrime(primalityRounds) {
			return p
		}
	}
}
