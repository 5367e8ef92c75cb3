package numtheory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qfactor/qfactor/big"
)

func isPrimeTrialDivision(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestNextPrimeSmall(t *testing.T) {
	cases := map[int64]int64{
		-5: 2, 0: 2, 1: 2, 2: 2, 3: 3, 4: 5, 12: 13, 14: 17,
		53: 53, 54: 59, 311: 311, 345: 347, 430: 431, 1000: 1009,
	}
	for start, want := range cases {
		assert.Equal(t, want, NextPrime(big.NewInt(start)).Int64(), "start=%d", start)
	}
}

func TestNextPrimeExhaustive(t *testing.T) {
	for start := int64(0); start < 3000; start++ {
		p := NextPrime(big.NewInt(start)).Int64()
		require.True(t, isPrimeTrialDivision(p), "NextPrime(%d) = %d is not prime", start, p)
		require.GreaterOrEqual(t, p, start)
		for k := start; k < p; k++ {
			require.False(t, isPrimeTrialDivision(k), "NextPrime(%d) = %d skipped %d", start, p, k)
		}
	}
}

func TestNextPrimeLarge(t *testing.T) {
	start := new(big.Int).Lsh(big.NewInt(1), 64)
	want := new(big.Int).Add(start, big.NewInt(13))
	assert.Zero(t, NextPrime(start).Cmp(want))
}

func TestNextPrimeDoesNotAlias(t *testing.T) {
	start := big.NewInt(20)
	p := NextPrime(start)
	assert.Equal(t, int64(23), p.Int64())
	assert.Equal(t, int64(20), start.Int64())
}

func TestIsPrime(t *testing.T) {
	for n := int64(-3); n < 500; n++ {
		assert.Equal(t, isPrimeTrialDivision(n), IsPrime(big.NewInt(n)), "n=%d", n)
	}
}
