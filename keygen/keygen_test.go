package keygen

import (
	"testing"

	"github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/numtheory"
)

func assertKeypair(t *testing.T, k *Keypair, p, q, n, phi, e, d int64, attempt int) {
	t.Helper()
	assert.Equal(t, p, k.P.Int64(), "p")
	assert.Equal(t, q, k.Q.Int64(), "q")
	assert.Equal(t, n, k.N.Int64(), "n")
	assert.Equal(t, phi, k.Phi.Int64(), "phi")
	assert.Equal(t, e, k.E.Int64(), "e")
	assert.Equal(t, d, k.D.Int64(), "d")
	assert.Equal(t, attempt, k.Attempt, "attempt")
	assert.NoError(t, k.Validate())
}

func TestDeriveDefault(t *testing.T) {
	k, err := Derive(big.NewInt(12345), nil)
	require.NoError(t, err)
	assertKeypair(t, k, 347, 13, 4511, 4152, 17, 977, 0)
}

func TestDeriveModulus134041(t *testing.T) {
	k, err := Derive(big.NewInt(311431), &Params{Exponent: 17})
	require.NoError(t, err)
	assertKeypair(t, k, 431, 311, 134041, 133300, 17, 86253, 0)
}

func TestDeriveRetriesAttempts(t *testing.T) {
	// (346)(12) and the attempt after it are multiples of 3.
	k, err := Derive(big.NewInt(12345), &Params{Exponent: 3})
	require.NoError(t, err)
	assertKeypair(t, k, 347, 17, 5899, 5536, 3, 3691, 2)
}

func TestDeriveCollision(t *testing.T) {
	k, err := Derive(big.NewInt(7007), nil)
	require.NoError(t, err)
	assertKeypair(t, k, 7, 11, 77, 60, 17, 53, 0)

	k, err = Derive(big.NewInt(1001), nil)
	require.NoError(t, err)
	assertKeypair(t, k, 2, 3, 6, 2, 17, 1, 0)
}

func TestDeriveLargeSeedAndExponent(t *testing.T) {
	seed := big.MustParse("75263518707598184987916378021939673586055614731957507592904438851787999999")
	k, err := Derive(seed, &Params{Exponent: 65537})
	require.NoError(t, err)
	assertKeypair(t, k, 1009, 1013, 1022117, 1020096, 65537, 832193, 0)
}

func TestDeriveExhausted(t *testing.T) {
	// phi is always even, so e = 2 never works.
	_, err := Derive(big.NewInt(12345), &Params{Exponent: 2, MaxAttempts: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExhausted))
}

func TestDeriveInvalid(t *testing.T) {
	for _, tc := range []struct {
		seed   *big.Int
		params *Params
	}{
		{nil, nil},
		{big.NewInt(-1), nil},
		{big.NewInt(12345), &Params{Exponent: 1}},
		{big.NewInt(12345), &Params{Exponent: -17}},
		{big.NewInt(12345), &Params{MaxAttempts: -1}},
	} {
		_, err := Derive(tc.seed, tc.params)
		assert.True(t, errors.Is(err, numtheory.ErrInvalidArgument), "seed %v params %+v", tc.seed, tc.params)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	a, err := Derive(big.NewInt(987654321), nil)
	require.NoError(t, err)
	b, err := Derive(big.NewInt(987654321), nil)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
	assert.Zero(t, a.D.Cmp(b.D))
}

func TestDeriveInvariants(t *testing.T) {
	e := big.NewInt(DefaultExponent)
	for seed := int64(0); seed < 1000000; seed += 7919 {
		k, err := Derive(big.NewInt(seed), nil)
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, k.Validate(), "seed %d", seed)
		assert.NotZero(t, k.P.Cmp(k.Q))
		assert.Equal(t, int64(1), numtheory.GCD(e, k.Phi).Int64())
		ed := new(big.Int).Mul(k.E, k.D)
		assert.Equal(t, int64(1), ed.Mod(ed, k.Phi).Int64())
	}
}
