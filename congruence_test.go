package qfactor

import (
	"context"
	"testing"

	"github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qfactor/qfactor/big"
)

func TestFindFactorN21(t *testing.T) {
	n := big.NewInt(21)
	relations, err := CollectRelations(n, 7, big.NewInt(5), 30)
	require.NoError(t, err)

	split, err := FindFactor(n, relations)
	require.NoError(t, err)
	assert.Contains(t, []int64{3, 7}, split.Factor.Int64())
	require.NoError(t, CheckSplit(n, split.Factor, split.Cofactor))

	// (5, 16) collides trivially before (5, 19) splits 21 with gcd(5 - 19, 21) = 7.
	assert.Equal(t, int64(7), split.Factor.Int64())
	assert.Equal(t, int64(3), split.Cofactor.Int64())
	assert.Equal(t, int64(5), split.X1.Int64())
	assert.Equal(t, int64(19), split.X2.Int64())
	assert.Equal(t, 1, split.TrivialPairs)
}

func TestFindFactorUsesSumWhenDifferenceIsTrivial(t *testing.T) {
	n := big.NewInt(21)
	// 6 and 27 collide on residue 15: gcd(-21, 21) = 21, gcd(33, 21) = 3.
	split, err := FindFactor(n, relationsOf([2]int64{6, 15}, [2]int64{27, 15}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), split.Factor.Int64())
	assert.Equal(t, int64(7), split.Cofactor.Int64())

	// 5 and 26 collide on residue 4: gcd(-21, 21) = 21, gcd(31, 21) = 1.
	_, err = FindFactor(n, relationsOf([2]int64{5, 4}, [2]int64{26, 4}))
	assert.True(t, errors.Is(err, ErrNoCongruence))
}

func TestFindFactorNoCongruence(t *testing.T) {
	n := big.NewInt(21)

	_, err := FindFactor(n, nil)
	assert.True(t, errors.Is(err, ErrNoCongruence))

	_, err = FindFactor(n, relationsOf([2]int64{5, 4}, [2]int64{6, 15}, [2]int64{7, 7}))
	assert.True(t, errors.Is(err, ErrNoCongruence))

	// Three collisions on residue 4, all trivial.
	_, err = FindFactor(n, relationsOf([2]int64{5, 4}, [2]int64{16, 4}, [2]int64{26, 4}))
	assert.True(t, errors.Is(err, ErrNoCongruence))
}

func TestEvaluatePair(t *testing.T) {
	n := big.NewInt(21)
	r := relationsOf([2]int64{5, 4}, [2]int64{6, 15}, [2]int64{16, 4}, [2]int64{19, 4})

	outcome, _, _ := EvaluatePair(n, r[0], r[1])
	assert.Equal(t, PairMismatch, outcome)
	outcome, _, _ = EvaluatePair(n, r[0], r[2])
	assert.Equal(t, PairTrivial, outcome)
	outcome, f, c := EvaluatePair(n, r[0], r[3])
	assert.Equal(t, PairNontrivial, outcome)
	assert.Equal(t, int64(7), f.Int64())
	assert.Equal(t, int64(3), c.Int64())
	assert.Equal(t, "trivial", PairTrivial.String())
}

func TestFindFactorConcurrentMatchesSequential(t *testing.T) {
	for _, tc := range []struct {
		n     int64
		bound uint64
		size  int
	}{
		{21, 7, 30},
		{134041, 50, 2000},
		{134041, 100, 2000},
		{134041, 200, 5000},
	} {
		n := big.NewInt(tc.n)
		relations, err := CollectRelations(n, tc.bound, DefaultWindowStart(n), tc.size)
		require.NoError(t, err)

		want, err := FindFactor(n, relations)
		require.NoError(t, err)
		for _, workers := range []int{0, 2, 7} {
			got, err := FindFactorConcurrent(context.Background(), n, relations, workers)
			require.NoError(t, err)
			assert.Zero(t, want.Factor.Cmp(got.Factor))
			assert.Zero(t, want.X1.Cmp(got.X1))
			assert.Zero(t, want.X2.Cmp(got.X2))
			assert.Equal(t, want.TrivialPairs, got.TrivialPairs)
		}
	}
}

func TestFindFactorConcurrentNoCongruence(t *testing.T) {
	_, err := FindFactorConcurrent(context.Background(), big.NewInt(21),
		relationsOf([2]int64{5, 4}, [2]int64{16, 4}), 4)
	assert.True(t, errors.Is(err, ErrNoCongruence))
}
