package qfactor

import (
	"context"
	"fmt"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/qfactor/qfactor/big"
)

// SieveParams configures SieveFactor.
type SieveParams struct {
	// Bound is the smoothness bound B.
	Bound uint64 `json:"bound" yaml:"bound"`
	// Start is the first x of the window; nil means DefaultWindowStart(n).
	Start *big.Int `json:"start,omitempty" yaml:"start,omitempty"`
	// Size is the number of consecutive x values sieved.
	Size int `json:"size" yaml:"size"`
	// Workers bounds the goroutines used; 1 runs sequentially, <= 0 uses GOMAXPROCS.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// DefaultSieveParams returns the parameters of the reference experiment on N = 21.
func DefaultSieveParams() SieveParams {
	return SieveParams{Bound: 7, Size: 30, Workers: 1}
}

// SieveFactor collects smooth relations for n and searches them for a congruence of
// squares. ErrNoCongruence is returned (wrapped) when the window yields no nontrivial
// split, including the case where no relations were found at all.
func SieveFactor(ctx context.Context, n *big.Int, params SieveParams) (*Split, error) {
	start := params.Start
	if start == nil {
		start = DefaultWindowStart(n)
	}

	var (
		relations []Relation
		split     *Split
		err       error
	)
	if params.Workers == 1 {
		relations, err = CollectRelations(n, params.Bound, start, params.Size)
	} else {
		relations, err = CollectRelationsConcurrent(ctx, n, params.Bound, start, params.Size, params.Workers)
	}
	if err != nil {
		return nil, err
	}
	if len(relations) < 2 {
		Logger.WithFields(logrus.Fields{"n": n, "relations": len(relations)}).
			Debug("too few smooth relations, widen the window or raise the bound")
		return nil, errors.WrapPrefix(ErrNoCongruence,
			fmt.Sprintf("n = %s, only %d smooth relations in window of %d from %s", n, len(relations), params.Size, start), 0)
	}

	if params.Workers == 1 {
		split, err = FindFactor(n, relations)
	} else {
		split, err = FindFactorConcurrent(ctx, n, relations, params.Workers)
	}
	if err != nil {
		return nil, err
	}
	return split, nil
}
