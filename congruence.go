package qfactor

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/numtheory"
)

// ErrNoCongruence is returned when no pair of relations yields a nontrivial split:
// either no residues collide or every collision is trivial. A larger window or
// smoothness bound may help.
var ErrNoCongruence = errors.New("no congruence of squares splits n")

// PairOutcome classifies a pair of relations.
type PairOutcome int

const (
	// PairMismatch means the residues differ.
	PairMismatch PairOutcome = iota
	// PairTrivial means x1^2 = x2^2 (mod N) but both gcds are 1 or N.
	PairTrivial
	// PairNontrivial means the pair splits N.
	PairNontrivial
)

func (o PairOutcome) String() string {
	switch o {
	case PairMismatch:
		return "mismatch"
	case PairTrivial:
		return "trivial"
	case PairNontrivial:
		return "nontrivial"
	}
	return fmt.Sprintf("PairOutcome(%d)", int(o))
}

// Split is a nontrivial factorization n = Factor * Cofactor found from the congruence
// X1^2 = X2^2 (mod n).
type Split struct {
	Factor   *big.Int `json:"factor"`
	Cofactor *big.Int `json:"cofactor"`
	X1       *big.Int `json:"x1"`
	X2       *big.Int `json:"x2"`
	// TrivialPairs counts the colliding pairs visited before this one that did not
	// split n.
	TrivialPairs int `json:"trivialPairs"`
}

// EvaluatePair compares the stored residues of r1 and r2 and, if they are equal, tries
// gcd(x1 - x2, n) and then gcd(x1 + x2, n).
func EvaluatePair(n *big.Int, r1, r2 Relation) (outcome PairOutcome, factor, cofactor *big.Int) {
	if r1.Residue.Cmp(r2.Residue) != 0 {
		return PairMismatch, nil, nil
	}
	diff := new(big.Int).Sub(r1.X, r2.X)
	sum := new(big.Int).Add(r1.X, r2.X)
	if f, c, ok := numtheory.SplitByGCD(diff, sum, n); ok {
		return PairNontrivial, f, c
	}
	return PairTrivial, nil, nil
}

// FindFactor scans all pairs i < j of relations, in ascending i and then ascending j,
// and returns the first nontrivial split. Trivial collisions do not stop the scan.
// ErrNoCongruence is returned when all pairs are exhausted.
func FindFactor(n *big.Int, relations []Relation) (*Split, error) {
	if err := numtheory.ValidateModulus(n); err != nil {
		return nil, err
	}
	index := indexResidues(relations)

	trivial := 0
	for i := range relations {
		split, t := scanRow(n, relations, index, i)
		trivial += t
		if split != nil {
			split.TrivialPairs = trivial
			logSplit(n, split)
			return split, nil
		}
	}
	return nil, noCongruence(n, len(relations), trivial)
}

// FindFactorConcurrent is FindFactor with the rows i of the pair scan distributed over
// at most workers goroutines (GOMAXPROCS if workers <= 0). The split of the smallest
// row that has one is returned, so the result equals FindFactor's. Rows past an
// already found row are skipped.
func FindFactorConcurrent(ctx context.Context, n *big.Int, relations []Relation, workers int) (*Split, error) {
	if err := numtheory.ValidateModulus(n); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	index := indexResidues(relations)

	var (
		best    = int64(len(relations))
		splits  = make([]*Split, len(relations))
		trivial = make([]int, len(relations))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range relations {
		i := i
		if int64(i) > atomic.LoadInt64(&best) {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if int64(i) > atomic.LoadInt64(&best) {
				return nil
			}
			splits[i], trivial[i] = scanRow(n, relations, index, i)
			if splits[i] != nil {
				for {
					cur := atomic.LoadInt64(&best)
					if int64(i) >= cur || atomic.CompareAndSwapInt64(&best, cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for i := range relations {
		total += trivial[i]
		if splits[i] != nil {
			splits[i].TrivialPairs = total
			logSplit(n, splits[i])
			return splits[i], nil
		}
	}
	return nil, noCongruence(n, len(relations), total)
}

// indexResidues maps each residue to the ascending positions holding it.
func indexResidues(relations []Relation) map[string][]int {
	index := make(map[string][]int)
	for i, r := range relations {
		key := r.Residue.String()
		index[key] = append(index[key], i)
	}
	return index
}

// scanRow visits the pairs (i, j), j > i ascending, with equal residues. It returns the
// first nontrivial split and the number of trivial pairs seen before it.
func scanRow(n *big.Int, relations []Relation, index map[string][]int, i int) (*Split, int) {
	trivial := 0
	for _, j := range index[relations[i].Residue.String()] {
		if j <= i {
			continue
		}
		outcome, f, c := EvaluatePair(n, relations[i], relations[j])
		switch outcome {
		case PairNontrivial:
			return &Split{Factor: f, Cofactor: c, X1: relations[i].X, X2: relations[j].X}, trivial
		case PairTrivial:
			trivial++
			Logger.WithFields(logrus.Fields{"x1": relations[i].X, "x2": relations[j].X}).
				Trace("trivial congruence")
		}
	}
	return nil, trivial
}

func logSplit(n *big.Int, split *Split) {
	Logger.WithFields(logrus.Fields{
		"n": n, "x1": split.X1, "x2": split.X2, "factor": split.Factor, "trivial": split.TrivialPairs,
	}).Debug("congruence of squares split n")
}

func noCongruence(n *big.Int, relations, trivial int) error {
	return errors.WrapPrefix(ErrNoCongruence,
		fmt.Sprintf("n = %s, %d relations, %d trivial collisions", n, relations, trivial), 1)
}
