package qfactor

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/numtheory"
)

// Relation is a pair (X, X^2 mod N) whose residue is smooth over the sieve's bound.
type Relation struct {
	X       *big.Int `json:"x"`
	Residue *big.Int `json:"residue"`
}

// minChunk is the smallest window slice handed to a single worker.
const minChunk = 256

// DefaultWindowStart returns floor(sqrt(n)) + 1, the first x whose square exceeds n.
func DefaultWindowStart(n *big.Int) *big.Int {
	return new(big.Int).Add(numtheory.Isqrt(n), bigONE)
}

// CollectRelations evaluates x^2 mod n for the size consecutive integers starting at
// start and keeps the pairs whose residue is bound-smooth, in ascending x. An empty
// result is not an error; it means the window or the bound is too small.
func CollectRelations(n *big.Int, bound uint64, start *big.Int, size int) ([]Relation, error) {
	if err := validateWindow(n, bound, start, size); err != nil {
		return nil, err
	}
	relations := collectChunk(n, bound, start, 0, size)
	Logger.WithFields(logrus.Fields{
		"n": n, "bound": bound, "start": start, "size": size, "relations": len(relations),
	}).Debug("collected smooth relations")
	return relations, nil
}

// CollectRelationsConcurrent is CollectRelations with the window split into contiguous
// chunks that are evaluated by at most workers goroutines (GOMAXPROCS if workers <= 0).
// Chunks are concatenated in window order, so the result equals CollectRelations.
func CollectRelationsConcurrent(ctx context.Context, n *big.Int, bound uint64, start *big.Int, size, workers int) ([]Relation, error) {
	if err := validateWindow(n, bound, start, size); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	chunk := (size + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}
	count := 0
	if size > 0 {
		count = (size + chunk - 1) / chunk
	}
	parts := make([][]Relation, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			from := i * chunk
			to := from + chunk
			if to > size {
				to = size
			}
			parts[i] = collectChunk(n, bound, start, from, to)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var relations []Relation
	for _, part := range parts {
		relations = append(relations, part...)
	}
	Logger.WithFields(logrus.Fields{
		"n": n, "bound": bound, "start": start, "size": size, "workers": workers, "relations": len(relations),
	}).Debug("collected smooth relations concurrently")
	return relations, nil
}

// collectChunk sieves start+from .. start+to-1.
func collectChunk(n *big.Int, bound uint64, start *big.Int, from, to int) []Relation {
	var relations []Relation
	x := new(big.Int).Add(start, big.NewInt(int64(from)))
	for k := from; k < to; k++ {
		residue := new(big.Int).Mul(x, x)
		residue.Mod(residue, n)
		if numtheory.IsBSmooth(residue, bound) {
			relations = append(relations, Relation{X: new(big.Int).Set(x), Residue: residue})
		}
		x.Add(x, bigONE)
	}
	return relations
}

func validateWindow(n *big.Int, bound uint64, start *big.Int, size int) error {
	if err := numtheory.ValidateModulus(n); err != nil {
		return err
	}
	if err := numtheory.ValidateBound(bound); err != nil {
		return err
	}
	if start == nil || start.Sign() < 0 {
		return numtheory.Invalid("window start %v must be non-negative", start)
	}
	if size < 0 {
		return numtheory.Invalid("window size %d must be non-negative", size)
	}
	return nil
}
