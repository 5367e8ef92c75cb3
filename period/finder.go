package period

import (
	"context"
	"fmt"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/numtheory"
)

// PhaseSource produces phase samples for base a modulo n, most frequently measured
// first. Implementations wrap whatever runs the period-finding circuit.
type PhaseSource interface {
	Samples(ctx context.Context, a, n *big.Int) ([]Sample, error)
}

// SourceFunc adapts a function to PhaseSource.
type SourceFunc func(ctx context.Context, a, n *big.Int) ([]Sample, error)

func (f SourceFunc) Samples(ctx context.Context, a, n *big.Int) ([]Sample, error) {
	return f(ctx, a, n)
}

// StaticSource serves previously recorded samples, keyed by the base in base 10.
// Bases without an entry have no samples.
type StaticSource map[string][]Sample

func (s StaticSource) Samples(_ context.Context, a, _ *big.Int) ([]Sample, error) {
	return s[a.String()], nil
}

// Finder factors N from phase samples, retrying over a list of bases.
type Finder struct {
	Source PhaseSource
}

// Factor walks bases in order. For each base it first checks gcd(a, n); otherwise it
// tries every sample the source produces until one yields a split. Retryable outcomes
// move on to the next sample or base; anything else, including cancellation of ctx,
// is returned immediately. ErrBasesExhausted is returned when the list runs out.
func (f *Finder) Factor(ctx context.Context, n *big.Int, bases []*big.Int) (*Factors, error) {
	if err := numtheory.ValidateModulus(n); err != nil {
		return nil, err
	}
	if len(bases) == 0 {
		return nil, numtheory.Invalid("no bases given")
	}
	if f.Source == nil {
		return nil, errors.New("period finder has no phase source")
	}

	attempts := 0
	for _, a := range bases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		base, err := NewBase(a, n)
		if err != nil {
			return nil, err
		}
		log := Logger.WithFields(logrus.Fields{"n": n, "base": a})

		if factors, ok := base.Lucky(); ok {
			log.WithField("factor", factors.Factor).Debug("base shares a factor with n")
			return factors, nil
		}

		samples, err := f.Source.Samples(ctx, a, n)
		if err != nil {
			return nil, errors.WrapPrefix(err, fmt.Sprintf("sampling phase for base %s", a), 0)
		}
		for _, s := range samples {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			attempts++
			factors, err := base.Attempt(s)
			if err == nil {
				return factors, nil
			}
			if !IsRetryable(err) {
				return nil, err
			}
			log.WithField("sample", s).Debug(err.Error())
		}
		log.WithField("samples", len(samples)).Debug("no split from base, trying the next one")
	}

	return nil, errors.WrapPrefix(ErrBasesExhausted,
		fmt.Sprintf("n = %s, %d bases, %d samples", n, len(bases), attempts), 0)
}
