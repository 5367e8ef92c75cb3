package period

import (
	"fmt"

	"github.com/go-errors/errors"

	"github.com/qfactor/qfactor/big"
)

var (
	// ErrOddPeriod means the candidate period is odd, so a^(r/2) is undefined.
	ErrOddPeriod = errors.New("period is odd")
	// ErrVerificationFailed means a^r != 1 (mod N) for the candidate period r.
	ErrVerificationFailed = errors.New("period verification failed")
	// ErrTrivialRoot means a^(r/2) = -1 (mod N), which yields only trivial factors.
	ErrTrivialRoot = errors.New("trivial square root of 1")
	// ErrTrivialFactors means neither gcd(x-1, N) nor gcd(x+1, N) is a proper divisor.
	ErrTrivialFactors = errors.New("trivial factors")
	// ErrBasesExhausted is returned by Finder when no base produced a split.
	ErrBasesExhausted = errors.New("all bases exhausted")
)

// IsRetryable reports whether err is an expected outcome of a single period-finding
// attempt, after which the caller should continue with another sample or base.
func IsRetryable(err error) bool {
	for _, e := range []error{ErrZeroPhase, ErrOddPeriod, ErrVerificationFailed, ErrTrivialRoot, ErrTrivialFactors} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Verdict is the result of checking a candidate period.
type Verdict int

const (
	Valid Verdict = iota
	OddPeriod
	VerificationFailed
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case OddPeriod:
		return "odd period"
	case VerificationFailed:
		return "verification failed"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// err converts a failing verdict to the corresponding retryable error.
func (v Verdict) err() error {
	switch v {
	case OddPeriod:
		return ErrOddPeriod
	case VerificationFailed:
		return ErrVerificationFailed
	}
	return nil
}

// Factors is a nontrivial split of N found through base A.
type Factors struct {
	Base     *big.Int `json:"base"`
	Period   *big.Int `json:"period,omitempty"`
	Factor   *big.Int `json:"factor"`
	Cofactor *big.Int `json:"cofactor"`
	// Lucky is set when gcd(Base, N) already split N and no period was needed.
	Lucky bool `json:"lucky,omitempty"`
}

// Validate checks a candidate period r for base a modulo n: an odd r gives OddPeriod,
// an even r with a^r != 1 (mod n) gives VerificationFailed.
func Validate(r, a, n *big.Int) (Verdict, error) {
	b, err := newBase(a, n, false)
	if err != nil {
		return VerificationFailed, err
	}
	return b.Validate(r)
}

// SplitPeriod validates r and uses x = a^(r/2) mod n to split n, trying gcd(x-1, n)
// before gcd(x+1, n). All failures are retryable except invalid arguments.
func SplitPeriod(r, a, n *big.Int) (*Factors, error) {
	b, err := newBase(a, n, false)
	if err != nil {
		return nil, err
	}
	return b.Split(r)
}
