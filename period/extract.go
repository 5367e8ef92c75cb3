package period

import (
	"fmt"

	"github.com/go-errors/errors"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/numtheory"
)

var bigONE = big.NewInt(1)

// ErrZeroPhase is returned by Extract for a zero sample, which carries no information
// about the period.
var ErrZeroPhase = errors.New("zero phase sample")

// Sample is a measured register value together with the register width in bits, so
// that it encodes the phase Value / 2^Bits.
type Sample struct {
	Value *big.Int `json:"value" yaml:"value"`
	Bits  uint     `json:"bits" yaml:"bits"`
}

// NewSample is a convenience constructor for small samples.
func NewSample(value int64, bits uint) Sample {
	return Sample{Value: big.NewInt(value), Bits: bits}
}

func (s Sample) String() string {
	return fmt.Sprintf("%s/2^%d", s.Value, s.Bits)
}

// Fraction is a convergent Num/Den.
type Fraction struct {
	Num *big.Int
	Den *big.Int
}

// RecommendedBits returns 2*ceil(log2(n)), the width of the counting register in the
// usual period-finding circuit for n.
func RecommendedBits(n *big.Int) uint {
	return 2 * uint(new(big.Int).Sub(n, bigONE).BitLen())
}

// Convergents returns the convergents of the continued fraction expansion of num/den
// (num >= 0, den > 0), in order, up to and excluding the first whose denominator
// exceeds limit.
func Convergents(num, den, limit *big.Int) []Fraction {
	var (
		fractions []Fraction
		a         = new(big.Int).Set(num)
		b         = new(big.Int).Set(den)
		q         = new(big.Int)
		r         = new(big.Int)
		// h_{i-1}, h_{i-2} and k_{i-1}, k_{i-2}
		h1, h2 = big.NewInt(1), big.NewInt(0)
		k1, k2 = big.NewInt(0), big.NewInt(1)
	)
	for b.Sign() != 0 {
		q.QuoRem(a, b, r)
		h := new(big.Int).Mul(q, h1)
		h.Add(h, h2)
		k := new(big.Int).Mul(q, k1)
		k.Add(k, k2)
		if k.Cmp(limit) > 0 {
			break
		}
		fractions = append(fractions, Fraction{Num: h, Den: k})
		h2, h1 = h1, h
		k2, k1 = k1, k
		a.Set(b)
		b.Set(r)
	}
	return fractions
}

// Extract returns the period candidate encoded by s for modulus n: the denominator of
// the last convergent of s.Value/2^s.Bits whose denominator does not exceed n.
// ErrZeroPhase is returned for a zero sample.
func Extract(s Sample, n *big.Int) (*big.Int, error) {
	if err := numtheory.ValidateModulus(n); err != nil {
		return nil, err
	}
	if s.Value == nil || s.Value.Sign() < 0 {
		return nil, numtheory.Invalid("phase sample %v must be non-negative", s.Value)
	}
	den := new(big.Int).Lsh(bigONE, s.Bits)
	if s.Value.Cmp(den) >= 0 {
		return nil, numtheory.Invalid("phase sample %s does not fit in %d bits", s.Value, s.Bits)
	}
	if s.Value.Sign() == 0 {
		return nil, ErrZeroPhase
	}

	// The first convergent always has denominator 1 <= n.
	fractions := Convergents(s.Value, den, n)
	return new(big.Int).Set(fractions[len(fractions)-1].Den), nil
}
