// Package keygen derives small RSA keypairs deterministically from an integer seed.
//
// The primes are picked from two three-digit windows of the seed, so the keys are
// toys: they exist to produce moduli that the factorizers in this module can break.
package keygen

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/numtheory"
)

const (
	DefaultExponent    = 17
	DefaultMaxAttempts = 100
)

// ErrExhausted is returned by Derive when no attempt produced primes p, q with
// gcd(e, (p-1)(q-1)) = 1. Another seed, exponent or attempt budget may succeed.
var ErrExhausted = errors.New("no suitable prime pair within attempt budget")

var (
	bigONE      = big.NewInt(1)
	bigTHOUSAND = big.NewInt(1000)
)

// Params configures Derive. Zero fields take their defaults.
type Params struct {
	Exponent    int64 `json:"exponent,omitempty" yaml:"exponent,omitempty"`
	MaxAttempts int   `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
}

func (p *Params) withDefaults() Params {
	var params Params
	if p != nil {
		params = *p
	}
	if params.Exponent == 0 {
		params.Exponent = DefaultExponent
	}
	if params.MaxAttempts == 0 {
		params.MaxAttempts = DefaultMaxAttempts
	}
	return params
}

// Derive computes the keypair for seed. Attempt i takes p as the first prime from
// seed mod 1000 + i and q as the first prime from (seed div 1000) mod 1000 + i,
// moving q to the next prime when it collides with p. The first attempt for which the
// public exponent is invertible modulo phi wins.
func Derive(seed *big.Int, params *Params) (*Keypair, error) {
	p := params.withDefaults()
	if seed == nil || seed.Sign() < 0 {
		return nil, numtheory.Invalid("seed %v must be non-negative", seed)
	}
	if p.Exponent < 2 {
		return nil, numtheory.Invalid("public exponent %d must be at least 2", p.Exponent)
	}
	if p.MaxAttempts < 1 {
		return nil, numtheory.Invalid("attempt budget %d must be positive", p.MaxAttempts)
	}

	e := big.NewInt(p.Exponent)
	low := new(big.Int).Mod(seed, bigTHOUSAND)
	high := new(big.Int).Quo(seed, bigTHOUSAND)
	high.Mod(high, bigTHOUSAND)

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		offset := big.NewInt(int64(attempt))
		pp := numtheory.NextPrime(new(big.Int).Add(low, offset))
		qq := numtheory.NextPrime(new(big.Int).Add(high, offset))
		if pp.Cmp(qq) == 0 {
			qq = numtheory.NextPrime(new(big.Int).Add(qq, bigONE))
		}

		phi := new(big.Int).Mul(new(big.Int).Sub(pp, bigONE), new(big.Int).Sub(qq, bigONE))
		d, err := numtheory.ModInverse(e, phi)
		if errors.Is(err, numtheory.ErrNoModInverse) {
			Logger.WithFields(logrus.Fields{"attempt": attempt, "p": pp, "q": qq}).
				Trace("exponent not invertible modulo phi")
			continue
		}
		if err != nil {
			return nil, err
		}

		Logger.WithFields(logrus.Fields{"attempt": attempt, "p": pp, "q": qq}).Debug("derived keypair")
		return &Keypair{
			P:       pp,
			Q:       qq,
			N:       new(big.Int).Mul(pp, qq),
			Phi:     phi,
			E:       e,
			D:       d,
			Attempt: attempt,
		}, nil
	}

	return nil, errors.WrapPrefix(ErrExhausted,
		fmt.Sprintf("e = %d, %d attempts", p.Exponent, p.MaxAttempts), 0)
}
