package keygen

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/cbor"
	"github.com/qfactor/qfactor/numtheory"
)

// Keypair is a textbook RSA keypair together with the primes it was built from.
type Keypair struct {
	P   *big.Int `json:"p" cbor:"p"`
	Q   *big.Int `json:"q" cbor:"q"`
	N   *big.Int `json:"n" cbor:"n"`
	Phi *big.Int `json:"phi" cbor:"phi"`
	E   *big.Int `json:"e" cbor:"e"`
	D   *big.Int `json:"d" cbor:"d"`

	// Attempt is the zero-based attempt of Derive that produced the keypair.
	Attempt int `json:"attempt" cbor:"attempt"`
}

type publicKey struct {
	N *big.Int `cbor:"n"`
	E *big.Int `cbor:"e"`
}

// Validate checks that p and q are distinct primes, that n and phi match them, and
// that d inverts e modulo phi.
func (k *Keypair) Validate() error {
	for _, v := range []*big.Int{k.P, k.Q, k.N, k.Phi, k.E, k.D} {
		if v == nil {
			return errors.New("incomplete keypair")
		}
	}
	if !numtheory.IsPrime(k.P) || !numtheory.IsPrime(k.Q) {
		return errors.Errorf("p = %s and q = %s must be prime", k.P, k.Q)
	}
	if k.P.Cmp(k.Q) == 0 {
		return errors.Errorf("p and q are both %s", k.P)
	}
	if new(big.Int).Mul(k.P, k.Q).Cmp(k.N) != 0 {
		return errors.Errorf("n = %s is not p*q", k.N)
	}
	phi := new(big.Int).Mul(new(big.Int).Sub(k.P, bigONE), new(big.Int).Sub(k.Q, bigONE))
	if phi.Cmp(k.Phi) != 0 {
		return errors.Errorf("phi = %s is not (p-1)(q-1)", k.Phi)
	}
	if numtheory.GCD(k.E, k.Phi).Cmp(bigONE) != 0 {
		return errors.Errorf("e = %s is not coprime to phi", k.E)
	}
	ed := new(big.Int).Mul(k.E, k.D)
	if ed.Mod(ed, k.Phi).Cmp(bigONE) != 0 {
		return errors.Errorf("d = %s does not invert e modulo phi", k.D)
	}
	return nil
}

// Encrypt returns msg^e mod n for 0 <= msg < n.
func (k *Keypair) Encrypt(msg *big.Int) (*big.Int, error) {
	if err := k.checkMessage(msg); err != nil {
		return nil, err
	}
	return numtheory.ModPow(msg, k.E, k.N)
}

// Decrypt returns c^d mod n for 0 <= c < n.
func (k *Keypair) Decrypt(c *big.Int) (*big.Int, error) {
	if err := k.checkMessage(c); err != nil {
		return nil, err
	}
	return numtheory.ModPow(c, k.D, k.N)
}

func (k *Keypair) checkMessage(m *big.Int) error {
	if m == nil || m.Sign() < 0 || m.Cmp(k.N) >= 0 {
		return numtheory.Invalid("message %v must lie in [0, %s)", m, k.N)
	}
	return nil
}

// MarshalBinary encodes the keypair as deterministic CBOR.
func (k *Keypair) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(k)
}

// UnmarshalKeypair decodes and validates a keypair produced by MarshalBinary.
func UnmarshalKeypair(data []byte) (*Keypair, error) {
	k := new(Keypair)
	if err := cbor.Unmarshal(data, k); err != nil {
		return nil, errors.WrapPrefix(err, "decoding keypair", 0)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// Fingerprint identifies the public key (n, e): the base58 SHA2-256 multihash of its
// CBOR encoding.
func (k *Keypair) Fingerprint() (string, error) {
	bts, err := cbor.Marshal(publicKey{N: k.N, E: k.E})
	if err != nil {
		return "", err
	}
	mh, err := multihash.Sum(bts, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return mh.B58String(), nil
}

func (k *Keypair) String() string {
	return fmt.Sprintf("n = %s, e = %s (p = %s, q = %s)", k.N, k.E, k.P, k.Q)
}
