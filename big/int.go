// Package big contains a mostly API-compatible "math/big".Int that marshals to and from
// base 10 text (JSON, YAML, flags) and to CBOR byte strings.
package big

import (
	"encoding/json"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/go-errors/errors"

	"github.com/qfactor/qfactor/cbor"
)

// Int is an API-compatible "math/big".Int with base 10 text encoding.
type Int big.Int

// MarshalText implements encoding.TextMarshaler, returning i in base 10.
func (i *Int) MarshalText() ([]byte, error) {
	return i.Go().Append(nil, 10), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, parsing b as a base 10 integer.
func (i *Int) UnmarshalText(b []byte) error {
	if _, ok := i.Go().SetString(string(b), 10); !ok {
		return errors.Errorf("%q is not an integer", b)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Both JSON numbers and quoted strings are
// accepted, since large integers do not survive most JSON number parsers.
func (i *Int) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return i.UnmarshalText([]byte(s))
	}
	return i.UnmarshalText(b)
}

// MarshalCBOR encodes i as a CBOR byte string holding its big-endian magnitude.
// Only non-negative integers are supported.
func (i *Int) MarshalCBOR() ([]byte, error) {
	if i.Sign() == -1 {
		return nil, errors.New("marshaling negative integers to CBOR is not supported")
	}
	return cbor.Marshal(i.Bytes())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (i *Int) UnmarshalCBOR(data []byte) error {
	var bts []byte
	if err := cbor.Unmarshal(data, &bts); err != nil {
		return err
	}
	i.SetBytes(bts)
	return nil
}

// Convert from a "math/big".Int
func Convert(x *big.Int) *Int {
	return (*Int)(x)
}

// Go converts to a "math/big".Int
func (i *Int) Go() *big.Int {
	return (*big.Int)(i)
}

// "math/big".Int API, restricted to what the factorizers use.

func NewInt(x int64) *Int   { return Convert(big.NewInt(x)) }
func NewUint(x uint64) *Int { return Convert(new(big.Int).SetUint64(x)) }

// MustParse parses a base 10 integer and panics on malformed input. Intended for
// constants and tests.
func MustParse(s string) *Int {
	i, ok := new(Int).SetString(s, 10)
	if !ok {
		panic(fmt.Sprintf("big: malformed integer %q", s))
	}
	return i
}

func (i *Int) Format(s fmt.State, ch rune)  { i.Go().Format(s, ch) }
func (i *Int) Bit(j int) uint               { return i.Go().Bit(j) }
func (i *Int) Bytes() []byte                { return i.Go().Bytes() }
func (i *Int) BitLen() int                  { return i.Go().BitLen() }
func (i *Int) Int64() int64                 { return i.Go().Int64() }
func (i *Int) Uint64() uint64               { return i.Go().Uint64() }
func (i *Int) IsInt64() bool                { return i.Go().IsInt64() }
func (i *Int) IsUint64() bool               { return i.Go().IsUint64() }
func (i *Int) Sign() int                    { return i.Go().Sign() }
func (i *Int) Cmp(y *Int) int               { return i.Go().Cmp(y.Go()) }
func (i *Int) CmpAbs(y *Int) int            { return i.Go().CmpAbs(y.Go()) }
func (i *Int) ProbablyPrime(n int) bool     { return i.Go().ProbablyPrime(n) }
func (i *Int) String() string               { return i.Go().String() }
func (i *Int) Text(base int) string         { return i.Go().Text(base) }
func (i *Int) SetInt64(x int64) *Int        { return Convert(i.Go().SetInt64(x)) }
func (i *Int) SetUint64(x uint64) *Int      { return Convert(i.Go().SetUint64(x)) }
func (i *Int) Set(x *Int) *Int              { return Convert(i.Go().Set(x.Go())) }
func (i *Int) Abs(x *Int) *Int              { return Convert(i.Go().Abs(x.Go())) }
func (i *Int) Neg(x *Int) *Int              { return Convert(i.Go().Neg(x.Go())) }
func (i *Int) Add(x, y *Int) *Int           { return Convert(i.Go().Add(x.Go(), y.Go())) }
func (i *Int) Sub(x, y *Int) *Int           { return Convert(i.Go().Sub(x.Go(), y.Go())) }
func (i *Int) Mul(x, y *Int) *Int           { return Convert(i.Go().Mul(x.Go(), y.Go())) }
func (i *Int) Quo(x, y *Int) *Int           { return Convert(i.Go().Quo(x.Go(), y.Go())) }
func (i *Int) Rem(x, y *Int) *Int           { return Convert(i.Go().Rem(x.Go(), y.Go())) }
func (i *Int) Div(x, y *Int) *Int           { return Convert(i.Go().Div(x.Go(), y.Go())) }
func (i *Int) Mod(x, y *Int) *Int           { return Convert(i.Go().Mod(x.Go(), y.Go())) }
func (i *Int) SetBytes(buf []byte) *Int     { return Convert(i.Go().SetBytes(buf)) }
func (i *Int) Lsh(x *Int, n uint) *Int      { return Convert(i.Go().Lsh(x.Go(), n)) }
func (i *Int) Rsh(x *Int, n uint) *Int      { return Convert(i.Go().Rsh(x.Go(), n)) }
func (i *Int) Sqrt(x *Int) *Int             { return Convert(i.Go().Sqrt(x.Go())) }
func (i *Int) Exp(x, y, m *Int) *Int        { return Convert(i.Go().Exp(x.Go(), y.Go(), m.Go())) }
func (i *Int) ModInverse(g, n *Int) *Int    { return Convert(i.Go().ModInverse(g.Go(), n.Go())) }
func (i *Int) GCD(x, y, a, b *Int) *Int     { return Convert(i.Go().GCD(x.Go(), y.Go(), a.Go(), b.Go())) }
func (i *Int) Rand(rnd *rand.Rand, n *Int) *Int {
	return Convert(i.Go().Rand(rnd, n.Go()))
}
func (i *Int) SetString(s string, base int) (*Int, bool) {
	z, ok := i.Go().SetString(s, base)
	return Convert(z), ok
}
func (i *Int) QuoRem(x, y, r *Int) (*Int, *Int) {
	z, w := i.Go().QuoRem(x.Go(), y.Go(), r.Go())
	return Convert(z), Convert(w)
}
