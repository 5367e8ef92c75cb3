// Package cbor wraps github.com/fxamacker/cbor with the encoding modes used for
// keypairs and factorization records.
//
// Encoding follows the Core Deterministic Encoding of RFC 8949, so equal values always
// produce equal bytes; this is what keypair fingerprints are computed over. Decoding
// rejects duplicate map keys and indefinite lengths.
package cbor

import (
	"github.com/fxamacker/cbor/v2"
)

const MaxArrayElements = 1024 * 64

var (
	encOptions = cbor.EncOptions{
		IndefLength:   cbor.IndefLengthForbidden,
		ShortestFloat: cbor.ShortestFloat16,
		Sort:          cbor.SortCoreDeterministic,
		TagsMd:        cbor.TagsForbidden,
	}

	decOptions = cbor.DecOptions{
		IndefLength:      cbor.IndefLengthForbidden,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxArrayElements,
		TagsMd:           cbor.TagsForbidden,
	}

	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = encOptions.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = decOptions.DecMode(); err != nil {
		panic(err)
	}
}

// Marshal encodes src deterministically.
func Marshal(src interface{}) ([]byte, error) {
	return encMode.Marshal(src)
}

// Unmarshal decodes data into dst.
func Unmarshal(data []byte, dst interface{}) error {
	return decMode.Unmarshal(data, dst)
}
