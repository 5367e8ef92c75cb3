package keygen

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/qfactor/qfactor/big"
)

// SeedFromFeatures hashes a feature vector, such as the block means of a fingerprint
// image, to a seed: the features are written in base 10 without separators and the
// SHA-256 digest of that string is read as a big-endian integer.
func SeedFromFeatures(features []int) *big.Int {
	var sb strings.Builder
	for _, f := range features {
		sb.WriteString(strconv.Itoa(f))
	}
	h := sha256.New()
	h.Write([]byte(sb.String()))
	return new(big.Int).SetBytes(h.Sum(nil))
}
