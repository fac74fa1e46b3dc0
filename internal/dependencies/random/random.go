// Package random abstracts randomness so ID generation is deterministic in
// tests.
package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides random values for ID generation and seat assignment
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

type cryptoSource struct{}

// New returns a Random backed by crypto/rand
func New() Random {
	return cryptoSource{}
}

func (r cryptoSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

func (r cryptoSource) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}
