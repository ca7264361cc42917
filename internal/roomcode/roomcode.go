// Package roomcode generates room join codes.
package roomcode

import (
	"math/rand/v2"
	"strings"
)

// Length is the number of characters in a room code.
const Length = 6

// alphabet is A-Z plus 0-9: 36^6 (~2.2e9) possible codes.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces random room codes. Codes are probabilistically unique;
// actual uniqueness is enforced by the storage layer's unique constraint,
// with the caller regenerating on conflict.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator backed by the shared global random source.
func New() *Generator {
	return &Generator{}
}

// NewWithSource returns a generator with its own source, for deterministic tests.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate returns a fresh 6-character code.
func (g *Generator) Generate() string {
	var sb strings.Builder
	sb.Grow(Length)
	for i := 0; i < Length; i++ {
		sb.WriteByte(alphabet[g.intN(len(alphabet))])
	}
	return sb.String()
}

func (g *Generator) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Valid reports whether s has the shape of a room code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(alphabet, rune(s[i])) {
			return false
		}
	}
	return true
}
