package roomcode

import (
	"math/rand/v2"
	"testing"
)

func TestGenerate(t *testing.T) {
	g := New()
	for i := 0; i < 100; i++ {
		code := g.Generate()
		if len(code) != Length {
			t.Fatalf("code %q has length %d, want %d", code, len(code), Length)
		}
		if !Valid(code) {
			t.Fatalf("generated code %q fails Valid()", code)
		}
	}
}

// TestGenerateCollisionRate is a statistical sanity check: 1000 codes drawn
// from a 36^6 space should essentially never collide.
func TestGenerateCollisionRate(t *testing.T) {
	g := NewWithSource(rand.NewPCG(1, 2))
	seen := make(map[string]bool, 1000)
	collisions := 0
	for i := 0; i < 1000; i++ {
		code := g.Generate()
		if seen[code] {
			collisions++
		}
		seen[code] = true
	}
	if collisions > 1 {
		t.Errorf("got %d collisions in 1000 generations, expected at most 1", collisions)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ABC123", true},
		{"ZZZZZZ", true},
		{"000000", true},
		{"abc123", false},
		{"ABC12", false},
		{"ABC1234", false},
		{"ABC-12", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.code); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
