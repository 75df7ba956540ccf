package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProviderKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "TEDAS", "tedas"},
		{"strips turkish diacritics", "Çağrı Merkezi", "cagri merkezi"},
		{"dotless i folds to i", "ISKI", "iski"},
		{"lowercase dotless i folds to i", "aski", "aski"},
		{"collapses whitespace", "  Türk   Telekom ", "turk telekom"},
		{"mixed diacritics", "İGDAŞ Doğalgaz", "igdas dogalgaz"},
		{"already normalized", "elektrik faturasi", "elektrik faturasi"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeProviderKey(tt.input))
		})
	}
}

func TestNormalizeProviderKeyIdempotent(t *testing.T) {
	inputs := []string{"Çağrı Merkezi", "İGDAŞ", "Türk Telekom Fiber", "su idaresi"}
	for _, in := range inputs {
		once := NormalizeProviderKey(in)
		assert.Equal(t, once, NormalizeProviderKey(once))
	}
}

func TestNormalizeProviderKeyEquivalence(t *testing.T) {
	// Variants a user might type for the same provider map to one key
	assert.Equal(t,
		NormalizeProviderKey("ÇAĞRI MERKEZİ"),
		NormalizeProviderKey("cagri merkezi"),
	)
	assert.Equal(t,
		NormalizeProviderKey("Türk  Telekom"),
		NormalizeProviderKey("turk telekom"),
	)
}
