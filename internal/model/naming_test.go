package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffixDuplicateNames(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty", nil, []string{}},
		{"unique", []string{"Bat", "Slime"}, []string{"Bat", "Slime"}},
		{"duplicates first", []string{"A", "A", "B"}, []string{"A (A)", "A (B)", "B"}},
		{"interleaved", []string{"Slime", "Bat", "Slime", "Bat", "Slime"},
			[]string{"Slime (A)", "Bat (A)", "Slime (B)", "Bat (B)", "Slime (C)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuffixDuplicateNames(tt.input))
		})
	}
}

func TestSuffixDuplicateNames_PastZ(t *testing.T) {
	names := make([]string, 28)
	for i := range names {
		names[i] = "Rat"
	}
	got := SuffixDuplicateNames(names)
	assert.Equal(t, "Rat (Z)", got[25])
	assert.Equal(t, "Rat (27)", got[26])
	assert.Equal(t, "Rat (28)", got[27])
}
