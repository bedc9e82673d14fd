package locality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDisplayName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected DisplayTokens
	}{
		{"typical", "Bandra, Mumbai, Maharashtra, India", DisplayTokens{"Bandra", "Mumbai", "Maharashtra", "India"}},
		{"no spaces", "A,B,C", DisplayTokens{"A", "B", "C"}},
		{"empty position kept", "A, , C", DisplayTokens{"A", "", "C"}},
		{"blank", "   ", nil},
		{"single", "India", DisplayTokens{"India"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SplitDisplayName(tc.input))
		})
	}
}

func TestDisplayTokens_Index(t *testing.T) {
	tokens := SplitDisplayName("Bandra, Mumbai, Maharashtra, India")

	assert.Equal(t, 0, tokens.Index("Bandra"))
	assert.Equal(t, 1, tokens.Index("Mumbai"))
	assert.Equal(t, -1, tokens.Index("mumbai"))
	assert.Equal(t, -1, tokens.Index("Pune"))
	assert.Equal(t, -1, DisplayTokens(nil).Index("Pune"))
}
