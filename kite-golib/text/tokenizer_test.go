package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeWords(t *testing.T) {
	tokens := TokenizeWords("  Senior  Data\tEngineer\nRemote ")
	require.Len(t, tokens, 4)
	assert.Equal(t, Tokens{"Senior", "Data", "Engineer", "Remote"}, tokens)

	assert.Empty(t, TokenizeWords(""))
	assert.Empty(t, TokenizeWords("   "))
}

func TestProcessor(t *testing.T) {
	p := NewProcessor(Lower, RemoveStopWords, Stem)
	assert.Equal(t, 3, p.Len())

	tokens := p.Apply(Tokens{"The", "Engineers", "and", "engineering", "Engineers"})
	assert.Equal(t, Tokens{"engin", "engin", "engin"}, tokens)
}

func TestCleanTokens(t *testing.T) {
	tokens := CleanTokens(Tokens{"(remote)", "...", "c++", "$100k!"})
	assert.Equal(t, Tokens{"remote", "c", "100k"}, tokens)
}
