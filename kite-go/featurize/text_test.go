package featurize

import (
	"testing"

	"github.com/kiteco/fraudfilter/kite-golib/tfidf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerms(t *testing.T) {
	opts := DefaultTextOptions()
	words, chars := opts.terms("  Café   MANAGER ")
	assert.Equal(t, []string{"cafe", "manager", "cafe|manager"}, words)
	assert.Equal(t, "\x02ca", chars[0])
	assert.Equal(t, "er\x03", chars[len(chars)-1])
	assert.Len(t, chars, len("cafe manager")+2-2)
}

func TestTermsOptions(t *testing.T) {
	opts := DefaultTextOptions()
	opts.Chars.MaxLength = 0
	opts.Words.MaxLength = 1
	opts.RemovePunctuations = true
	opts.RemoveNumbers = true
	opts.RemoveStopWords = true
	opts.Stem = true
	opts.StripHTML = true

	words, chars := opts.terms("<p>Earn $500 from the <b>comfort</b> of your home!</p>")
	assert.Nil(t, chars)
	assert.Equal(t, []string{"earn", "comfort", "home"}, words)
}

func TestTermsCleanTokens(t *testing.T) {
	opts := DefaultTextOptions()
	opts.Chars.MaxLength = 0
	opts.Words.MaxLength = 1

	words, _ := opts.terms("(Remote) C++ engineer!! ...")
	assert.Equal(t, []string{"(remote)", "c++", "engineer!!", "..."}, words)

	opts.CleanTokens = true
	words, _ = opts.terms("(Remote) C++ engineer!! ...")
	assert.Equal(t, []string{"remote", "c", "engineer"}, words)
}

func TestFitTextVocabulary(t *testing.T) {
	opts := DefaultTextOptions()
	opts.Chars.MaxLength = 0
	opts.Words.MaxLength = 1

	m := FitText(opts, []string{"data entry", "data analyst", "nurse"})
	assert.Equal(t, 4, m.Dim())
	assert.True(t, m.Words.Contains("data"))
	assert.False(t, m.Words.Contains("plumber"))
	assert.Equal(t, 0, m.Chars.Len())

	opts.Words.MinCount = 2
	m = FitText(opts, []string{"data entry", "data analyst", "nurse"})
	assert.Equal(t, 1, m.Dim())
	assert.True(t, m.Words.Contains("data"))

	opts.Words.MinCount = 1
	opts.Words.MaxTerms = 2
	m = FitText(opts, []string{"data entry", "data analyst", "analyst"})
	assert.Equal(t, 2, m.Dim())
	assert.True(t, m.Words.Contains("data"))
	assert.True(t, m.Words.Contains("analyst"))
}

func TestTextTransform(t *testing.T) {
	opts := DefaultTextOptions()
	opts.Chars.MaxLength = 0
	opts.Words.MaxLength = 1
	opts.Normalize = false

	m := FitText(opts, []string{"data entry data", "nurse"})
	v := m.Transform("DATA data plumber")
	assert.Equal(t, m.Dim(), v.Dim)
	require.Len(t, v.Values, 1)
	assert.Equal(t, 2.0, v.Values[0])
	assert.Equal(t, m.Words.Index[termKey("data")], v.Indices[0])

	empty := m.Transform("")
	assert.Equal(t, m.Dim(), empty.Dim)
	assert.Empty(t, empty.Indices)
}

func TestTextTransformNormalized(t *testing.T) {
	m := FitText(DefaultTextOptions(), []string{"remote data entry", "registered nurse"})
	v := m.Transform("remote nurse")
	assert.InDelta(t, 1, v.Norm(), 1e-9)
	assert.Equal(t, m.Words.Len()+m.Chars.Len(), v.Dim)
}

func TestTextWeighting(t *testing.T) {
	opts := DefaultTextOptions()
	opts.Chars.MaxLength = 0
	opts.Words.MaxLength = 1
	opts.Normalize = false
	opts.Words.Weighting = tfidf.TFIDF

	docs := []string{"data entry", "data analyst", "data nurse", "data nurse"}
	m := FitText(opts, docs)
	require.NotNil(t, m.Words.IDF)

	v := m.Transform("data data nurse")
	assert.Equal(t, 0.0, v.At(m.Words.Index[termKey("data")]), "a term in every doc carries no weight")
	assert.InDelta(t, 0.30103, v.At(m.Words.Index[termKey("nurse")]), 1e-5)

	opts.Words.Weighting = tfidf.IDF
	m = FitText(opts, docs)
	v = m.Transform("entry entry")
	assert.InDelta(t, 0.60206, v.At(m.Words.Index[termKey("entry")]), 1e-5)
}
