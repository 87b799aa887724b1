package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	remote uint64 = iota + 1
	cash
	urgent
)

func TestIDFCounter(t *testing.T) {
	idfCounter := TrainIDFCounter(3, map[uint64]int{remote: 2, cash: 3})

	assert.Equal(t, math.Log10(3.0/2.0), idfCounter.Weight(remote))
	// a term present in every doc carries no weight
	assert.Equal(t, 0.0, idfCounter.Weight(cash))
	assert.Equal(t, 0.0, idfCounter.Weight(urgent))
}

func TestTFCounter(t *testing.T) {
	counts := map[uint64]int{remote: 1, cash: 3}

	tfCounter := TrainTFCounter(true, counts)
	assert.Equal(t, 1.0, tfCounter.Weight(remote))
	assert.Equal(t, 3.0, tfCounter.Weight(cash))

	tfCounter = TrainTFCounter(false, counts)
	assert.Equal(t, 0.25, tfCounter.Weight(remote))
	assert.Equal(t, 0.0, tfCounter.Weight(urgent))
}

func TestWeighting(t *testing.T) {
	tf := TrainTFCounter(true, map[uint64]int{remote: 2})
	idf := TrainIDFCounter(10, map[uint64]int{remote: 1, cash: 5})

	assert.Equal(t, 2.0, TF.Score(remote, tf, idf))
	assert.InDelta(t, 1.0, IDF.Score(remote, tf, idf), 1e-12)
	assert.Equal(t, 0.0, IDF.Score(cash, tf, idf))
	assert.InDelta(t, 2.0, TFIDF.Score(remote, tf, idf), 1e-12)

	assert.False(t, TF.NeedsIDF())
	assert.True(t, TFIDF.NeedsIDF())
}

func TestParseWeighting(t *testing.T) {
	for _, w := range []Weighting{TF, IDF, TFIDF} {
		parsed, err := ParseWeighting(w.String())
		require.NoError(t, err)
		assert.Equal(t, w, parsed)
	}
	_, err := ParseWeighting("bm25")
	assert.Error(t, err)
}
