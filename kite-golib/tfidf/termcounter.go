package tfidf

import (
	"fmt"
	"math"
)

// IDFCounter keeps the inverse-doc-frequency weight of each term.
type IDFCounter struct {
	NumDocs int
	Scores  map[uint64]float64
}

// TrainIDFCounter computes log10(numDocs/df) for every term given its document frequency.
func TrainIDFCounter(numDocs int, docFreq map[uint64]int) *IDFCounter {
	c := &IDFCounter{
		NumDocs: numDocs,
		Scores:  make(map[uint64]float64, len(docFreq)),
	}
	for t, df := range docFreq {
		if df <= 0 || numDocs <= 0 {
			continue
		}
		c.Scores[t] = math.Log10(float64(numDocs) / float64(df))
	}
	return c
}

// Weight returns the idf weight of a term, 0 for unseen terms.
func (c *IDFCounter) Weight(t uint64) float64 {
	return c.Scores[t]
}

// TFCounter keeps the term frequencies of a single document.
type TFCounter struct {
	// Short indicates raw counts are returned instead of counts relative to the doc length
	Short  bool
	Total  int
	Scores map[uint64]int
}

// TrainTFCounter builds a TFCounter from the term counts of a document.
func TrainTFCounter(short bool, counts map[uint64]int) *TFCounter {
	c := &TFCounter{
		Short:  short,
		Scores: counts,
	}
	for _, n := range counts {
		c.Total += n
	}
	return c
}

// Weight returns the tf weight of a term.
func (c *TFCounter) Weight(t uint64) float64 {
	n := c.Scores[t]
	if c.Short || c.Total == 0 {
		return float64(n)
	}
	return float64(n) / float64(c.Total)
}

// Weighting selects how a term of a document is scored.
type Weighting int

const (
	// TF scores a term by its raw count in the document
	TF Weighting = iota
	// IDF scores a present term by its inverse document frequency
	IDF
	// TFIDF scores a term by the product of both
	TFIDF
)

// ParseWeighting parses "tf", "idf" or "tfidf".
func ParseWeighting(s string) (Weighting, error) {
	switch s {
	case "tf", "":
		return TF, nil
	case "idf":
		return IDF, nil
	case "tfidf", "tf-idf":
		return TFIDF, nil
	}
	return TF, fmt.Errorf("unknown weighting %q", s)
}

func (w Weighting) String() string {
	switch w {
	case TF:
		return "tf"
	case IDF:
		return "idf"
	case TFIDF:
		return "tfidf"
	}
	return fmt.Sprintf("Weighting(%d)", int(w))
}

// NeedsIDF reports whether the weighting uses document frequencies.
func (w Weighting) NeedsIDF() bool {
	return w == IDF || w == TFIDF
}

// Score computes the weight of term t in the document described by tf.
func (w Weighting) Score(t uint64, tf *TFCounter, idf *IDFCounter) float64 {
	switch w {
	case IDF:
		if tf.Scores[t] == 0 {
			return 0
		}
		return idf.Weight(t)
	case TFIDF:
		return tf.Weight(t) * idf.Weight(t)
	default:
		return tf.Weight(t)
	}
}
