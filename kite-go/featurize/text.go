package featurize

import (
	"sort"
	"strings"

	spooky "github.com/dgryski/go-spooky"
	"github.com/kiteco/fraudfilter/kite-golib/text"
	"github.com/kiteco/fraudfilter/kite-golib/tfidf"
)

// TextModel is a fitted FeaturizeText step: the word and char vocabularies learned
// from the train set. Its output has dimension Words.Len() + Chars.Len().
type TextModel struct {
	Options TextOptions
	Words   *Vocabulary
	Chars   *Vocabulary
}

// Vocabulary maps the hash of each kept term to its slot in the output vector.
type Vocabulary struct {
	Weighting tfidf.Weighting
	Index     map[uint64]int
	// IDF is only set for weightings that need document frequencies
	IDF *tfidf.IDFCounter
}

// FitText learns the vocabularies of docs.
func FitText(opts TextOptions, docs []string) *TextModel {
	words := make([][]string, len(docs))
	chars := make([][]string, len(docs))
	for i, d := range docs {
		words[i], chars[i] = opts.terms(d)
	}
	return &TextModel{
		Options: opts,
		Words:   fitVocabulary(opts.Words, words),
		Chars:   fitVocabulary(opts.Chars, chars),
	}
}

// Dim returns the dimension of the vectors produced by Transform.
func (m *TextModel) Dim() int {
	return m.Words.Len() + m.Chars.Len()
}

// Transform featurizes doc. Terms not seen during fitting are ignored.
func (m *TextModel) Transform(doc string) Vector {
	words, chars := m.Options.terms(doc)
	v := Concat(m.Words.vector(words), m.Chars.vector(chars))
	if m.Options.Normalize {
		v = v.Normalized()
	}
	return v
}

// normalize applies the character level options to doc.
func (o TextOptions) normalize(doc string) string {
	if o.StripHTML {
		doc = text.StripHTML(doc)
	}
	if o.RemoveDiacritics {
		doc = text.RemoveDiacritics(doc)
	}
	if o.Lower {
		doc = strings.ToLower(doc)
	}
	if o.RemovePunctuations {
		doc = text.RemovePunctuations(doc)
	}
	if o.RemoveNumbers {
		doc = text.RemoveDigits(doc)
	}
	return text.CollapseSpaces(doc)
}

func (o TextOptions) processor() *text.Processor {
	var funcs []text.TokenFunc
	if o.CleanTokens {
		funcs = append(funcs, text.CleanTokens)
	}
	if o.RemoveStopWords {
		funcs = append(funcs, text.Lower, text.RemoveStopWords)
	}
	if o.Stem {
		funcs = append(funcs, text.Stem)
	}
	return text.NewProcessor(funcs...)
}

// terms returns the word and char n-grams of doc.
func (o TextOptions) terms(doc string) (words, chars []string) {
	doc = o.normalize(doc)
	if o.Words.enabled() {
		toks := o.processor().Apply(text.TokenizeWords(doc))
		words = text.JoinedNGrams(o.Words.MinLength, o.Words.MaxLength, toks)
	}
	if o.Chars.enabled() {
		for n := o.Chars.MinLength; n <= o.Chars.MaxLength; n++ {
			chars = append(chars, text.CharNGrams(n, doc)...)
		}
	}
	return words, chars
}

func termKey(t string) uint64 {
	return spooky.Hash64([]byte(t))
}

type termCount struct {
	key   uint64
	count int
}

func fitVocabulary(opts NGramOptions, docs [][]string) *Vocabulary {
	v := &Vocabulary{
		Weighting: opts.Weighting,
		Index:     make(map[uint64]int),
	}
	if !opts.enabled() {
		return v
	}

	counts := make(map[uint64]int)
	docFreq := make(map[uint64]int)
	for _, terms := range docs {
		seen := make(map[uint64]bool)
		for _, t := range terms {
			k := termKey(t)
			counts[k]++
			if !seen[k] {
				seen[k] = true
				docFreq[k]++
			}
		}
	}

	minCount := opts.MinCount
	if minCount < 1 {
		minCount = 1
	}
	var kept []termCount
	for k, n := range counts {
		if n >= minCount {
			kept = append(kept, termCount{key: k, count: n})
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].count != kept[j].count {
			return kept[i].count > kept[j].count
		}
		return kept[i].key < kept[j].key
	})
	if opts.MaxTerms > 0 && len(kept) > opts.MaxTerms {
		kept = kept[:opts.MaxTerms]
	}

	// slots follow key order so the layout does not depend on term frequencies
	sort.Slice(kept, func(i, j int) bool { return kept[i].key < kept[j].key })
	keptDF := make(map[uint64]int, len(kept))
	for i, tc := range kept {
		v.Index[tc.key] = i
		keptDF[tc.key] = docFreq[tc.key]
	}

	if opts.Weighting.NeedsIDF() {
		v.IDF = tfidf.TrainIDFCounter(len(docs), keptDF)
	}
	return v
}

// Len returns the number of terms in the vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.Index)
}

// Contains reports whether term t is in the vocabulary.
func (v *Vocabulary) Contains(t string) bool {
	_, ok := v.Index[termKey(t)]
	return ok
}

func (v *Vocabulary) vector(terms []string) Vector {
	counts := make(map[uint64]int)
	for _, t := range terms {
		k := termKey(t)
		if _, ok := v.Index[k]; ok {
			counts[k]++
		}
	}

	tf := tfidf.TrainTFCounter(true, counts)
	values := make(map[int]float64, len(counts))
	for k := range counts {
		values[v.Index[k]] = v.Weighting.Score(k, tf, v.IDF)
	}
	return FromMap(v.Len(), values)
}
