package text

import (
	"errors"
	"strings"
)

// BeginMarker and EndMarker delimit a text when extracting character n-grams,
// so that prefixes and suffixes produce their own grams.
const (
	BeginMarker = '\x02'
	EndMarker   = '\x03'
)

// NGrams constructs the n grams (of order n) for the given token stream.
func NGrams(n int, toks []string) ([][]string, error) {
	if n < 1 || len(toks) < n {
		return nil, errors.New("not enough tokens for nGrams")
	}
	var nGrams [][]string
	for i := 0; i+n <= len(toks); i++ {
		nGram := make([]string, n)
		copy(nGram, toks[i:i+n])
		nGrams = append(nGrams, nGram)
	}
	return nGrams, nil
}

// JoinedNGrams returns every n-gram of the token stream for each length in
// [minLen, maxLen], each joined with "|". Shorter lengths come first.
func JoinedNGrams(minLen, maxLen int, toks []string) []string {
	var out []string
	for n := minLen; n <= maxLen; n++ {
		grams, err := NGrams(n, toks)
		if err != nil {
			break
		}
		for _, g := range grams {
			out = append(out, strings.Join(g, "|"))
		}
	}
	return out
}

// CharNGrams returns the character n-grams of s framed by BeginMarker and EndMarker.
// Texts shorter than n runes, markers included, produce no grams.
func CharNGrams(n int, s string) []string {
	if n < 1 {
		return nil
	}
	rs := make([]rune, 0, len(s)+2)
	rs = append(rs, BeginMarker)
	rs = append(rs, []rune(s)...)
	rs = append(rs, EndMarker)
	if len(rs) < n {
		return nil
	}

	out := make([]string, 0, len(rs)-n+1)
	for i := 0; i+n <= len(rs); i++ {
		out = append(out, string(rs[i:i+n]))
	}
	return out
}
