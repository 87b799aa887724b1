package text

import (
	"strings"
	"unicode"

	porterstemmer "github.com/kiteco/go-porterstemmer"
)

// Tokens is a stream of tokens, in text order.
type Tokens []string

// TokenFunc is one rule of a Processor. Rules may modify their input in place.
type TokenFunc func(Tokens) Tokens

// Processor runs a fixed sequence of rules over token streams.
type Processor struct {
	rules []TokenFunc
}

// NewProcessor returns a Processor applying rules in the given order.
func NewProcessor(rules ...TokenFunc) *Processor {
	return &Processor{rules: append([]TokenFunc(nil), rules...)}
}

// Apply runs every rule over ts.
func (p *Processor) Apply(ts Tokens) Tokens {
	for _, rule := range p.rules {
		ts = rule(ts)
	}
	return ts
}

// Len returns the number of rules.
func (p *Processor) Len() int {
	return len(p.rules)
}

// TokenizeWords splits s on runs of unicode whitespace, e.g.
// "senior  data\tengineer" -> {"senior", "data", "engineer"}
func TokenizeWords(s string) Tokens {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	if len(fields) == 0 {
		return nil
	}
	return Tokens(fields)
}

// Lower lower cases every token.
func Lower(ts Tokens) Tokens {
	return mapTokens(ts, strings.ToLower)
}

// Stem replaces every token with its porter stem.
func Stem(ts Tokens) Tokens {
	return mapTokens(ts, porterstemmer.StemString)
}

func mapTokens(ts Tokens, fn func(string) string) Tokens {
	for i := range ts {
		ts[i] = fn(ts[i])
	}
	return ts
}

// RemoveStopWords drops stop words. Matching is case sensitive, so Lower normally
// runs first.
func RemoveStopWords(ts Tokens) Tokens {
	return filterTokens(ts, func(t string) bool {
		_, stop := stopWords[t]
		return !stop
	})
}

// CleanTokens trims punctuation and symbols off both ends of each token and drops the
// tokens left empty.
func CleanTokens(ts Tokens) Tokens {
	for i := range ts {
		ts[i] = strings.TrimFunc(ts[i], isSpecial)
	}
	return filterTokens(ts, func(t string) bool { return t != "" })
}

// filterTokens returns the tokens keep accepts, in a new slice.
func filterTokens(ts Tokens, keep func(string) bool) Tokens {
	var out Tokens
	for _, t := range ts {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
