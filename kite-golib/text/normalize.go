package text

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemovePunctuations replaces punctuation and symbol runes with spaces.
func RemovePunctuations(s string) string {
	return strings.Map(func(r rune) rune {
		if isSpecial(r) {
			return ' '
		}
		return r
	}, s)
}

// RemoveDigits replaces decimal digits with spaces.
func RemoveDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return ' '
		}
		return r
	}, s)
}

// RemoveDiacritics strips combining marks, e.g. "café" -> "cafe".
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpaces trims s and replaces every run of whitespace with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripHTML returns the text components of an html fragment, separated by spaces.
// Contents of script and style elements are dropped. Plain text passes through
// unchanged apart from entity decoding.
func StripHTML(doc string) string {
	if !strings.ContainsAny(doc, "<&") {
		return doc
	}

	var parts []string
	z := html.NewTokenizer(strings.NewReader(doc))
	skipDepth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.TextToken:
			if skipDepth == 0 {
				if t := strings.TrimSpace(string(z.Text())); t != "" {
					parts = append(parts, t)
				}
			}
		case html.StartTagToken, html.EndTagToken:
			tn, _ := z.TagName()
			switch string(tn) {
			case "script", "style":
				if tt == html.StartTagToken {
					skipDepth++
				} else if skipDepth > 0 {
					skipDepth--
				}
			}
		}
	}
}
