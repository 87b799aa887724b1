package serialization

import (
	"fmt"
	"strings"
)

// Compression applied to an encoded stream, chosen by path suffix.
type Compression string

// Encoding of an object stream, chosen by path suffix.
type Encoding string

const (
	// None means the stream is not compressed
	None Compression = ""
	// Gzip is selected by a .gz suffix
	Gzip Compression = "gz"
	// Bzip2 is selected by a .bz2 suffix and is only supported for decoding
	Bzip2 Compression = "bz2"

	// JSON is selected by a .json extension
	JSON Encoding = "json"
	// Gob is selected by a .gob extension
	Gob Encoding = "gob"
)

// Format describes how the contents of a path are encoded.
type Format struct {
	Compression Compression
	Encoding    Encoding
}

// FormatOf determines the format from the path: an optional .gz or .bz2 suffix
// preceded by .json or .gob, e.g. "model.gob.gz".
func FormatOf(path string) (Format, error) {
	var f Format
	rest := path
	switch {
	case strings.HasSuffix(rest, ".gz"):
		f.Compression = Gzip
		rest = strings.TrimSuffix(rest, ".gz")
	case strings.HasSuffix(rest, ".bz2"):
		f.Compression = Bzip2
		rest = strings.TrimSuffix(rest, ".bz2")
	}

	switch {
	case strings.HasSuffix(rest, ".json"):
		f.Encoding = JSON
	case strings.HasSuffix(rest, ".gob"):
		f.Encoding = Gob
	default:
		return Format{}, fmt.Errorf("could not find encoding for %s", path)
	}
	return f, nil
}
