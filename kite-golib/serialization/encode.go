package serialization

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kiteco/fraudfilter/kite-golib/errors"
	"github.com/kiteco/fraudfilter/kite-golib/fileutil"
)

// Encode writes the object to the path, using the format specified by the file
// extension, which can be .json or .gob. The path may additionally have a .gz suffix,
// in which case the stream will be compressed. The path may be local or s3://.
func Encode(path string, obj interface{}) (err error) {
	w, err := fileutil.NewBufferedWriter(path)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, w.Close)

	enc, err := NewEncoder(w, path)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, enc.Close)
	return enc.Encode(obj)
}

// EncodeBytes encodes the object in memory using the format specified by path.
func EncodeBytes(path string, obj interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, path)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(obj); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder is an interface that matches gob.Encoder and json.Encoder
type Encoder interface {
	// Encode adds an item to the stream
	Encode(interface{}) error
}

// EncodeCloser is an encoder that can also flush the compression layers it owns.
// Closing it does not close the destination writer.
type EncodeCloser struct {
	encoder Encoder
	closers []io.Closer
}

// Encode writes an object to the underlying stream
func (e *EncodeCloser) Encode(x interface{}) error {
	return e.encoder.Encode(x)
}

// Close flushes the compression layers
func (e *EncodeCloser) Close() error {
	var closeErr error
	// We must close in reverse order
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			closeErr = err
		}
	}
	return closeErr
}

// NewEncoder returns an encoder that writes to w in the format specified by the
// extension of path.
func NewEncoder(w io.Writer, path string) (*EncodeCloser, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var closers []io.Closer
	switch f.Compression {
	case Gzip:
		gz := gzip.NewWriter(w)
		closers = append(closers, gz)
		w = gz
	case Bzip2:
		return nil, fmt.Errorf("bzip2 encoding is not supported for %s", path)
	}

	var e Encoder
	switch f.Encoding {
	case JSON:
		e = json.NewEncoder(w)
	case Gob:
		e = gob.NewEncoder(w)
	}

	return &EncodeCloser{
		encoder: e,
		closers: closers,
	}, nil
}
