package serialization

import (
	"compress/bzip2"
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kiteco/fraudfilter/kite-golib/errors"
	"github.com/kiteco/fraudfilter/kite-golib/fileutil"
)

// Decoder is an interface that matches gob.Decoder and json.Decoder
type Decoder interface {
	// Decode extracts an object from the stream
	Decode(interface{}) error
}

// Decode loads a single object from a local or s3:// path into obj, which must be a
// pointer. If the path ends with .gz or .bz2 then the contents will be decompressed.
// The encoding is then determined by the remaining file extension, .json or .gob.
//
//	var model Model
//	err := serialization.Decode("/tmp/model.gob.gz", &model)
func Decode(path string, obj interface{}) (err error) {
	r, err := fileutil.NewReader(path)
	if err != nil {
		return fmt.Errorf("error loading %s: %v", path, err)
	}
	defer errors.Defer(&err, r.Close)
	return DecodeFrom(r, path, obj)
}

// DecodeFrom is like Decode but reads from r, using path only to determine the
// compression and encoding.
func DecodeFrom(r io.Reader, path string, obj interface{}) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}

	switch f.Compression {
	case Gzip:
		rd, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("error loading %s: %v", path, err)
		}
		defer rd.Close()
		r = rd
	case Bzip2:
		r = bzip2.NewReader(r)
	}

	var d Decoder
	switch f.Encoding {
	case JSON:
		d = json.NewDecoder(r)
	case Gob:
		d = gob.NewDecoder(r)
	}

	if err := d.Decode(obj); err != nil {
		return fmt.Errorf("error decoding %s: %v", path, err)
	}
	return nil
}
