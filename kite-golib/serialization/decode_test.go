package serialization

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posting struct {
	Title string
	Flags []float64
	Terms map[uint64]int
}

func TestFormatOf(t *testing.T) {
	cases := []struct {
		path string
		exp  Format
	}{
		{"model.gob", Format{None, Gob}},
		{"model.gob.gz", Format{Gzip, Gob}},
		{"s3://bucket/dir/model.json.gz", Format{Gzip, JSON}},
		{"data.json.bz2", Format{Bzip2, JSON}},
	}
	for _, c := range cases {
		f, err := FormatOf(c.path)
		require.NoError(t, err, c.path)
		assert.Equal(t, c.exp, f, c.path)
	}

	_, err := FormatOf("model.zip")
	assert.Error(t, err)
}

func TestEncodeBytesRoundTrip(t *testing.T) {
	in := posting{Title: "data entry", Flags: []float64{0, 1, 1}, Terms: map[uint64]int{7: 2, 1 << 60: 1}}

	for _, path := range []string{"p.json", "p.json.gz", "p.gob", "p.gob.gz"} {
		buf, err := EncodeBytes(path, in)
		require.NoError(t, err, path)

		var out posting
		require.NoError(t, DecodeFrom(bytes.NewReader(buf), path, &out), path)
		assert.Equal(t, in, out, path)
	}

	_, err := EncodeBytes("p.gob.bz2", in)
	assert.Error(t, err)
}

func TestEncodeDecodeFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "serialization")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "nested", "posting.gob.gz")
	in := posting{Title: "nurse", Flags: []float64{1}}
	require.NoError(t, Encode(path, in))

	var out posting
	require.NoError(t, Decode(path, &out))
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.Flags, out.Flags)

	assert.Error(t, Decode(filepath.Join(dir, "missing.gob"), &out))
}

func TestDecodeCorrupt(t *testing.T) {
	var out posting
	err := DecodeFrom(bytes.NewReader([]byte("not gzip")), "p.gob.gz", &out)
	assert.Error(t, err)
}
