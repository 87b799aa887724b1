package fileutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "foo")
	err = ioutil.WriteFile(path, nil, 0777)
	require.NoError(t, err)

	f, err := NewReader(path)
	require.NoError(t, err)
	defer f.Close()
	assert.IsType(t, &os.File{}, f)

	g, err := NewReader(filepath.Join(dir, "bar"))
	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestWriteFileReplaces(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "models", "model.gob")
	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := ioutil.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestNewBufferedWriterCreatesDirs(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "a", "b", "out.csv")
	w, err := NewBufferedWriter(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, path, w.Name())
}

func TestJoinAndDir(t *testing.T) {
	assert.Equal(t, "s3://bucket/models/model.gob", Join("s3://bucket/models", "model.gob"))
	assert.Equal(t, filepath.Join("models", "model.gob"), Join("models", "model.gob"))
	assert.Equal(t, "s3://bucket/models", Dir("s3://bucket/models/model.gob"))
	assert.Equal(t, "models", Dir("models/model.gob"))
}

func TestExt(t *testing.T) {
	assert.Equal(t, "png", Ext("reports/roc.PNG"))
	assert.Equal(t, "svg", Ext("s3://bucket/roc.svg"))
	assert.Equal(t, "", Ext("roc"))
}
