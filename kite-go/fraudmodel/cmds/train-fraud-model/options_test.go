package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/kiteco/fraudfilter/kite-go/featurize"
	"github.com/kiteco/fraudfilter/kite-go/fraudmodel"
	"github.com/kiteco/fraudfilter/kite-go/ranking"
	"github.com/kiteco/fraudfilter/kite-golib/tfidf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	for _, key := range keys {
		old, ok := os.LookupEnv(key)
		os.Unsetenv(key)
		if ok {
			key := key
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func TestParseOptions_Defaults(t *testing.T) {
	unsetenv(t, "FRAUDFILTER_DATA", "FRAUDFILTER_MODEL")

	opts, _, err := parseOptions(nil)
	require.NoError(t, err)

	assert.Equal(t, "Data/train.csv", opts.Input)
	assert.Equal(t, fraudmodel.DefaultModelPath, opts.Output)
	assert.True(t, opts.Stratify)
	assert.Equal(t, ranking.DefaultTrainerOptions(), opts.trainer())
	assert.Equal(t, featurize.DefaultTextOptions(), opts.textOptions())

	lo := opts.loadOptions()
	assert.Equal(t, ',', lo.Separator)
	assert.True(t, lo.HasHeader)
	assert.Equal(t, 0.2, lo.TestFraction)
}

func TestParseOptions_Flags(t *testing.T) {
	unsetenv(t, "FRAUDFILTER_DATA", "FRAUDFILTER_MODEL")

	opts, _, err := parseOptions([]string{
		"--input", "postings.tsv",
		"--separator", "tab",
		"--no-header",
		"--stratify=false",
		"--seed", "7",
		"--l2", "0.5",
		"--threshold", "0.3",
		"--text-weighting", "tfidf",
		"--clean-tokens",
	})
	require.NoError(t, err)

	lo := opts.loadOptions()
	assert.Equal(t, "postings.tsv", opts.Input)
	assert.Equal(t, '\t', lo.Separator)
	assert.False(t, lo.HasHeader)
	assert.False(t, lo.Stratify)
	assert.EqualValues(t, 7, opts.Seed)
	assert.Equal(t, 0.5, opts.trainer().L2)
	assert.Equal(t, 0.3, opts.trainer().Threshold)

	text := opts.textOptions()
	assert.True(t, text.CleanTokens)
	assert.Equal(t, tfidf.TFIDF, text.Words.Weighting)
	assert.Equal(t, tfidf.TFIDF, text.Chars.Weighting)
}

func TestParseOptions_Env(t *testing.T) {
	unsetenv(t, "FRAUDFILTER_DATA", "FRAUDFILTER_MODEL")
	os.Setenv("FRAUDFILTER_MODEL", "s3://bucket/model.gob.gz")
	defer os.Unsetenv("FRAUDFILTER_MODEL")

	opts, _, err := parseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/model.gob.gz", opts.Output)
}

func TestParseOptions_Config(t *testing.T) {
	unsetenv(t, "FRAUDFILTER_DATA", "FRAUDFILTER_MODEL")

	dir, err := ioutil.TempDir("", "train-fraud-model")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(config, []byte(`
input: from-config.csv
test_fraction: 0.3
stratify: false
max_iterations: 50
`), 0644))

	opts, _, err := parseOptions([]string{"--config", config, "--input", "from-flag.csv"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.csv", opts.Input)
	assert.Equal(t, 0.3, opts.TestFraction)
	assert.False(t, opts.Stratify)
	assert.Equal(t, 50, opts.MaxIterations)
	assert.Equal(t, ranking.DefaultTrainerOptions().L2, opts.L2)
}

func TestParseOptions_UnknownConfigKey(t *testing.T) {
	unsetenv(t, "FRAUDFILTER_DATA", "FRAUDFILTER_MODEL")

	dir, err := ioutil.TempDir("", "train-fraud-model")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(config, []byte("learning_rate: 3\n"), 0644))

	_, _, err = parseOptions([]string{"--config", config})
	assert.Error(t, err)
}

func TestParseOptions_Invalid(t *testing.T) {
	unsetenv(t, "FRAUDFILTER_DATA", "FRAUDFILTER_MODEL")

	for _, args := range [][]string{
		{"--separator", ";;"},
		{"--separator", ""},
		{"--log-format", "xml"},
		{"--test-fraction", "0"},
		{"--test-fraction", "1"},
		{"--l2", "-1"},
		{"--threshold", "1.5"},
		{"--text-weighting", "bm25"},
	} {
		_, _, err := parseOptions(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestBesideModel(t *testing.T) {
	for _, tc := range []struct {
		output, name, want string
	}{
		{"models/model.gob.gz", "roc.png", filepath.Join("models", "roc.png")},
		{"model.gob.gz", "roc.png", "roc.png"},
		{"s3://bucket/models/model.gob.gz", "report.json", "s3://bucket/models/report.json"},
		{"models/model.gob.gz", "plots/roc.png", "plots/roc.png"},
		{"models/model.gob.gz", "s3://other/report.json", "s3://other/report.json"},
		{"models/model.gob.gz", "", ""},
	} {
		opts := options{Output: tc.output}
		assert.Equal(t, tc.want, opts.besideModel(tc.name), "%s next to %s", tc.name, tc.output)
	}
}
