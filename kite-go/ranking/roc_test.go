package ranking

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestROC(t *testing.T) {
	labels := []bool{true, false, true, false}
	scores := []float64{0.9, 0.7, 0.7, 0.1}

	curve := ROC(labels, scores)
	assert.Equal(t, []ROCPoint{
		{FalsePositiveRate: 0, TruePositiveRate: 0, Threshold: 1},
		{FalsePositiveRate: 0, TruePositiveRate: 0.5, Threshold: 0.9},
		{FalsePositiveRate: 0.5, TruePositiveRate: 1, Threshold: 0.7},
		{FalsePositiveRate: 1, TruePositiveRate: 1, Threshold: 0.1},
	}, curve)

	var area float64
	for i := 1; i < len(curve); i++ {
		dx := curve[i].FalsePositiveRate - curve[i-1].FalsePositiveRate
		area += dx * (curve[i].TruePositiveRate + curve[i-1].TruePositiveRate) / 2
	}
	assert.InDelta(t, AUC(labels, scores), area, 1e-12)
}

func TestPlotROC(t *testing.T) {
	dir, err := ioutil.TempDir("", "roc")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	labels := []bool{true, false, true, false}
	scores := []float64{0.9, 0.7, 0.7, 0.1}
	path := filepath.Join(dir, "plots", "roc.png")
	require.NoError(t, PlotROC(ROC(labels, scores), AUC(labels, scores), path))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))

	assert.Error(t, PlotROC(ROC(labels, scores), 0.5, filepath.Join(dir, "roc.unknown")))
}
