package ranking

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBinary(t *testing.T) {
	labels := []bool{true, true, false, false, false}
	probs := []float64{0.9, 0.4, 0.6, 0.2, 0.1}

	m, err := EvaluateBinary(labels, probs, 0.5)
	require.NoError(t, err)

	assert.Equal(t, ConfusionMatrix{TruePositives: 1, FalsePositives: 1, TrueNegatives: 2, FalseNegatives: 1}, m.Confusion)
	assert.InDelta(t, 0.6, m.Accuracy, 1e-12)
	assert.InDelta(t, 0.5, m.PositivePrecision, 1e-12)
	assert.InDelta(t, 0.5, m.PositiveRecall, 1e-12)
	assert.InDelta(t, 0.5, m.F1Score, 1e-12)
	assert.InDelta(t, 2.0/3, m.NegativePrecision, 1e-12)
	assert.InDelta(t, 2.0/3, m.NegativeRecall, 1e-12)
	// 5 of the 6 positive/negative pairs are ordered correctly
	assert.InDelta(t, 5.0/6, m.AreaUnderRocCurve, 1e-12)
	assert.InDelta(t, 0.44, m.Scores.Mean, 1e-12)
	assert.InDelta(t, 0.4, m.Scores.Median, 1e-12)

	expectedLoss := -(math.Log2(0.9) + math.Log2(0.4) + math.Log2(0.4) + math.Log2(0.8) + math.Log2(0.9)) / 5
	assert.InDelta(t, expectedLoss, m.LogLoss, 1e-12)
	assert.InDelta(t, entropy(0.4), m.Entropy, 1e-12)
	assert.InDelta(t, (m.Entropy-m.LogLoss)/m.Entropy, m.LogLossReduction, 1e-12)
}

func TestMetricBounds(t *testing.T) {
	labels := []bool{true, false, true, false, false, true, false}
	probs := []float64{0.1, 0.9, 0.3, 0.5, 0.5, 1, 0}

	m, err := EvaluateBinary(labels, probs, 0.5)
	require.NoError(t, err)
	for _, v := range []float64{m.Accuracy, m.AreaUnderRocCurve, m.F1Score, m.AreaUnderPrecisionRecallCurve,
		m.PositivePrecision, m.PositiveRecall, m.NegativePrecision, m.NegativeRecall} {
		assert.True(t, v >= 0 && v <= 1, "%v", v)
	}
	assert.False(t, math.IsInf(m.LogLoss, 0))
}

func TestAUCConstantScores(t *testing.T) {
	labels := []bool{true, false, false, true, false}
	assert.Equal(t, 0.5, AUC(labels, []float64{0.3, 0.3, 0.3, 0.3, 0.3}))
}

func TestAUCSingleClass(t *testing.T) {
	assert.Equal(t, 0.5, AUC([]bool{false, false}, []float64{0.1, 0.9}))
	assert.Equal(t, 0.5, AUC([]bool{true}, []float64{0.1}))
}

func TestAUCPerfect(t *testing.T) {
	labels := []bool{false, true, false, true}
	assert.Equal(t, 1.0, AUC(labels, []float64{0.1, 0.8, 0.2, 0.9}))
	assert.Equal(t, 0.0, AUC(labels, []float64{0.9, 0.2, 0.8, 0.1}))
}

func TestAUPRC(t *testing.T) {
	labels := []bool{true, false, true}
	assert.InDelta(t, 1.0, AUPRC([]bool{true, false}, []float64{0.9, 0.1}), 1e-12)
	// precision 1 at recall 1/2, then 2/3 at recall 1
	assert.InDelta(t, 0.5+0.5*2.0/3, AUPRC(labels, []float64{0.9, 0.5, 0.2}), 1e-12)
	assert.Equal(t, 0.0, AUPRC([]bool{false}, []float64{0.4}))
}

func TestEvaluateBinaryErrors(t *testing.T) {
	_, err := EvaluateBinary(nil, nil, 0.5)
	assert.Error(t, err)
	_, err = EvaluateBinary([]bool{true}, []float64{0.1, 0.2}, 0.5)
	assert.Error(t, err)
	_, err = EvaluateBinary([]bool{true}, []float64{1.5}, 0.5)
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	m := Metrics{Accuracy: 0.8, AreaUnderRocCurve: 0.5, F1Score: 0}
	var buf bytes.Buffer
	m.Print(&buf)
	assert.Contains(t, buf.String(), "Accuracy: 80.00%\n")
	assert.Contains(t, buf.String(), "Auc: 50.00%\n")
	assert.Contains(t, buf.String(), "F1Score: 0.00%\n")

	buf.Reset()
	m.PrintDetailed(&buf)
	assert.Contains(t, buf.String(), "Confusion matrix")
}
