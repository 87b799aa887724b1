package ranking

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// ConfusionMatrix counts the decisions of a binary classifier.
type ConfusionMatrix struct {
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
}

// ScoreSummary summarizes the predicted probabilities.
type ScoreSummary struct {
	Mean   float64
	Median float64
	P90    float64
}

// Metrics of a binary classifier on a labeled set.
type Metrics struct {
	Count     int
	Positives int
	Threshold float64

	Accuracy                      float64
	AreaUnderRocCurve             float64
	F1Score                       float64
	PositivePrecision             float64
	PositiveRecall                float64
	NegativePrecision             float64
	NegativeRecall                float64
	AreaUnderPrecisionRecallCurve float64

	// LogLoss and Entropy are in bits
	LogLoss          float64
	LogLossReduction float64
	Entropy          float64

	Confusion ConfusionMatrix
	Scores    ScoreSummary
}

// probabilities are clamped to [epsilon, 1-epsilon] when computing the log loss
const epsilon = 1e-15

// EvaluateBinary computes the metrics of probabilities against labels, deciding class 1
// for probabilities at or above threshold.
func EvaluateBinary(labels []bool, probs []float64, threshold float64) (Metrics, error) {
	if len(labels) != len(probs) {
		return Metrics{}, fmt.Errorf("%d labels but %d scores", len(labels), len(probs))
	}
	if len(labels) == 0 {
		return Metrics{}, fmt.Errorf("no examples to evaluate")
	}
	for i, p := range probs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return Metrics{}, fmt.Errorf("score %d is not a probability: %v", i, p)
		}
	}

	m := Metrics{Count: len(labels), Threshold: threshold}
	var logLoss float64
	for i, label := range labels {
		p := probs[i]
		predicted := p >= threshold
		switch {
		case label && predicted:
			m.Confusion.TruePositives++
		case label:
			m.Confusion.FalseNegatives++
		case predicted:
			m.Confusion.FalsePositives++
		default:
			m.Confusion.TrueNegatives++
		}

		if label {
			m.Positives++
			logLoss -= math.Log2(math.Max(p, epsilon))
		} else {
			logLoss -= math.Log2(math.Max(1-p, epsilon))
		}
	}

	c := m.Confusion
	m.Accuracy = ratio(c.TruePositives+c.TrueNegatives, m.Count)
	m.PositivePrecision = ratio(c.TruePositives, c.TruePositives+c.FalsePositives)
	m.PositiveRecall = ratio(c.TruePositives, c.TruePositives+c.FalseNegatives)
	m.NegativePrecision = ratio(c.TrueNegatives, c.TrueNegatives+c.FalseNegatives)
	m.NegativeRecall = ratio(c.TrueNegatives, c.TrueNegatives+c.FalsePositives)
	if sum := m.PositivePrecision + m.PositiveRecall; sum > 0 {
		m.F1Score = 2 * m.PositivePrecision * m.PositiveRecall / sum
	}

	m.LogLoss = logLoss / float64(m.Count)
	m.Entropy = entropy(ratio(m.Positives, m.Count))
	if m.Entropy > 0 {
		m.LogLossReduction = (m.Entropy - m.LogLoss) / m.Entropy
	}

	m.AreaUnderRocCurve = AUC(labels, probs)
	m.AreaUnderPrecisionRecallCurve = AUPRC(labels, probs)

	summary, err := summarize(probs)
	if err != nil {
		return Metrics{}, err
	}
	m.Scores = summary
	return m, nil
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// entropy in bits of a bernoulli variable with parameter p.
func entropy(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}

func summarize(probs []float64) (ScoreSummary, error) {
	var s ScoreSummary
	var err error
	data := stats.Float64Data(probs)
	if s.Mean, err = data.Mean(); err != nil {
		return s, err
	}
	if s.Median, err = data.Median(); err != nil {
		return s, err
	}
	if s.P90, err = data.Percentile(90); err != nil {
		return s, err
	}
	return s, nil
}

// AUC returns the area under the ROC curve of scores, computed as the Mann-Whitney
// statistic with tied scores given their average rank. It is 0.5 if only one class is
// present.
func AUC(labels []bool, scores []float64) float64 {
	var pos, neg int
	for _, l := range labels {
		if l {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0.5
	}

	order := sortedByScore(scores, false)
	var rankSum float64
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			j++
		}
		// ranks i+1..j share their average
		avg := float64(i+1+j) / 2
		for _, k := range order[i:j] {
			if labels[k] {
				rankSum += avg
			}
		}
		i = j
	}

	p := float64(pos)
	return (rankSum - p*(p+1)/2) / (p * float64(neg))
}

// AUPRC returns the area under the precision recall curve as the average precision
// over the distinct score thresholds. It is 0 if there are no positives.
func AUPRC(labels []bool, scores []float64) float64 {
	var pos int
	for _, l := range labels {
		if l {
			pos++
		}
	}
	if pos == 0 {
		return 0
	}

	order := sortedByScore(scores, true)
	var tp, fp int
	var area, prevRecall float64
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			if labels[order[j]] {
				tp++
			} else {
				fp++
			}
			j++
		}
		recall := float64(tp) / float64(pos)
		precision := float64(tp) / float64(tp+fp)
		area += (recall - prevRecall) * precision
		prevRecall = recall
		i = j
	}
	return area
}

func sortedByScore(scores []float64, desc bool) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if desc {
			return scores[order[a]] > scores[order[b]]
		}
		return scores[order[a]] < scores[order[b]]
	})
	return order
}

// Print writes the accuracy, AUC and F1 score as percentages.
func (m Metrics) Print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Model quality metrics evaluation")
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "Accuracy: %s\n", percent(m.Accuracy))
	fmt.Fprintf(w, "Auc: %s\n", percent(m.AreaUnderRocCurve))
	fmt.Fprintf(w, "F1Score: %s\n", percent(m.F1Score))
}

// PrintDetailed writes every metric along with the confusion matrix.
func (m Metrics) PrintDetailed(w io.Writer) {
	fmt.Fprintf(w, "Examples: %d (%d positive)\n", m.Count, m.Positives)
	fmt.Fprintf(w, "Positive precision: %s\n", percent(m.PositivePrecision))
	fmt.Fprintf(w, "Positive recall: %s\n", percent(m.PositiveRecall))
	fmt.Fprintf(w, "Negative precision: %s\n", percent(m.NegativePrecision))
	fmt.Fprintf(w, "Negative recall: %s\n", percent(m.NegativeRecall))
	fmt.Fprintf(w, "Auprc: %s\n", percent(m.AreaUnderPrecisionRecallCurve))
	fmt.Fprintf(w, "Log loss: %.4f\n", m.LogLoss)
	fmt.Fprintf(w, "Log loss reduction: %.4f\n", m.LogLossReduction)
	fmt.Fprintf(w, "Entropy: %.4f\n", m.Entropy)
	fmt.Fprintf(w, "Scores: mean %.4f, median %.4f, p90 %.4f\n", m.Scores.Mean, m.Scores.Median, m.Scores.P90)

	c := m.Confusion
	fmt.Fprintln(w, "Confusion matrix (rows: truth, columns: predicted)")
	fmt.Fprintf(w, "%10s %10s %10s\n", "", "positive", "negative")
	fmt.Fprintf(w, "%10s %10d %10d\n", "positive", c.TruePositives, c.FalseNegatives)
	fmt.Fprintf(w, "%10s %10d %10d\n", "negative", c.FalsePositives, c.TrueNegatives)
}

func percent(x float64) string {
	return fmt.Sprintf("%.2f%%", 100*x)
}
