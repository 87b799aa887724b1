package fraudmodel

import (
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/kiteco/fraudfilter/kite-go/ranking"
)

// Score returns the label and predicted probability of each record. The pipeline is
// applied as is, nothing is refit.
func Score(p *Pipeline, records []jobposting.Record) (labels []bool, probs []float64) {
	e := NewEngine(p)
	labels = make([]bool, len(records))
	probs = make([]float64, len(records))
	for i, r := range records {
		feats, l := example(p.Transformer, r)
		labels[i] = l
		probs[i] = e.predictVector(feats).Probability
	}
	return labels, probs
}

// Evaluate computes the metrics of the pipeline on the test records.
func Evaluate(p *Pipeline, test []jobposting.Record) (ranking.Metrics, error) {
	labels, probs := Score(p, test)
	return ranking.EvaluateBinary(labels, probs, p.Threshold)
}
