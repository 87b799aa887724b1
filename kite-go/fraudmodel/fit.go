package fraudmodel

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kiteco/fraudfilter/kite-go/featurize"
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/kiteco/fraudfilter/kite-go/ranking"
	"github.com/kiteco/fraudfilter/kite-golib/errors"
)

// Pipeline is a fitted transformer and classifier. It is not modified after Fit.
type Pipeline struct {
	Schema      jobposting.Schema
	Transformer *featurize.Transformer
	Classifier  *ranking.BinaryClassifier
	Threshold   float64
	RunID       string
	CreatedAt   time.Time
	// Stats of the solver run, zero for loaded pipelines
	Stats ranking.TrainStats
}

// Fit fits steps on the train records only, then trains the classifier on the
// resulting feature vectors.
func Fit(sess *Session, steps []featurize.Step, train []jobposting.Record) (*Pipeline, error) {
	log := sess.logger()
	schema := sess.schema()

	start := time.Now()
	tr, err := featurize.Fit(steps, schema, train)
	if err != nil {
		return nil, errors.Wrapf(err, "fitting feature steps")
	}
	log.Durations.Since("featurize", start)
	log.Printf("fitted %d steps on %s records, %s features", len(steps),
		humanize.Comma(int64(len(train))), humanize.Comma(int64(tr.Dim())))

	examples := make([]ranking.Example, len(train))
	for i, r := range train {
		feats, l := example(tr, r)
		examples[i] = ranking.Example{Features: feats, Label: l}
	}

	start = time.Now()
	clf, stats, err := ranking.TrainLogisticRegression(examples, sess.Trainer)
	log.Durations.Since("train", start)
	if err != nil {
		return nil, err
	}
	log.Printf("solver stopped with %s after %d iterations, objective %.6f", stats.Status, stats.Iterations, stats.Objective)

	return &Pipeline{
		Schema:      schema,
		Transformer: tr,
		Classifier:  clf,
		Threshold:   clf.Threshold,
		RunID:       sess.runID(),
		CreatedAt:   time.Now().UTC(),
		Stats:       stats,
	}, nil
}

// example featurizes r. The label is the one the steps define, falling back to the
// record's.
func example(tr *featurize.Transformer, r jobposting.Record) (featurize.Vector, bool) {
	feats, l, ok := tr.Example(r)
	if !ok {
		l = r.Fraudulent
	}
	return feats, l
}
