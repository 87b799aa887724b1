package fraudmodel

import (
	"fmt"
	"runtime"

	"github.com/kiteco/fraudfilter/kite-go/featurize"
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/kiteco/fraudfilter/kite-golib/envutil"
	"github.com/kiteco/fraudfilter/kite-golib/workerpool"
)

// Prediction is the decision for one record.
type Prediction struct {
	Fraudulent  bool
	Probability float64
	// Score is the raw classifier margin
	Score float64
}

// Engine predicts with a fitted pipeline. It only reads the pipeline and can be used
// from multiple goroutines.
type Engine struct {
	p *Pipeline
}

// NewEngine returns an Engine over p.
func NewEngine(p *Pipeline) *Engine {
	return &Engine{p: p}
}

// Predict classifies r.
func (e *Engine) Predict(r jobposting.Record) Prediction {
	return e.predictVector(e.p.Transformer.Transform(r))
}

func (e *Engine) predictVector(feats featurize.Vector) Prediction {
	_, prob, score := e.p.Classifier.Predict(feats)
	return Prediction{
		Fraudulent:  prob >= e.p.Threshold,
		Probability: prob,
		Score:       score,
	}
}

// batchSize is the number of records a single job of PredictBatch handles.
const batchSize = 256

// PredictBatch classifies records on the given number of workers. If workers < 1 it
// uses $FRAUDFILTER_WORKERS, or runtime.NumCPU() when that is unset. Predictions are in
// the order of records.
func (e *Engine) PredictBatch(records []jobposting.Record, workers int) ([]Prediction, error) {
	out := make([]Prediction, len(records))
	if len(records) == 0 {
		return out, nil
	}
	if workers < 1 {
		n, err := envutil.GetenvDefaultInt64("FRAUDFILTER_WORKERS", int64(runtime.NumCPU()))
		if err != nil {
			return nil, err
		}
		workers = int(n)
	}

	pool := workerpool.New(workers)
	defer pool.Stop()

	var jobs []workerpool.Job
	for start := 0; start < len(records); start += batchSize {
		start := start
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		jobs = append(jobs, func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("predicting records %d to %d: %v", start, end, r)
				}
			}()
			for i := start; i < end; i++ {
				out[i] = e.Predict(records[i])
			}
			return nil
		})
	}

	pool.Add(jobs)
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
