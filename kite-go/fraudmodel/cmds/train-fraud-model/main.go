package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/kiteco/fraudfilter/kite-go/featurize"
	"github.com/kiteco/fraudfilter/kite-go/fraudmodel"
	"github.com/kiteco/fraudfilter/kite-go/ranking"
	"github.com/kiteco/fraudfilter/kite-golib/awsutil"
	"github.com/kiteco/fraudfilter/kite-golib/errors"
	"github.com/kiteco/fraudfilter/kite-golib/kitelog"
	"github.com/kiteco/fraudfilter/kite-golib/serialization"
)

type report struct {
	RunID     string             `json:"run_id"`
	CreatedAt time.Time          `json:"created_at"`
	Input     string             `json:"input"`
	Model     string             `json:"model"`
	Train     int                `json:"train"`
	Test      int                `json:"test"`
	Options   options            `json:"options"`
	Stats     ranking.TrainStats `json:"stats"`
	Metrics   ranking.Metrics    `json:"metrics"`
}

func banner(w io.Writer, title string) {
	fmt.Fprintf(w, "=============== %s ===============\n", title)
}

func main() {
	opts, p, err := parseOptions(os.Args[1:])
	switch {
	case err == arg.ErrHelp:
		p.WriteHelp(os.Stdout)
		os.Exit(0)
	case err != nil && p != nil:
		p.Fail(err.Error())
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	runID := uuid.New().String()
	logger := kitelog.New(os.Stderr, runID)
	if opts.LogFormat == "json" {
		logger = kitelog.NewJSON(os.Stderr, runID)
	}

	err = run(opts, runID, os.Stdout, logger)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run loads, trains, evaluates and saves a model. Banners and metrics go to stdout.
// An error names the stage that failed, and nothing is saved if a stage before
// "saving model" fails.
func run(opts options, runID string, stdout io.Writer, logger *kitelog.Logger) error {
	sess := fraudmodel.NewSession(opts.Seed, logger)
	sess.RunID = runID
	sess.Trainer = opts.trainer()

	banner(stdout, "Loading Dataset")
	split, err := fraudmodel.LoadDataset(sess, opts.Input, opts.loadOptions())
	if err != nil {
		return errors.WrapfOrNil(err, "loading dataset")
	}
	banner(stdout, "Finished Loading Dataset")

	banner(stdout, "Processing Data")
	steps := featurize.TextSteps(opts.textOptions())
	logger.Printf("featurizing with %d steps into %s", len(steps), featurize.FeaturesColumn)
	banner(stdout, "Finished Processing Data")

	banner(stdout, "Training Model")
	pipeline, err := fraudmodel.Fit(sess, steps, split.Train)
	if err != nil {
		return errors.WrapfOrNil(err, "training model")
	}
	banner(stdout, "Finished Training Model")

	banner(stdout, "Building Prediction Engine")
	engine := fraudmodel.NewEngine(pipeline)
	if len(split.Test) > 0 {
		pred := engine.Predict(split.Test[0])
		logger.Printf("sample prediction for %q: fraudulent=%t probability=%.4f", split.Test[0].Title, pred.Fraudulent, pred.Probability)
	}
	banner(stdout, "Finished Building Prediction Engine")

	start := time.Now()
	metrics, err := fraudmodel.Evaluate(pipeline, split.Test)
	if err != nil {
		return errors.WrapfOrNil(err, "evaluating model")
	}
	logger.Durations.Since("evaluate", start)
	metrics.Print(stdout)
	metrics.PrintDetailed(stdout)
	banner(stdout, "End of model evaluation")

	if roc := opts.besideModel(opts.ROC); roc != "" {
		labels, probs := fraudmodel.Score(pipeline, split.Test)
		if err := ranking.PlotROC(ranking.ROC(labels, probs), metrics.AreaUnderRocCurve, roc); err != nil {
			return errors.WrapfOrNil(err, "plotting roc curve")
		}
		logger.Printf("wrote roc curve to %s", roc)
	}

	start = time.Now()
	if err := fraudmodel.Save(pipeline, sess.Schema, opts.Output); err != nil {
		return errors.WrapfOrNil(err, "saving model")
	}
	logger.Durations.Since("save", start)
	if fi, err := os.Stat(opts.Output); err == nil && !awsutil.IsS3URI(opts.Output) {
		logger.Printf("saved model to %s (%s)", opts.Output, humanize.Bytes(uint64(fi.Size())))
	} else {
		logger.Printf("saved model to %s", opts.Output)
	}

	if path := opts.besideModel(opts.Report); path != "" {
		err := serialization.Encode(path, report{
			RunID:     pipeline.RunID,
			CreatedAt: pipeline.CreatedAt,
			Input:     opts.Input,
			Model:     opts.Output,
			Train:     len(split.Train),
			Test:      len(split.Test),
			Options:   opts,
			Stats:     pipeline.Stats,
			Metrics:   metrics,
		})
		if err != nil {
			return errors.WrapfOrNil(err, "writing report")
		}
		logger.Printf("wrote report to %s", path)
	}

	logger.Durations.Flush(logger)
	return nil
}
