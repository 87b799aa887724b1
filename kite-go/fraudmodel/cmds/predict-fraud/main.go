package main

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"
	"github.com/kiteco/fraudfilter/kite-go/fraudmodel"
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/kiteco/fraudfilter/kite-golib/fileutil"
	"github.com/kiteco/fraudfilter/kite-golib/kitelog"
)

type options struct {
	Model     string `arg:"--model,env:FRAUDFILTER_MODEL,help:model written by train-fraud-model"`
	Input     string `arg:"--input,required,help:csv of job postings to classify (local or s3://)"`
	Output    string `arg:"--output,help:write predictions to this csv instead of stdout"`
	Workers   int    `arg:"--workers,help:number of prediction workers (0 for one per cpu)"`
	Separator string `arg:"--separator,help:field separator of the input"`
	NoHeader  bool   `arg:"--no-header,help:the input has no header row"`
	Evaluate  bool   `arg:"--evaluate,help:print quality metrics against the fraudulent column of the input (otherwise the column is optional)"`
}

type row struct {
	Row         int     `csv:"row"`
	Title       string  `csv:"title"`
	Fraudulent  bool    `csv:"fraudulent"`
	Probability float64 `csv:"probability"`
	Score       float64 `csv:"score"`
}

func main() {
	opts := options{
		Model:     fraudmodel.DefaultModelPath,
		Separator: ",",
	}
	arg.MustParse(&opts)

	logger := kitelog.New(os.Stderr, "")
	defer logger.Sync()

	if err := predict(opts, os.Stdout, logger); err != nil {
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Durations.Flush(logger)
}

func predict(opts options, stdout io.Writer, logger *kitelog.Logger) error {
	if opts.Separator == "tab" || opts.Separator == `\t` {
		opts.Separator = "\t"
	}
	if utf8.RuneCountInString(opts.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", opts.Separator)
	}
	sep, _ := utf8.DecodeRuneInString(opts.Separator)

	start := time.Now()
	p, err := fraudmodel.Load(opts.Model)
	if err != nil {
		return err
	}
	logger.Durations.Since("load model", start)
	logger.Printf("loaded model %s (run %s, %s features)", opts.Model, p.RunID, humanize.Comma(int64(p.Transformer.Dim())))

	lo := jobposting.DefaultLoadOptions()
	lo.Separator = sep
	lo.HasHeader = !opts.NoHeader
	lo.Schema = p.Schema
	lo.OptionalLabel = !opts.Evaluate

	start = time.Now()
	records, err := jobposting.Read(opts.Input, lo)
	if err != nil {
		return err
	}
	logger.Durations.Since("read", start)

	start = time.Now()
	preds, err := fraudmodel.NewEngine(p).PredictBatch(records, opts.Workers)
	if err != nil {
		return err
	}
	logger.Durations.Since("predict", start)

	rows := make([]row, 0, len(preds))
	var flagged int
	for i, pred := range preds {
		if pred.Fraudulent {
			flagged++
		}
		rows = append(rows, row{
			Row:         i,
			Title:       records[i].Title,
			Fraudulent:  pred.Fraudulent,
			Probability: pred.Probability,
			Score:       pred.Score,
		})
	}
	logger.Printf("classified %s postings, %s flagged as fraudulent",
		humanize.Comma(int64(len(rows))), humanize.Comma(int64(flagged)))

	if err := writeRows(rows, opts.Output, stdout); err != nil {
		return err
	}

	if opts.Evaluate {
		m, err := fraudmodel.Evaluate(p, records)
		if err != nil {
			return err
		}
		m.Print(os.Stderr)
		m.PrintDetailed(os.Stderr)
	}
	return nil
}

func writeRows(rows []row, path string, stdout io.Writer) error {
	if path == "" {
		return gocsv.Marshal(&rows, stdout)
	}
	w, err := fileutil.NewBufferedWriter(path)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
