package main

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"unicode/utf8"

	"github.com/alexflint/go-arg"
	"github.com/kiteco/fraudfilter/kite-go/featurize"
	"github.com/kiteco/fraudfilter/kite-go/fraudmodel"
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/kiteco/fraudfilter/kite-go/ranking"
	"github.com/kiteco/fraudfilter/kite-golib/fileutil"
	"github.com/kiteco/fraudfilter/kite-golib/tfidf"
	"gopkg.in/yaml.v2"
)

type options struct {
	Config        string  `arg:"--config,help:YAML file providing defaults for the other options" yaml:"-"`
	Input         string  `arg:"--input,env:FRAUDFILTER_DATA,help:csv of job postings (local or s3://)" yaml:"input"`
	Output        string  `arg:"--output,env:FRAUDFILTER_MODEL,help:where to write the model (.gob or .json with optional .gz)" yaml:"output"`
	TestFraction  float64 `arg:"--test-fraction,help:fraction of rows held out for evaluation" yaml:"test_fraction"`
	Seed          int64   `arg:"--seed,help:seed of the train/test split" yaml:"seed"`
	Separator     string  `arg:"--separator,help:field separator (a single character or tab)" yaml:"separator"`
	NoHeader      bool    `arg:"--no-header,help:the input has no header row" yaml:"no_header"`
	Stratify      bool    `arg:"--stratify,help:keep the label ratio in both sets (--stratify=false to disable)" yaml:"stratify"`
	TextWeighting string  `arg:"--text-weighting,help:weighting of word and character n-grams (tf or idf or tfidf)" yaml:"text_weighting"`
	CleanTokens   bool    `arg:"--clean-tokens,help:trim punctuation off both ends of each word" yaml:"clean_tokens"`
	L2            float64 `arg:"--l2,help:L2 regularization strength" yaml:"l2"`
	MaxIterations int     `arg:"--max-iterations,help:maximum solver iterations" yaml:"max_iterations"`
	Tolerance     float64 `arg:"--tolerance,help:gradient norm at which the solver stops" yaml:"tolerance"`
	Threshold     float64 `arg:"--threshold,help:probability above which a posting is classified fraudulent" yaml:"threshold"`
	ROC           string  `arg:"--roc,help:write the ROC curve of the test set to this image (a bare file name is placed next to the model)" yaml:"roc"`
	Report        string  `arg:"--report,help:write the evaluation report to this .json file (a bare file name is placed next to the model)" yaml:"report"`
	LogFormat     string  `arg:"--log-format,help:text or json" yaml:"log_format"`
}

func defaultOptions() options {
	trainer := ranking.DefaultTrainerOptions()
	return options{
		Input:         "Data/train.csv",
		Output:        fraudmodel.DefaultModelPath,
		TestFraction:  0.2,
		Separator:     ",",
		Stratify:      true,
		TextWeighting: "tf",
		L2:            trainer.L2,
		MaxIterations: trainer.MaxIterations,
		Tolerance:     trainer.GradientTolerance,
		Threshold:     trainer.Threshold,
		LogFormat:     "text",
	}
}

// parseOptions parses the command line. Values are taken, in increasing order of
// precedence, from the defaults, the --config file, the environment and the flags.
func parseOptions(args []string) (options, *arg.Parser, error) {
	opts := defaultOptions()
	p, err := arg.NewParser(arg.Config{Program: "train-fraud-model"}, &opts)
	if err != nil {
		return opts, nil, err
	}
	if err := p.Parse(args); err != nil {
		return opts, p, err
	}
	if opts.Config == "" {
		return opts, p, opts.validate()
	}

	withConfig := defaultOptions()
	data, err := ioutil.ReadFile(opts.Config)
	if err != nil {
		return opts, p, fmt.Errorf("reading config: %v", err)
	}
	if err := yaml.UnmarshalStrict(data, &withConfig); err != nil {
		return opts, p, fmt.Errorf("parsing config %s: %v", opts.Config, err)
	}
	withConfig.Config = opts.Config

	p, err = arg.NewParser(arg.Config{Program: "train-fraud-model"}, &withConfig)
	if err != nil {
		return withConfig, nil, err
	}
	if err := p.Parse(args); err != nil {
		return withConfig, p, err
	}
	return withConfig, p, withConfig.validate()
}

func (o options) validate() error {
	if _, err := o.separator(); err != nil {
		return err
	}
	switch o.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", o.LogFormat)
	}
	if o.TestFraction <= 0 || o.TestFraction >= 1 {
		return fmt.Errorf("test fraction must be in (0, 1), got %v", o.TestFraction)
	}
	if _, err := tfidf.ParseWeighting(o.TextWeighting); err != nil {
		return err
	}
	return o.trainer().Validate()
}

func (o options) separator() (rune, error) {
	if o.Separator == "tab" || o.Separator == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(o.Separator) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", o.Separator)
	}
	r, _ := utf8.DecodeRuneInString(o.Separator)
	return r, nil
}

func (o options) loadOptions() jobposting.LoadOptions {
	sep, _ := o.separator()
	return jobposting.LoadOptions{
		Separator:    sep,
		HasHeader:    !o.NoHeader,
		TestFraction: o.TestFraction,
		Stratify:     o.Stratify,
		Schema:       jobposting.DefaultSchema(),
	}
}

func (o options) textOptions() featurize.TextOptions {
	w, _ := tfidf.ParseWeighting(o.TextWeighting)
	text := featurize.DefaultTextOptions()
	text.CleanTokens = o.CleanTokens
	text.Words.Weighting = w
	text.Chars.Weighting = w
	return text
}

// besideModel places a bare file name in the directory of the model, local or s3://.
// Any other path is returned as is.
func (o options) besideModel(name string) string {
	if name == "" || filepath.Base(name) != name {
		return name
	}
	return fileutil.Join(fileutil.Dir(o.Output), name)
}

func (o options) trainer() ranking.TrainerOptions {
	return ranking.TrainerOptions{
		L2:                o.L2,
		MaxIterations:     o.MaxIterations,
		GradientTolerance: o.Tolerance,
		Threshold:         o.Threshold,
	}
}
