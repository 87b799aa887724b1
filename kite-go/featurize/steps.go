package featurize

import (
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/kiteco/fraudfilter/kite-golib/tfidf"
)

// Kind identifies the transformation a Step performs.
type Kind string

const (
	// CopyColumn aliases its single input under the output name
	CopyColumn Kind = "copy"
	// FeaturizeText turns a free text column into a sparse n-gram vector
	FeaturizeText Kind = "featurize_text"
	// Concatenate joins numeric columns, in order, into one vector
	Concatenate Kind = "concatenate"
)

// Names of the columns the trainer reads.
const (
	LabelColumn    = "Label"
	FeaturesColumn = "Features"
)

// Step is a declarative, not yet fitted, column transformation.
type Step struct {
	Kind   Kind
	Output string
	Inputs []string
	// Text is only set for FeaturizeText steps
	Text *TextOptions
}

// NGramOptions configures one family of n-grams extracted from a text.
type NGramOptions struct {
	// MinLength and MaxLength bound the n-gram lengths; MaxLength 0 disables the family.
	MinLength int
	MaxLength int
	// MaxTerms caps the vocabulary to the most frequent terms, 0 for no cap.
	MaxTerms int
	// MinCount is the number of occurrences in the train set a term needs to be kept.
	MinCount  int
	Weighting tfidf.Weighting
}

func (o NGramOptions) enabled() bool {
	return o.MinLength >= 1 && o.MaxLength >= o.MinLength
}

// TextOptions configures a FeaturizeText step.
type TextOptions struct {
	Lower              bool
	RemoveDiacritics   bool
	RemovePunctuations bool
	RemoveNumbers      bool
	StripHTML          bool
	// CleanTokens trims punctuation and symbols off both ends of each word
	CleanTokens     bool
	RemoveStopWords bool
	Stem            bool

	Words NGramOptions
	Chars NGramOptions

	// Normalize scales each featurized text to unit L2 norm
	Normalize bool
}

// DefaultTextOptions lowercases and strips diacritics, then extracts word uni- and
// bigrams and character trigrams weighted by term frequency, L2 normalized.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Lower:            true,
		RemoveDiacritics: true,
		Words: NGramOptions{
			MinLength: 1,
			MaxLength: 2,
			MaxTerms:  100000,
			MinCount:  1,
			Weighting: tfidf.TF,
		},
		Chars: NGramOptions{
			MinLength: 3,
			MaxLength: 3,
			MaxTerms:  100000,
			MinCount:  1,
			Weighting: tfidf.TF,
		},
		Normalize: true,
	}
}

// DefaultSteps is TextSteps with DefaultTextOptions.
func DefaultSteps() []Step {
	return TextSteps(DefaultTextOptions())
}

// TextSteps copies the label, featurizes the seven free text columns of a job
// posting with opts and concatenates them with the three numeric flags into Features.
// It panics if opts enable neither word nor char n-grams.
func TextSteps(opts TextOptions) []Step {
	texts := []string{
		jobposting.TitleColumn,
		jobposting.LocationColumn,
		jobposting.DepartmentColumn,
		jobposting.CompanyProfileColumn,
		jobposting.DescriptionColumn,
		jobposting.RequirementsColumn,
		jobposting.BenefitsColumn,
	}

	b := NewBuilder().CopyColumn(LabelColumn, jobposting.FraudulentColumn)
	var features []string
	for _, col := range texts {
		out := col + "Featurized"
		b.FeaturizeText(out, col, opts)
		features = append(features, out)
	}
	features = append(features,
		jobposting.TelecommutingColumn,
		jobposting.CompanyLogoColumn,
		jobposting.QuestionsColumn,
	)
	b.Concatenate(FeaturesColumn, features...)

	steps, err := b.Build()
	if err != nil {
		panic(err)
	}
	return steps
}
