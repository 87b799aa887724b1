package featurize

import (
	"fmt"

	"github.com/kiteco/fraudfilter/kite-go/jobposting"
)

// Builder declares an ordered list of steps.
type Builder struct {
	schema jobposting.Schema
	steps  []Step
}

// NewBuilder returns a Builder over the default job posting schema.
func NewBuilder() *Builder {
	return &Builder{schema: jobposting.DefaultSchema()}
}

// WithSchema sets the schema input columns are resolved against.
func (b *Builder) WithSchema(s jobposting.Schema) *Builder {
	b.schema = s
	return b
}

// CopyColumn aliases input as output.
func (b *Builder) CopyColumn(output, input string) *Builder {
	b.steps = append(b.steps, Step{Kind: CopyColumn, Output: output, Inputs: []string{input}})
	return b
}

// FeaturizeText featurizes the text column input into output.
func (b *Builder) FeaturizeText(output, input string, opts TextOptions) *Builder {
	b.steps = append(b.steps, Step{Kind: FeaturizeText, Output: output, Inputs: []string{input}, Text: &opts})
	return b
}

// Concatenate joins the numeric inputs, in order, into output.
func (b *Builder) Concatenate(output string, inputs ...string) *Builder {
	b.steps = append(b.steps, Step{Kind: Concatenate, Output: output, Inputs: append([]string(nil), inputs...)})
	return b
}

// Build validates the declared steps and returns a copy of them.
func (b *Builder) Build() ([]Step, error) {
	if _, err := resolve(b.steps, b.schema); err != nil {
		return nil, err
	}
	steps := make([]Step, len(b.steps))
	for i, s := range b.steps {
		steps[i] = s.clone()
	}
	return steps, nil
}

func (s Step) clone() Step {
	c := s
	c.Inputs = append([]string(nil), s.Inputs...)
	if s.Text != nil {
		t := *s.Text
		c.Text = &t
	}
	return c
}

type columnKind int

const (
	textKind columnKind = iota
	numericKind
)

// columns tracks what every column defined so far holds.
type columns struct {
	kinds map[string]columnKind
	// texts maps text columns, aliases included, to the schema column they read
	texts map[string]string
}

// resolve checks that every step is well formed and only reads columns the schema or
// an earlier step defines.
func resolve(steps []Step, schema jobposting.Schema) (*columns, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("no steps")
	}

	cols := &columns{
		kinds: make(map[string]columnKind),
		texts: make(map[string]string),
	}
	for _, c := range schema.Columns {
		if c.Type == jobposting.Text {
			cols.kinds[c.Name] = textKind
			cols.texts[c.Name] = c.Name
		} else {
			cols.kinds[c.Name] = numericKind
		}
	}

	for i, s := range steps {
		if err := cols.add(s); err != nil {
			return nil, fmt.Errorf("step %d (%s %s): %v", i, s.Kind, s.Output, err)
		}
	}
	return cols, nil
}

func (c *columns) add(s Step) error {
	if s.Output == "" {
		return fmt.Errorf("empty output name")
	}
	if _, exists := c.kinds[s.Output]; exists {
		return fmt.Errorf("column %s already defined", s.Output)
	}
	if len(s.Inputs) == 0 {
		return fmt.Errorf("no inputs")
	}
	for _, in := range s.Inputs {
		if in == "" {
			return fmt.Errorf("empty input name")
		}
		if _, ok := c.kinds[in]; !ok {
			return fmt.Errorf("undefined column %s", in)
		}
	}

	switch s.Kind {
	case CopyColumn:
		if len(s.Inputs) != 1 {
			return fmt.Errorf("expected 1 input, got %d", len(s.Inputs))
		}
		in := s.Inputs[0]
		c.kinds[s.Output] = c.kinds[in]
		if src, ok := c.texts[in]; ok {
			c.texts[s.Output] = src
		}
	case FeaturizeText:
		if len(s.Inputs) != 1 {
			return fmt.Errorf("expected 1 input, got %d", len(s.Inputs))
		}
		if s.Text == nil {
			return fmt.Errorf("missing text options")
		}
		if c.kinds[s.Inputs[0]] != textKind {
			return fmt.Errorf("%s is not a text column", s.Inputs[0])
		}
		if !s.Text.Words.enabled() && !s.Text.Chars.enabled() {
			return fmt.Errorf("neither word nor char n-grams enabled")
		}
		c.kinds[s.Output] = numericKind
	case Concatenate:
		for _, in := range s.Inputs {
			if c.kinds[in] != numericKind {
				return fmt.Errorf("%s is not numeric", in)
			}
		}
		c.kinds[s.Output] = numericKind
	default:
		return fmt.Errorf("unknown step kind %q", s.Kind)
	}
	return nil
}
