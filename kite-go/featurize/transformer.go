package featurize

import (
	"fmt"

	"github.com/kiteco/fraudfilter/kite-go/jobposting"
)

// FittedStep is a Step along with the state learned when fitting it.
type FittedStep struct {
	Step
	// Dim of the output, 0 for text aliases
	Dim int
	// Model is set for FeaturizeText steps
	Model *TextModel
	// Offsets and Dims of each input within the output, set for Concatenate steps
	Offsets []int
	Dims    []int
}

// Transformer applies fitted steps to records. It is not modified after Fit and can be
// used from multiple goroutines.
type Transformer struct {
	Steps []FittedStep
	// Texts maps every text column, aliases included, to the schema column it reads
	Texts map[string]string
}

// Fit fits steps, in order, on the train records only. The output must define
// FeaturesColumn.
func Fit(steps []Step, schema jobposting.Schema, train []jobposting.Record) (*Transformer, error) {
	cols, err := resolve(steps, schema)
	if err != nil {
		return nil, err
	}
	if kind, ok := cols.kinds[FeaturesColumn]; !ok || kind != numericKind {
		return nil, fmt.Errorf("steps do not define a numeric %s column", FeaturesColumn)
	}

	t := &Transformer{Texts: cols.texts}
	dims := make(map[string]int)
	for _, c := range schema.Columns {
		if c.Type != jobposting.Text {
			dims[c.Name] = 1
		}
	}

	for _, s := range steps {
		fs := FittedStep{Step: s.clone()}
		switch s.Kind {
		case CopyColumn:
			fs.Dim = dims[s.Inputs[0]]
		case FeaturizeText:
			docs := make([]string, len(train))
			for i, r := range train {
				docs[i] = t.text(r, s.Inputs[0])
			}
			fs.Model = FitText(*s.Text, docs)
			fs.Dim = fs.Model.Dim()
		case Concatenate:
			for _, in := range s.Inputs {
				fs.Offsets = append(fs.Offsets, fs.Dim)
				fs.Dims = append(fs.Dims, dims[in])
				fs.Dim += dims[in]
			}
		}
		dims[s.Output] = fs.Dim
		t.Steps = append(t.Steps, fs)
	}
	return t, nil
}

// Dim returns the dimension of the feature vectors.
func (t *Transformer) Dim() int {
	for _, s := range t.Steps {
		if s.Output == FeaturesColumn {
			return s.Dim
		}
	}
	return 0
}

// Transform returns the feature vector of r.
func (t *Transformer) Transform(r jobposting.Record) Vector {
	return t.columns(r)[FeaturesColumn]
}

// Label returns the value of LabelColumn for r, false if the steps define no label.
func (t *Transformer) Label(r jobposting.Record) (label bool, ok bool) {
	v, ok := t.columns(r)[LabelColumn]
	if !ok {
		return false, false
	}
	return v.At(0) != 0, true
}

// Example returns the feature vector of r along with the value of LabelColumn,
// featurizing r once. ok is false if the steps define no label.
func (t *Transformer) Example(r jobposting.Record) (feats Vector, label bool, ok bool) {
	vecs := t.columns(r)
	feats = vecs[FeaturesColumn]
	if v, found := vecs[LabelColumn]; found {
		return feats, v.At(0) != 0, true
	}
	return feats, false, false
}

// Column returns the vector the steps produce for a numeric column.
func (t *Transformer) Column(r jobposting.Record, name string) (Vector, bool) {
	v, ok := t.columns(r)[name]
	return v, ok
}

func (t *Transformer) columns(r jobposting.Record) map[string]Vector {
	vecs := make(map[string]Vector, len(t.Steps))
	for _, s := range t.Steps {
		switch s.Kind {
		case CopyColumn:
			if _, isText := t.Texts[s.Output]; !isText {
				vecs[s.Output] = value(vecs, r, s.Inputs[0])
			}
		case FeaturizeText:
			vecs[s.Output] = s.Model.Transform(t.text(r, s.Inputs[0]))
		case Concatenate:
			out := Vector{Dim: s.Dim}
			for i, in := range s.Inputs {
				v := value(vecs, r, in)
				for k, idx := range v.Indices {
					if idx < s.Dims[i] {
						out.Indices = append(out.Indices, s.Offsets[i]+idx)
						out.Values = append(out.Values, v.Values[k])
					}
				}
			}
			vecs[s.Output] = out
		}
	}
	return vecs
}

func (t *Transformer) text(r jobposting.Record, name string) string {
	s, _ := r.Text(t.Texts[name])
	return s
}

func value(vecs map[string]Vector, r jobposting.Record, name string) Vector {
	if v, ok := vecs[name]; ok {
		return v
	}
	f, _ := r.Float(name)
	return Scalar(f)
}
