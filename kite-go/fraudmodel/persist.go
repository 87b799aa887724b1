package fraudmodel

import (
	"fmt"
	"time"

	"github.com/kiteco/fraudfilter/kite-go/featurize"
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/kiteco/fraudfilter/kite-go/ranking"
	"github.com/kiteco/fraudfilter/kite-golib/fileutil"
	"github.com/kiteco/fraudfilter/kite-golib/serialization"
)

// Identify artifacts written by Save.
const (
	ArtifactFormat  = "fraudfilter.pipeline"
	ArtifactVersion = 1
)

// DefaultModelPath is where the train command writes the model.
const DefaultModelPath = "models/model.gob.gz"

// PersistError is returned when a pipeline cannot be saved or loaded.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persisting %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Artifact is the serialized form of a Pipeline.
type Artifact struct {
	Format     string
	Version    int
	RunID      string
	CreatedAt  time.Time
	Schema     jobposting.Schema
	Steps      []featurize.FittedStep
	Texts      map[string]string
	Classifier *ranking.BinaryClassifier
	Threshold  float64
}

// Save writes p to path, local or s3://, encoded according to the extension: .gob or
// .json, optionally followed by .gz. schema must be the one p was fit with. The
// artifact is encoded in full before the destination is touched; an existing file at
// path is replaced.
func Save(p *Pipeline, schema jobposting.Schema, path string) error {
	if p == nil || p.Transformer == nil || p.Classifier == nil {
		return &PersistError{Path: path, Err: fmt.Errorf("pipeline is not fitted")}
	}
	if !schema.Equal(p.Schema) {
		return &PersistError{Path: path, Err: fmt.Errorf("schema does not match the schema the pipeline was fit with")}
	}

	a := Artifact{
		Format:     ArtifactFormat,
		Version:    ArtifactVersion,
		RunID:      p.RunID,
		CreatedAt:  p.CreatedAt,
		Schema:     p.Schema,
		Steps:      p.Transformer.Steps,
		Texts:      p.Transformer.Texts,
		Classifier: p.Classifier,
		Threshold:  p.Threshold,
	}

	data, err := serialization.EncodeBytes(path, a)
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}

// Load reads a pipeline written by Save.
func Load(path string) (*Pipeline, error) {
	var a Artifact
	if err := serialization.Decode(path, &a); err != nil {
		return nil, &PersistError{Path: path, Err: err}
	}
	if err := a.validate(); err != nil {
		return nil, &PersistError{Path: path, Err: err}
	}

	return &Pipeline{
		Schema: a.Schema,
		Transformer: &featurize.Transformer{
			Steps: a.Steps,
			Texts: a.Texts,
		},
		Classifier: a.Classifier,
		Threshold:  a.Threshold,
		RunID:      a.RunID,
		CreatedAt:  a.CreatedAt,
	}, nil
}

func (a Artifact) validate() error {
	if a.Format != ArtifactFormat {
		return fmt.Errorf("not a pipeline artifact (format %q)", a.Format)
	}
	if a.Version != ArtifactVersion {
		return fmt.Errorf("unsupported artifact version %d, expected %d", a.Version, ArtifactVersion)
	}
	if err := a.Schema.Validate(); err != nil {
		return fmt.Errorf("invalid schema: %v", err)
	}
	if a.Classifier == nil || a.Classifier.Scorer == nil {
		return fmt.Errorf("artifact has no classifier")
	}
	if !(a.Threshold > 0 && a.Threshold < 1) {
		return fmt.Errorf("invalid threshold %v", a.Threshold)
	}

	tr := featurize.Transformer{Steps: a.Steps, Texts: a.Texts}
	if tr.Dim() == 0 {
		return fmt.Errorf("artifact has no %s step", featurize.FeaturesColumn)
	}
	if lr, ok := a.Classifier.Scorer.(*ranking.LogisticRegression); ok && len(lr.Coefs) != tr.Dim() {
		return fmt.Errorf("classifier expects %d features, steps produce %d", len(lr.Coefs), tr.Dim())
	}
	for _, s := range a.Steps {
		if s.Kind == featurize.FeaturizeText && s.Model == nil {
			return fmt.Errorf("step %s has no fitted text model", s.Output)
		}
		if s.Kind == featurize.Concatenate && (len(s.Offsets) != len(s.Inputs) || len(s.Dims) != len(s.Inputs)) {
			return fmt.Errorf("step %s has inconsistent offsets", s.Output)
		}
	}
	return nil
}
