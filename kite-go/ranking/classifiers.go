package ranking

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"math"

	"github.com/kiteco/fraudfilter/kite-go/featurize"
)

func init() {
	gob.Register(&LogisticRegression{})
}

// LogisticRegressionType is the ScorerType of a LogisticRegression scorer.
const LogisticRegressionType = "logistic_regression"

// Scorer scores feature vectors for a binary classifier.
type Scorer interface {
	// Margin returns the raw, uncalibrated score of feats
	Margin(feats featurize.Vector) float64
	// Evaluate returns the probability of feats to be classified as class 1 (v.s. 0)
	Evaluate(feats featurize.Vector) float64
}

// BinaryClassifier is a binary classifier (could be an SVM classifier or a Logistic Regression classifier ect)
type BinaryClassifier struct {
	ScorerType string
	Scorer     Scorer
	// Threshold on the probability above which a vector is classified as class 1
	Threshold float64
}

// PredictProba returns the probability of feat to be classified as class 1 (v.s. 0) given the model.
func (c *BinaryClassifier) PredictProba(feat featurize.Vector) float64 {
	return c.Scorer.Evaluate(feat)
}

// Predict returns the predicted class of feat along with its probability and raw score.
func (c *BinaryClassifier) Predict(feat featurize.Vector) (label bool, prob, score float64) {
	score = c.Scorer.Margin(feat)
	prob = sigmoid(score)
	return prob >= c.Threshold, prob, score
}

// UnmarshalJSON decodes a classifier, picking the concrete scorer from ScorerType.
func (c *BinaryClassifier) UnmarshalJSON(data []byte) error {
	var intermediate struct {
		Scorer     json.RawMessage
		ScorerType string
		Threshold  float64
	}
	if err := json.Unmarshal(data, &intermediate); err != nil {
		return err
	}

	switch intermediate.ScorerType {
	case LogisticRegressionType:
		var lr LogisticRegression
		if err := json.Unmarshal(intermediate.Scorer, &lr); err != nil {
			return err
		}
		if len(lr.Coefs) == 0 {
			return fmt.Errorf("length of coefficients is 0")
		}
		c.Scorer = &lr
	default:
		return fmt.Errorf("unknown scorer type %q", intermediate.ScorerType)
	}
	c.ScorerType = intermediate.ScorerType
	c.Threshold = intermediate.Threshold
	return nil
}

// LogisticRegression represents a binary logistic regression classifier
type LogisticRegression struct {
	Bias  float64
	Coefs []float64
}

// Margin returns the linear score of the feature vector. Indices past the
// coefficients are ignored.
func (l *LogisticRegression) Margin(feats featurize.Vector) float64 {
	score := l.Bias
	for k, i := range feats.Indices {
		if i < len(l.Coefs) {
			score += feats.Values[k] * l.Coefs[i]
		}
	}
	return score
}

// Evaluate returns the probability of the feature vector to be classified as class 1 (v.s. 0) given
// the model.
func (l *LogisticRegression) Evaluate(feats featurize.Vector) float64 {
	return sigmoid(l.Margin(feats))
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// softplus returns log(1 + exp(z)) without overflowing.
func softplus(z float64) float64 {
	return math.Max(z, 0) + math.Log1p(math.Exp(-math.Abs(z)))
}
