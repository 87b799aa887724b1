package ranking

import (
	"fmt"
	"math"

	"github.com/kiteco/fraudfilter/kite-go/featurize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// Example is a labeled feature vector.
type Example struct {
	Features featurize.Vector
	Label    bool
}

// TrainerOptions configures TrainLogisticRegression.
type TrainerOptions struct {
	// L2 is the strength of the penalty L2/2·‖w‖², the bias is not penalized
	L2 float64
	// MaxIterations bounds the major iterations of the solver
	MaxIterations int
	// GradientTolerance stops the solver once the infinity norm of the gradient drops below it
	GradientTolerance float64
	// Threshold on the probability for the classifier's decisions
	Threshold float64
}

// DefaultTrainerOptions returns the options used when none are configured.
func DefaultTrainerOptions() TrainerOptions {
	return TrainerOptions{
		L2:                1e-3,
		MaxIterations:     1000,
		GradientTolerance: 1e-5,
		Threshold:         0.5,
	}
}

// Validate checks the options are usable.
func (o TrainerOptions) Validate() error {
	switch {
	case o.L2 < 0 || math.IsNaN(o.L2):
		return fmt.Errorf("l2 must be non-negative, got %v", o.L2)
	case o.MaxIterations < 1:
		return fmt.Errorf("max iterations must be positive, got %d", o.MaxIterations)
	case !(o.GradientTolerance > 0):
		return fmt.Errorf("gradient tolerance must be positive, got %v", o.GradientTolerance)
	case !(o.Threshold > 0 && o.Threshold < 1):
		return fmt.Errorf("threshold must be in (0, 1), got %v", o.Threshold)
	}
	return nil
}

// TrainingError is returned when a classifier cannot be fit.
type TrainingError struct {
	Reason string
	// Status the solver stopped with, optimize.NotTerminated if it did not run
	Status optimize.Status
	Err    error
}

func (e *TrainingError) Error() string {
	msg := "training failed: " + e.Reason
	if e.Status != optimize.NotTerminated {
		msg += fmt.Sprintf(" (solver status %s)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *TrainingError) Unwrap() error {
	return e.Err
}

// TrainStats describes a finished solver run.
type TrainStats struct {
	Status         optimize.Status
	Iterations     int
	FuncEvals      int
	Objective      float64
	GradientNorm   float64
	TrainExamples  int
	TrainPositives int
}

// acceptedGradient is the infinity norm of the gradient under which a solver run that
// stopped on a line search failure still counts as converged.
const acceptedGradient = 1e-3

// TrainLogisticRegression minimizes the mean log loss plus the L2 penalty over
// examples with L-BFGS.
func TrainLogisticRegression(examples []Example, opts TrainerOptions) (*BinaryClassifier, TrainStats, error) {
	var stats TrainStats
	if err := opts.Validate(); err != nil {
		return nil, stats, &TrainingError{Reason: "invalid options", Err: err}
	}
	if len(examples) == 0 {
		return nil, stats, &TrainingError{Reason: "no training examples"}
	}

	dim := examples[0].Features.Dim
	for i, ex := range examples {
		if ex.Features.Dim != dim {
			return nil, stats, &TrainingError{Reason: fmt.Sprintf("example %d has dimension %d, expected %d", i, ex.Features.Dim, dim)}
		}
		if ex.Label {
			stats.TrainPositives++
		}
	}
	stats.TrainExamples = len(examples)
	if stats.TrainPositives == 0 || stats.TrainPositives == len(examples) {
		return nil, stats, &TrainingError{Reason: "training set has a single class"}
	}

	obj := objective{examples: examples, dim: dim, l2: opts.L2}
	problem := optimize.Problem{
		Func: obj.value,
		Grad: obj.gradient,
	}
	settings := &optimize.Settings{
		GradientThreshold: opts.GradientTolerance,
		MajorIterations:   opts.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-9,
			Iterations: 50,
		},
	}

	result, err := optimize.Minimize(problem, make([]float64, dim+1), settings, &optimize.LBFGS{})
	if result == nil {
		return nil, stats, &TrainingError{Reason: "solver failed", Err: err}
	}

	stats.Status = result.Status
	stats.Iterations = result.MajorIterations
	stats.FuncEvals = result.FuncEvaluations
	stats.Objective = result.F
	if len(result.Gradient) > 0 {
		stats.GradientNorm = floats.Norm(result.Gradient, math.Inf(1))
	}

	if math.IsNaN(result.F) || math.IsInf(result.F, 0) || !allFinite(result.X) {
		return nil, stats, &TrainingError{Reason: "objective is not finite", Status: result.Status, Err: err}
	}
	if !converged(result.Status, stats.GradientNorm) {
		return nil, stats, &TrainingError{Reason: "solver did not converge", Status: result.Status, Err: err}
	}

	return &BinaryClassifier{
		ScorerType: LogisticRegressionType,
		Scorer: &LogisticRegression{
			Bias:  result.X[dim],
			Coefs: append([]float64(nil), result.X[:dim]...),
		},
		Threshold: opts.Threshold,
	}, stats, nil
}

func converged(status optimize.Status, gradNorm float64) bool {
	switch status {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence,
		optimize.FunctionThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return true
	case optimize.Failure:
		return gradNorm <= acceptedGradient
	}
	return false
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// objective is the regularized mean log loss over x = (w, b).
type objective struct {
	examples []Example
	dim      int
	l2       float64
}

func (o objective) margin(x []float64, ex Example) float64 {
	return ex.Features.Dot(x[:o.dim]) + x[o.dim]
}

func (o objective) value(x []float64) float64 {
	var loss float64
	for _, ex := range o.examples {
		z := o.margin(x, ex)
		loss += softplus(z)
		if ex.Label {
			loss -= z
		}
	}
	loss /= float64(len(o.examples))

	w := x[:o.dim]
	return loss + o.l2/2*floats.Dot(w, w)
}

func (o objective) gradient(grad, x []float64) {
	for i := range grad {
		grad[i] = 0
	}

	n := float64(len(o.examples))
	for _, ex := range o.examples {
		r := sigmoid(o.margin(x, ex))
		if ex.Label {
			r--
		}
		r /= n
		for k, i := range ex.Features.Indices {
			grad[i] += r * ex.Features.Values[k]
		}
		grad[o.dim] += r
	}

	floats.AddScaled(grad[:o.dim], o.l2, x[:o.dim])
}
