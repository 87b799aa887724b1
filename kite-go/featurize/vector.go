package featurize

import (
	"math"
	"sort"
)

// Vector is a sparse feature vector. Indices are sorted, unique and less than Dim.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Scalar returns a vector of dimension 1 holding v.
func Scalar(v float64) Vector {
	if v == 0 {
		return Vector{Dim: 1}
	}
	return Vector{Dim: 1, Indices: []int{0}, Values: []float64{v}}
}

// FromMap builds a vector of dimension dim from index -> value, dropping zeros.
func FromMap(dim int, m map[int]float64) Vector {
	v := Vector{Dim: dim}
	for i, x := range m {
		if x != 0 {
			v.Indices = append(v.Indices, i)
		}
	}
	sort.Ints(v.Indices)
	v.Values = make([]float64, len(v.Indices))
	for k, i := range v.Indices {
		v.Values[k] = m[i]
	}
	return v
}

// At returns the value at index i.
func (v Vector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// Dot returns the dot product with a dense vector of length at least Dim.
func (v Vector) Dot(w []float64) float64 {
	var s float64
	for k, i := range v.Indices {
		s += v.Values[k] * w[i]
	}
	return s
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	var s float64
	for _, x := range v.Values {
		s += x * x
	}
	return math.Sqrt(s)
}

// Normalized returns a copy scaled to unit L2 norm. The zero vector is returned as is.
func (v Vector) Normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	out := Vector{
		Dim:     v.Dim,
		Indices: v.Indices,
		Values:  make([]float64, len(v.Values)),
	}
	for k, x := range v.Values {
		out.Values[k] = x / n
	}
	return out
}

// Dense returns the vector as a dense slice.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// Concat joins vectors in order, each placed after the dimensions of the previous ones.
func Concat(vs ...Vector) Vector {
	var out Vector
	for _, v := range vs {
		for k, i := range v.Indices {
			out.Indices = append(out.Indices, out.Dim+i)
			out.Values = append(out.Values, v.Values[k])
		}
		out.Dim += v.Dim
	}
	return out
}
