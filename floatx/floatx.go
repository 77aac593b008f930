// Package floatx provides slice math helpers for the model packages.
package floatx

import (
	"math"
)

type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrZeroLength = Error("floatx: zero length in slice definition")
	ErrLength     = Error("floatx: length mismatch")
)

// LogZero stands in for log(0) in log-domain computations.
const LogZero = -math.MaxFloat64

type ApplyFunc func(n int, v float64) float64

var Log = func(r int, v float64) float64 { return math.Log(v) }
var Exp = func(r int, v float64) float64 { return math.Exp(v) }
var Sq = func(r int, v float64) float64 { return v * v }
var Sqrt = func(r int, v float64) float64 { return math.Sqrt(v) }
var Inv = func(r int, v float64) float64 { return 1.0 / v }

func AddScalarFunc(f float64) ApplyFunc {
	return func(r int, v float64) float64 { return v + f }
}
func ScaleFunc(f float64) ApplyFunc {
	return func(r int, v float64) float64 { return v * f }
}
func SetValueFunc(f float64) ApplyFunc {
	return func(r int, v float64) float64 { return f }
}

// Apply function to 1D slice. If out slice is empty, the function is applied in place.
func Apply(fn ApplyFunc, in, out []float64) []float64 {

	n := len(in)
	if n == 0 {
		panic(ErrZeroLength)
	}
	if len(out) == 0 {
		out = in
	}
	for i := 0; i < n; i++ {
		out[i] = fn(i, in[i])
	}

	return out
}

func MakeFloat2D(n1, n2 int) [][]float64 {

	s := make([][]float64, n1)
	for i := 0; i < n1; i++ {
		s[i] = make([]float64, n2)
	}

	return s
}

func Check2D(s [][]float64) (n1, n2 int) {

	n1 = len(s)
	if n1 == 0 {
		panic(ErrZeroLength)
	}

	n2 = len(s[0])
	if n2 == 0 {
		panic(ErrZeroLength)
	}

	return n1, n2
}

// Set all values to zero.
func Clear(s []float64) {

	Apply(SetValueFunc(0), s, nil)
}

// Set all values to zero.
func Clear2D(s [][]float64) {

	for _, slice := range s {
		Clear(slice)
	}
}

// Fill sets all values to v.
func Fill(s []float64, v float64) {

	Apply(SetValueFunc(v), s, nil)
}

// Fill2D sets all values to v.
func Fill2D(s [][]float64, v float64) {

	for _, slice := range s {
		Fill(slice, v)
	}
}

// LogAdd returns log(exp(a) + exp(b)) without leaving the log domain.
func LogAdd(a, b float64) float64 {

	if a < b {
		a, b = b, a
	}
	if b <= LogZero {
		return a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// LogSum folds LogAdd over a slice.
func LogSum(s []float64) float64 {

	sum := math.Inf(-1)
	for _, v := range s {
		sum = LogAdd(sum, v)
	}
	return sum
}
