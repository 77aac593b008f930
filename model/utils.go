package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// RandNormalVector returns a random observation vector drawn from a
// diagonal Gaussian.
func RandNormalVector(mean, std []float64, r *rand.Rand) ([]float64, error) {

	if !floats.EqualLengths(mean, std) {
		return nil, fmt.Errorf("cannot generate random vectors, length of mean [%d] and std [%d] don't match",
			len(mean), len(std))
	}
	vector := make([]float64, len(mean))
	for i := range mean {
		vector[i] = r.NormFloat64()*std[i] + mean[i]
	}

	return vector, nil
}

// RandIntFromDist generates a random index given a discrete prob distribution.
func RandIntFromDist(dist []float64, r *rand.Rand) (int, error) {

	N := len(dist)
	if N == 0 {
		return -1, fmt.Errorf("prob distribution has len 0")
	}
	ran := r.Float64()
	cum := 0.0
	for i := 0; i < N; i++ {
		cum = cum + dist[i]
		if ran < cum {
			return i, nil
		}
	}
	if math.Abs(cum-1.0) > 0.001 {
		return -1, fmt.Errorf("distribution doesn't sum to 1, got [%f]", cum)
	}
	return N - 1, nil
}
