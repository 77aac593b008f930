package hmm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/akualab/gestrec/floatx"
	"github.com/akualab/gestrec/model"
)

// Sample generates a random observation sequence of the given length
// from the model. Used to create synthetic data for tests and fixtures.
func (m *Model) Sample(r *rand.Rand, length int) ([][]float64, error) {

	if length < 1 {
		return nil, fmt.Errorf("model [%s]: invalid sample length [%d]", m.ModelName, length)
	}

	exp := func(i int, v float64) float64 { return math.Exp(v) }
	initDist := floatx.Apply(exp, m.LogInitProbs, make([]float64, m.NumStates))

	state, e := model.RandIntFromDist(initDist, r)
	if e != nil {
		return nil, e
	}

	obs := make([][]float64, length)
	dist := make([]float64, m.NumStates)
	for t := 0; t < length; t++ {
		o, eo := m.States[state].Sample(r)
		if eo != nil {
			return nil, eo
		}
		obs[t] = o

		floatx.Apply(exp, m.LogTransProbs[state], dist)
		state, e = model.RandIntFromDist(dist, r)
		if e != nil {
			return nil, e
		}
	}
	return obs, nil
}

// SampleN generates num random observation sequences of the given length.
func (m *Model) SampleN(r *rand.Rand, num, length int) ([][][]float64, error) {

	seqs := make([][][]float64, num)
	for i := range seqs {
		obs, e := m.Sample(r, length)
		if e != nil {
			return nil, e
		}
		seqs[i] = obs
	}
	return seqs, nil
}
