// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/glog"

	"github.com/akualab/gestrec/floatx"
	"github.com/akualab/gestrec/model"
	"github.com/akualab/gestrec/model/gaussian"
)

const (
	// DefaultMaxIter is the default expectation-maximization iteration budget.
	DefaultMaxIter = 20

	// DefaultThreshold is the default log-likelihood improvement needed
	// to continue iterating.
	DefaultThreshold = 0.01
)

// A Trainer estimates HMM parameters using Baum-Welch
// expectation-maximization. The same observations, state count, and
// seed always produce the same model.
type Trainer struct {
	maxIter   int
	threshold float64
}

// TrainOption type is used to pass options to NewTrainer().
type TrainOption func(*Trainer)

// NewTrainer creates a new HMM trainer.
func NewTrainer(options ...TrainOption) *Trainer {

	t := &Trainer{
		maxIter:   DefaultMaxIter,
		threshold: DefaultThreshold,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// MaxIter option sets the maximum number of EM iterations.
func MaxIter(n int) TrainOption {
	return func(t *Trainer) { t.maxIter = n }
}

// Threshold option sets the convergence threshold.
func Threshold(v float64) TrainOption {
	return func(t *Trainer) { t.threshold = v }
}

// Fit estimates an HMM with numStates hidden states from the
// observation sequences. Returns an error when the data cannot support
// the requested state count or when estimation degenerates.
func (t *Trainer) Fit(x model.Seq, numStates int, seed int64) (model.Scorer, error) {

	if numStates < 1 {
		return nil, fmt.Errorf("hmm: invalid num states [%d]", numStates)
	}
	if x.NumRows() < numStates {
		return nil, fmt.Errorf("hmm: insufficient data, [%d] rows for [%d] states", x.NumRows(), numStates)
	}

	m := flatStart(x, numStates, seed)

	prevLL := math.Inf(-1)
	for iter := 0; iter < t.maxIter; iter++ {
		ll, e := m.estimate(x)
		if e != nil {
			return nil, fmt.Errorf("hmm: iteration [%d]: %s", iter, e)
		}
		glog.V(3).Infof("em iteration %d, log prob %e", iter, ll)
		if iter > 0 && ll-prevLL < t.threshold {
			break
		}
		prevLL = ll
	}
	return m, nil
}

// flatStart initializes a model by segmenting every sequence uniformly
// across states. Means are perturbed with seeded noise so that
// different seeds explore different local optima while a fixed seed
// stays reproducible.
func flatStart(x model.Seq, n int, seed int64) *Model {

	ne := x.Dim()
	states := make([]*gaussian.Gaussian, n)
	for i := range states {
		states[i] = gaussian.NewGaussian(ne, nil, nil, fmt.Sprintf("state-%d", i))
	}

	for _, obs := range x.Segments() {
		T := len(obs)
		for t, o := range obs {
			states[t*n/T].Update(o, 1.0)
		}
	}
	for _, g := range states {
		g.Estimate()
	}

	r := rand.New(rand.NewSource(seed))
	for _, g := range states {
		for d := 0; d < ne; d++ {
			g.Mean[d] += r.NormFloat64() * gaussian.SMALL_SD * (1.0 + g.StdDev[d])
		}
		g.Clear()
	}

	logTransProbs := floatx.MakeFloat2D(n, n)
	logInitProbs := make([]float64, n)
	if n == 1 {
		logTransProbs[0][0] = 0.0
	} else {
		self := math.Log(0.5)
		other := math.Log(0.5 / float64(n-1))
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					logTransProbs[i][j] = self
				} else {
					logTransProbs[i][j] = other
				}
			}
		}
	}
	floatx.Fill(logInitProbs, -math.Log(float64(n)))

	return newModelFromLog(logTransProbs, logInitProbs, states, fmt.Sprintf("hmm-%d", n))
}

// estimate runs one EM iteration in place and returns the total
// log-likelihood of the data under the pre-update parameters.
//
// Reestimation of state transition probabilities for one sequence:
//
//	                 sum_{t=0}^{T-2} ζ(i,j,t)
//	a_hat(i,j) = ------------------------------
//	              sum_j sum_{t=0}^{T-2} ζ(i,j,t)
//
// Reestimation of initial state probabilities: π_hat(i) ∝ sum_k γ_k(i,0).
// Output distributions are reestimated from observations weighted by exp(γ).
func (m *Model) estimate(x model.Seq) (float64, error) {

	N := m.NumStates

	transAcc := floatx.MakeFloat2D(N, N)
	floatx.Fill2D(transAcc, math.Inf(-1))
	piAcc := make([]float64, N)
	floatx.Fill(piAcc, math.Inf(-1))
	for _, g := range m.States {
		g.Clear()
	}

	var totalLL float64
	for _, obs := range x.Segments() {
		T := len(obs)

		α, ll, e := m.logAlpha(obs)
		if e != nil {
			return 0, e
		}
		if math.IsNaN(ll) || math.IsInf(ll, -1) {
			return 0, fmt.Errorf("model [%s]: zero probability sequence", m.ModelName)
		}
		β, e := m.logBeta(obs)
		if e != nil {
			return 0, e
		}
		totalLL += ll

		// Cache output log probs: emit(t,j) = b(j,o(t)).
		emit := floatx.MakeFloat2D(T, N)
		for t, o := range obs {
			for j := 0; j < N; j++ {
				emit[t][j] = m.States[j].LogProb(o)
			}
		}

		// γ(i,t) = α(i,t) + β(i,t) - log P(O|Φ)
		for t := 0; t < T; t++ {
			for i := 0; i < N; i++ {
				γ := α[i][t] + β[i][t] - ll
				if t == 0 {
					piAcc[i] = floatx.LogAdd(piAcc[i], γ)
				}
				w := math.Exp(γ)
				if w > 0 {
					m.States[i].Update(obs[t], w)
				}
			}
		}

		// ζ(i,j,t) = α(i,t) + a(i,j) + b(j,o(t+1)) + β(j,t+1) - log P(O|Φ)
		for t := 0; t < T-1; t++ {
			for i := 0; i < N; i++ {
				for j := 0; j < N; j++ {
					v := α[i][t] + m.LogTransProbs[i][j] + emit[t+1][j] + β[j][t+1] - ll
					transAcc[i][j] = floatx.LogAdd(transAcc[i][j], v)
				}
			}
		}
	}

	// Transition probabilities.
	for i := 0; i < N; i++ {
		denom := floatx.LogSum(transAcc[i])
		if math.IsInf(denom, -1) {
			continue // no transitions observed out of state i, keep row
		}
		for j := 0; j < N; j++ {
			m.LogTransProbs[i][j] = transAcc[i][j] - denom
		}
	}

	// Initial state probabilities.
	piDenom := floatx.LogSum(piAcc)
	if !math.IsInf(piDenom, -1) {
		for i := 0; i < N; i++ {
			m.LogInitProbs[i] = piAcc[i] - piDenom
		}
	}

	// Output distributions.
	for i, g := range m.States {
		if g.NumSamples() < gaussian.MIN_NUM_SAMPLES {
			return 0, fmt.Errorf("model [%s]: state [%d] starved of data", m.ModelName, i)
		}
		if e := g.Estimate(); e != nil {
			return 0, e
		}
	}

	if math.IsNaN(totalLL) {
		return 0, fmt.Errorf("model [%s]: log prob is NaN", m.ModelName)
	}
	return totalLL, nil
}
