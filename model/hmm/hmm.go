// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmm provides a hidden Markov model with Gaussian output
distributions for isolated-gesture recognition. Model scoring uses the
forward algorithm in the log domain. Parameter estimation (Trainer)
uses Baum-Welch expectation-maximization.
*/
package hmm

import (
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/akualab/gestrec/floatx"
	"github.com/akualab/gestrec/model"
	"github.com/akualab/gestrec/model/gaussian"
)

// Model is a hidden Markov model with Gaussian output distributions.
//
// q(t) is the state at time t, states are labeled {0,1,...,N-1}.
// Transition and initial state probabilities are kept in the log domain:
//
//	a(i,j) = log(P[q(t+1) = j | q(t) = i]); 0 <= i,j <= N-1
//	π(i)   = log(P[q(0) = i]); 0 <= i < N
type Model struct {

	// Model name.
	ModelName string `json:"name"`

	// Number of hidden states.
	NumStates int `json:"num_states"`

	// Num elements in the observation vector.
	NumElements int `json:"num_elements"`

	// State-transition probability distribution matrix (log scale).
	// [NumStates x NumStates]
	LogTransProbs [][]float64 `json:"log_trans_probs"`

	// Initial state distribution (log scale). [NumStates x 1]
	LogInitProbs []float64 `json:"log_init_probs"`

	// Output probability distribution functions. [NumStates x 1]
	States []*gaussian.Gaussian `json:"states"`
}

// Define functions for elementwise transformations.
var log = func(r int, v float64) float64 { return math.Log(v) }

// NewModel creates a new HMM from linear-domain parameters.
func NewModel(transProbs [][]float64, initialStateProbs []float64, states []*gaussian.Gaussian, name string) (*Model, error) {

	r, c := floatx.Check2D(transProbs)
	r1 := len(initialStateProbs)

	if r != c {
		return nil, fmt.Errorf("trans probs matrix is not square: [%d x %d]", r, c)
	}
	if r != r1 {
		return nil, fmt.Errorf("num states mismatch, transProbs has [%d] and initialStateProbs has [%d]", r, r1)
	}
	if r != len(states) {
		return nil, fmt.Errorf("num states mismatch, transProbs has [%d] and states has [%d]", r, len(states))
	}

	logTransProbs := floatx.MakeFloat2D(r, r)
	logInitProbs := make([]float64, r)
	for i := range transProbs {
		floatx.Apply(log, transProbs[i], logTransProbs[i])
	}
	floatx.Apply(log, initialStateProbs, logInitProbs)

	glog.V(2).Infof("new hmm [%s], num states = %d", name, r)

	m := &Model{
		ModelName:     name,
		NumStates:     r,
		NumElements:   states[0].NumElements(),
		LogTransProbs: logTransProbs,
		LogInitProbs:  logInitProbs,
		States:        states,
	}
	return m, nil
}

// newModelFromLog creates a new HMM from log-domain parameters.
func newModelFromLog(logTransProbs [][]float64, logInitProbs []float64, states []*gaussian.Gaussian, name string) *Model {

	return &Model{
		ModelName:     name,
		NumStates:     len(logInitProbs),
		NumElements:   states[0].NumElements(),
		LogTransProbs: logTransProbs,
		LogInitProbs:  logInitProbs,
		States:        states,
	}
}

// Initialize rebuilds the derived state parameters. Must be called
// after the model is restored from serialized data.
func (m *Model) Initialize() error {

	if m.NumStates < 1 {
		return fmt.Errorf("model [%s] has no states", m.ModelName)
	}
	if len(m.States) != m.NumStates || len(m.LogInitProbs) != m.NumStates ||
		len(m.LogTransProbs) != m.NumStates {
		return fmt.Errorf("model [%s] has inconsistent state dimensions", m.ModelName)
	}
	for _, g := range m.States {
		g.Initialize()
	}
	return nil
}

// NStates returns the number of hidden states.
func (m *Model) NStates() int { return m.NumStates }

// Dim is the dimensionality of the observation vector.
func (m *Model) Dim() int { return m.NumElements }

// Name returns the name of the model.
func (m *Model) Name() string { return m.ModelName }

// LogProb returns the total log probability of the observation
// sequences given the model. Fails on dimensionality mismatch or when
// the model assigns zero probability to the data.
func (m *Model) LogProb(x model.Seq) (float64, error) {

	if x.Dim() != m.NumElements {
		return math.Inf(-1), fmt.Errorf("model [%s]: mismatch in num elements, observations have [%d] expected [%d]",
			m.ModelName, x.Dim(), m.NumElements)
	}

	var logProb float64
	for _, obs := range x.Segments() {
		_, ll, e := m.logAlpha(obs)
		if e != nil {
			return math.Inf(-1), e
		}
		logProb += ll
	}
	if math.IsNaN(logProb) || math.IsInf(logProb, -1) {
		return math.Inf(-1), fmt.Errorf("model [%s]: degenerate log prob", m.ModelName)
	}
	return logProb, nil
}

// Compute log alphas. Indices are: α(state, time)
//
// 1. Initialization: α(i,0) =  π(i) b(i,o(0)); 0<=i<N
// 2. Induction:      α(j,t+1) =  sum_{i=0}^{N-1}[α(i,t)a(i,j)] b(j,o(t+1)); 0<=t<T-1; 0<=j<N
// 3. Termination:    P(O/Φ) = sum_{i=0}^{N-1} α(i,T-1)
//
// The sums are computed with LogAdd so no scaling pass is needed.
func (m *Model) logAlpha(obs [][]float64) (α [][]float64, logProb float64, e error) {

	N := m.NumStates
	T := len(obs)
	if T == 0 {
		return nil, 0, fmt.Errorf("model [%s]: empty observation sequence", m.ModelName)
	}
	if len(obs[0]) != m.NumElements {
		return nil, 0, fmt.Errorf("model [%s]: mismatch in num elements, observations have [%d] expected [%d]",
			m.ModelName, len(obs[0]), m.NumElements)
	}

	α = floatx.MakeFloat2D(N, T)

	// 1. Initialization. Add in the log domain.
	for i := 0; i < N; i++ {
		α[i][0] = m.LogInitProbs[i] + m.States[i].LogProb(obs[0])
	}

	// 2. Induction.
	for t := 0; t < T-1; t++ {
		for j := 0; j < N; j++ {
			sum := math.Inf(-1)
			for i := 0; i < N; i++ {
				sum = floatx.LogAdd(sum, α[i][t]+m.LogTransProbs[i][j])
			}
			α[j][t+1] = sum + m.States[j].LogProb(obs[t+1])
		}
	}

	// 3. Termination.
	logProb = math.Inf(-1)
	for i := 0; i < N; i++ {
		logProb = floatx.LogAdd(logProb, α[i][T-1])
	}
	return
}

// Compute log betas. Indices are: β(state, time)
//
// 1. Initialization: β(i,T-1) = 1;  0<=i<N
// 2. Induction:      β(i,t) =  sum_{j=0}^{N-1} a(i,j) b(j,o(t+1)) β(j,t+1); t=T-2,...,0; 0<=i<N
func (m *Model) logBeta(obs [][]float64) (β [][]float64, e error) {

	N := m.NumStates
	T := len(obs)
	if T == 0 {
		return nil, fmt.Errorf("model [%s]: empty observation sequence", m.ModelName)
	}

	β = floatx.MakeFloat2D(N, T)

	// 1. Initialization. log(1) = 0.
	for i := 0; i < N; i++ {
		β[i][T-1] = 0.0
	}

	// 2. Induction.
	for t := T - 2; t >= 0; t-- {
		for i := 0; i < N; i++ {
			sum := math.Inf(-1)
			for j := 0; j < N; j++ {
				sum = floatx.LogAdd(sum, m.LogTransProbs[i][j]+
					m.States[j].LogProb(obs[t+1])+
					β[j][t+1])
			}
			β[i][t] = sum
		}
	}
	return
}

// Viterbi computes the most probable sequence of states for the
// observations. These are the equations in log scale:
//
//	delta(j, 0) = π(j) + b(j, 0)                              j in [0, N-1]
//	delta(j, t) = max_k [ delta(k, t-1) + a(k, j) + b(j, t) ]  t in [1, T-1]
//	index(j, t) = argmax_k [ delta(k, t-1) + a(k,j) + b(j, t) ]
//
// The decoded sequence is recovered by backtracking from
// argmax_j delta(j, T-1).
func (m *Model) Viterbi(obs [][]float64) (bt []int, logViterbiProb float64, e error) {

	N := m.NumStates
	T := len(obs)
	if T == 0 {
		return nil, 0, fmt.Errorf("model [%s]: empty observation sequence", m.ModelName)
	}
	if len(obs[0]) != m.NumElements {
		return nil, 0, fmt.Errorf("model [%s]: mismatch in num elements, observations have [%d] expected [%d]",
			m.ModelName, len(obs[0]), m.NumElements)
	}

	delta := floatx.MakeFloat2D(N, T)
	index := make([][]int, N)
	bt = make([]int, T)
	for i := 0; i < N; i++ {
		index[i] = make([]int, T)
	}

	// Init delta.
	for i := 0; i < N; i++ {
		delta[i][0] = m.LogInitProbs[i] + m.States[i].LogProb(obs[0])
	}

	// Recursion.
	for t := 1; t < T; t++ {
		for i := 0; i < N; i++ {
			b := m.States[i].LogProb(obs[t])
			max := delta[0][t-1] + m.LogTransProbs[0][i] + b
			argmax := 0
			for k := 1; k < N; k++ {
				tempProb := delta[k][t-1] + m.LogTransProbs[k][i] + b
				if tempProb > max {
					max = tempProb
					argmax = k
				}
			}
			delta[i][t] = max
			index[i][t] = argmax
		}
	}

	// Decoding.
	max := delta[0][T-1]
	argmax := 0
	for i := 1; i < N; i++ {
		if delta[i][T-1] > max {
			max = delta[i][T-1]
			argmax = i
		}
	}
	bt[T-1] = argmax
	logViterbiProb = max

	for t := T - 2; t >= 0; t-- {
		bt[t] = index[bt[t+1]][t+1]
	}

	return
}
