// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model defines the data contracts shared by trainers,
// selectors, and the recognizer.
package model

import "fmt"

const (
	// DefaultSeed provided for model implementations.
	DefaultSeed = 33
)

// Seq holds a flattened observation matrix and a parallel list of
// segment lengths, one per original sequence. The lengths sum to the
// number of rows. This is the exchange format passed to trainers and
// scorers.
type Seq struct {
	X       [][]float64
	Lengths []int
}

// NewSeq concatenates an ordered list of variable-length sequences.
// All observation vectors must share one dimensionality.
func NewSeq(seqs [][][]float64) (Seq, error) {

	if len(seqs) == 0 {
		return Seq{}, fmt.Errorf("model: no sequences")
	}
	var s Seq
	s.Lengths = make([]int, 0, len(seqs))
	for i, seq := range seqs {
		if len(seq) == 0 {
			return Seq{}, fmt.Errorf("model: sequence [%d] is empty", i)
		}
		s.Lengths = append(s.Lengths, len(seq))
		s.X = append(s.X, seq...)
	}
	ne := len(s.X[0])
	for i, v := range s.X {
		if len(v) != ne {
			return Seq{}, fmt.Errorf("model: observation [%d] has [%d] elements, expected [%d]", i, len(v), ne)
		}
	}
	return s, nil
}

// SubSeq concatenates the sequences at the given indices. Used to build
// cross-validation folds: splits are made on whole sequences so a
// sequence is never split across train and test.
func SubSeq(seqs [][][]float64, indices []int) (Seq, error) {

	if len(indices) == 0 {
		return Seq{}, fmt.Errorf("model: no sequence indices")
	}
	sub := make([][][]float64, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(seqs) {
			return Seq{}, fmt.Errorf("model: sequence index [%d] out of range [0,%d)", idx, len(seqs))
		}
		sub = append(sub, seqs[idx])
	}
	return NewSeq(sub)
}

// NumRows returns the number of observation vectors.
func (s Seq) NumRows() int { return len(s.X) }

// NumSeq returns the number of segments.
func (s Seq) NumSeq() int { return len(s.Lengths) }

// Dim returns the dimensionality of the observation vectors.
func (s Seq) Dim() int {
	if len(s.X) == 0 {
		return 0
	}
	return len(s.X[0])
}

// Segments returns the per-sequence views into the flattened matrix.
func (s Seq) Segments() [][][]float64 {

	out := make([][][]float64, 0, len(s.Lengths))
	var p int
	for _, n := range s.Lengths {
		out = append(out, s.X[p:p+n])
		p += n
	}
	return out
}

// A Scorer computes the log probability of a sequence set given the model.
type Scorer interface {

	// Total log-likelihood of the observations. Fails on dimensionality
	// mismatch or a degenerate model state.
	LogProb(x Seq) (float64, error)

	// Number of hidden states.
	NStates() int

	// Dimensionality of the observation vector.
	Dim() int
}

// A Fitter estimates model parameters for a candidate state count.
// The same inputs and seed must produce the same model.
type Fitter interface {
	Fit(x Seq, numStates int, seed int64) (Scorer, error)
}
