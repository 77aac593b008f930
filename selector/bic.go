// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selector

import (
	"math"

	"github.com/akualab/gestrec"
	"github.com/akualab/gestrec/model"
)

// BIC selects the state count minimizing the Bayesian information
// criterion:
//
//	BIC = -2 log L + p log N
//
// where L is the likelihood of the word's data, N the number of
// observation vectors, and p the number of free parameters. For a
// model with n states and diagonal Gaussian outputs of dimension d:
//
//	p = n*n + 2*n*d - 1
//
// counting the transition matrix (n*(n-1) free), initial state
// probabilities (n-1 free), and per-state means and variances (2*n*d).
type BIC struct {
	Base
}

// NewBIC creates a BIC selector.
func NewBIC(corpus *gestrec.Corpus, word string, config Config, fitter model.Fitter) (*BIC, error) {

	b, e := NewBase(corpus, word, config, fitter)
	if e != nil {
		return nil, e
	}
	return &BIC{Base: b}, nil
}

// Select searches the state count range for the lowest BIC score.
// Candidates that fail to train or score are skipped. If no candidate
// survives, falls back to the constant state count.
func (s *BIC) Select() (*Candidate, error) {

	x := s.corpus.Seq(s.word)
	numObs := float64(x.NumRows())
	d := float64(x.Dim())

	best := math.Inf(1)
	var bestCand *Candidate
	for n := s.config.MinN; n <= s.config.MaxN; n++ {
		m := s.fitOn(x, n)
		if m == nil {
			continue
		}
		ll, e := m.LogProb(x)
		if e != nil || math.IsInf(ll, -1) {
			s.logf("word [%s] n [%d]: unscorable candidate", s.word, n)
			continue
		}
		nf := float64(n)
		p := nf*nf + 2.0*nf*d - 1.0
		bic := -2.0*ll + p*math.Log(numObs)
		s.logf("word [%s] n [%d]: log prob %e, bic %e", s.word, n, ll, bic)
		if bic < best {
			best = bic
			bestCand = &Candidate{Word: s.word, N: n, scorer: m}
		}
	}
	if bestCand == nil {
		return s.fallback()
	}
	return bestCand, nil
}
