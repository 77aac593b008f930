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

// NumFolds is the number of cross-validation splits.
const NumFolds = 2

// CV selects the state count maximizing the mean held-out
// log-likelihood over k folds. Splits are made on whole sequences so
// no sequence is shared between a training and a test fold. After the
// search, the winning state count is refit on all of the word's data
// so the final model sees every sequence.
type CV struct {
	Base
}

// NewCV creates a cross-validation selector.
func NewCV(corpus *gestrec.Corpus, word string, config Config, fitter model.Fitter) (*CV, error) {

	b, e := NewBase(corpus, word, config, fitter)
	if e != nil {
		return nil, e
	}
	return &CV{Base: b}, nil
}

// kfold splits the indices [0,num) into k consecutive folds. The first
// num%k folds get one extra index. Each returned pair is a disjoint
// (train, test) partition.
func kfold(num, k int) (train, test [][]int) {

	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = num / k
		if i < num%k {
			sizes[i]++
		}
	}
	var start int
	for _, size := range sizes {
		te := make([]int, 0, size)
		tr := make([]int, 0, num-size)
		for i := 0; i < num; i++ {
			if i >= start && i < start+size {
				te = append(te, i)
			} else {
				tr = append(tr, i)
			}
		}
		train = append(train, tr)
		test = append(test, te)
		start += size
	}
	return train, test
}

// Select searches the state count range for the best mean held-out
// log-likelihood. With fewer sequences than folds, or when no
// candidate survives, falls back to the constant state count.
func (s *CV) Select() (*Candidate, error) {

	seqs := s.corpus.Sequences(s.word)
	if len(seqs) < NumFolds {
		s.logf("word [%s]: only [%d] sequences, cannot cross-validate", s.word, len(seqs))
		return s.fallback()
	}
	trainIdx, testIdx := kfold(len(seqs), NumFolds)

	best := math.Inf(-1)
	bestN := 0
	for n := s.config.MinN; n <= s.config.MaxN; n++ {

		var sum float64
		scored := 0
		for fold := 0; fold < NumFolds; fold++ {
			train, e := model.SubSeq(seqs, trainIdx[fold])
			if e != nil {
				return nil, e
			}
			test, e := model.SubSeq(seqs, testIdx[fold])
			if e != nil {
				return nil, e
			}

			m := s.fitOn(train, n)
			if m == nil {
				continue
			}
			ll, e := m.LogProb(test)
			if e != nil || math.IsInf(ll, -1) {
				s.logf("word [%s] n [%d] fold [%d]: unscorable held-out data", s.word, n, fold)
				continue
			}
			sum += ll
			scored++
		}
		if scored == 0 {
			continue
		}

		mean := sum / float64(scored)
		s.logf("word [%s] n [%d]: mean held-out log prob %e over %d folds", s.word, n, mean, scored)
		if mean > best {
			best = mean
			bestN = n
		}
	}
	if bestN == 0 {
		return s.fallback()
	}

	// Refit the winner on the full data.
	m := s.fit(bestN)
	if m == nil {
		return s.fallback()
	}
	return &Candidate{Word: s.word, N: bestN, scorer: m}, nil
}
