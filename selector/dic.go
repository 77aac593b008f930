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

// DIC selects the state count maximizing a discriminative criterion:
// the log-likelihood of the word's own data minus the average
// log-likelihood the same model assigns to every other word's data.
//
//	DIC = log L(own) - 1/(M-1) * sum log L(other)
//
// A model that explains its own word well while explaining competing
// words poorly scores high.
type DIC struct {
	Base
}

// NewDIC creates a DIC selector.
func NewDIC(corpus *gestrec.Corpus, word string, config Config, fitter model.Fitter) (*DIC, error) {

	b, e := NewBase(corpus, word, config, fitter)
	if e != nil {
		return nil, e
	}
	return &DIC{Base: b}, nil
}

// Select searches the state count range for the highest DIC score.
// A candidate that cannot score every other word is skipped. With no
// competing words, or when no candidate survives, falls back to the
// constant state count.
func (s *DIC) Select() (*Candidate, error) {

	if s.corpus.Len() < 2 {
		s.logf("word [%s]: no competing words for dic", s.word)
		return s.fallback()
	}

	x := s.corpus.Seq(s.word)
	others := float64(s.corpus.Len() - 1)

	best := math.Inf(-1)
	var bestCand *Candidate
	for n := s.config.MinN; n <= s.config.MaxN; n++ {
		m := s.fitOn(x, n)
		if m == nil {
			continue
		}
		own, e := m.LogProb(x)
		if e != nil || math.IsInf(own, -1) {
			s.logf("word [%s] n [%d]: unscorable candidate", s.word, n)
			continue
		}

		var anti float64
		ok := true
		for _, other := range s.corpus.Words() {
			if other == s.word {
				continue
			}
			ll, e := m.LogProb(s.corpus.Seq(other))
			if e != nil || math.IsInf(ll, -1) {
				s.logf("word [%s] n [%d]: cannot score word [%s]", s.word, n, other)
				ok = false
				break
			}
			anti += ll
		}
		if !ok {
			continue
		}

		dic := own - anti/others
		s.logf("word [%s] n [%d]: own %e, dic %e", s.word, n, own, dic)
		if dic > best {
			best = dic
			bestCand = &Candidate{Word: s.word, N: n, scorer: m}
		}
	}
	if bestCand == nil {
		return s.fallback()
	}
	return bestCand, nil
}
