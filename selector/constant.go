// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selector

import (
	"fmt"

	"github.com/akualab/gestrec"
	"github.com/akualab/gestrec/model"
)

// Constant selects a fixed state count for every word. Useful as a
// baseline and as the cheapest strategy.
type Constant struct {
	Base
}

// NewConstant creates a constant selector.
func NewConstant(corpus *gestrec.Corpus, word string, config Config, fitter model.Fitter) (*Constant, error) {

	b, e := NewBase(corpus, word, config, fitter)
	if e != nil {
		return nil, e
	}
	return &Constant{Base: b}, nil
}

// Select trains a model with NConstant states.
func (s *Constant) Select() (*Candidate, error) {

	n := s.config.NConstant
	m := s.fit(n)
	if m == nil {
		return nil, fmt.Errorf("word [%s]: %w", s.word, ErrNoModel)
	}
	return &Candidate{Word: s.word, N: n, scorer: m}, nil
}
