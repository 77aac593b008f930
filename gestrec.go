// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gestrec selects hidden Markov models for an isolated-gesture
vocabulary and recognizes unlabeled gesture sequences.

For every word in the vocabulary, a model selection strategy searches a
range of hidden-state counts, delegates parameter estimation to a
sequence trainer, and keeps the candidate that generalizes best. The
fitted per-word models form a model bank which the recognizer scores
against test sequences to produce ranked guesses.
*/
package gestrec

import (
	"encoding/json"
	"math"

	"github.com/golang/glog"
)

// Result is the outcome of recognizing a single test item.
// Scores maps every word in the model bank to a log-likelihood.
// Words that failed to score carry -Inf. Guess is the best-scoring
// word or the empty string when no word scored.
type Result struct {
	ItemID string `json:"id"`
	Scores Scores `json:"scores"`
	Guess  string `json:"guess"`
}

// Scores maps words to log-likelihoods. JSON has no representation
// for non-finite floats, so failed words marshal as null and decode
// back to -Inf.
type Scores map[string]float64

func (s Scores) MarshalJSON() ([]byte, error) {

	m := make(map[string]*float64, len(s))
	for word, v := range s {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			m[word] = nil
			continue
		}
		vv := v
		m[word] = &vv
	}
	return json.Marshal(m)
}

func (s *Scores) UnmarshalJSON(b []byte) error {

	var m map[string]*float64
	if e := json.Unmarshal(b, &m); e != nil {
		return e
	}
	*s = make(Scores, len(m))
	for word, v := range m {
		if v == nil {
			(*s)[word] = math.Inf(-1)
			continue
		}
		(*s)[word] = *v
	}
	return nil
}

// Fatal logs the error and exits if err is not nil.
func Fatal(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}
