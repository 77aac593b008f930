// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selector chooses the number of hidden states for one word's
// model. Each selection strategy trains candidate models across a
// range of state counts and scores them with its own criterion.
package selector

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/akualab/gestrec"
	"github.com/akualab/gestrec/model"
)

// ErrNoModel is returned when no candidate state count produced a
// trainable model, including the fallback.
var ErrNoModel = errors.New("selector: no model could be trained")

// Config holds the parameters shared by all selection strategies.
type Config struct {

	// Candidate state counts, inclusive on both ends.
	MinN, MaxN int

	// State count used by the constant strategy and as fallback when a
	// criterion cannot score any candidate.
	NConstant int

	// Seed passed to the fitter for reproducible training.
	Seed int64

	// Verbose promotes per-candidate diagnostics to the default log
	// level. Logging only, no behavioral effect.
	Verbose bool
}

// DefaultConfig returns the standard search range.
func DefaultConfig() Config {
	return Config{MinN: 2, MaxN: 10, NConstant: 3, Seed: model.DefaultSeed}
}

// A Candidate is a trained model for one word together with the state
// count the strategy chose.
type Candidate struct {
	Word   string
	N      int
	scorer model.Scorer
}

// Model returns the trained scorer.
func (c *Candidate) Model() model.Scorer { return c.scorer }

// Score returns the log probability of the sequences under the model.
func (c *Candidate) Score(x model.Seq) (float64, error) { return c.scorer.LogProb(x) }

// A Selector chooses the state count for one word.
type Selector interface {
	Select() (*Candidate, error)
}

// Base carries the word data and training machinery shared by the
// strategies. It does not itself implement Selector.
type Base struct {
	corpus *gestrec.Corpus
	word   string
	config Config
	fitter model.Fitter
}

// NewBase creates the shared state for a selection strategy.
func NewBase(corpus *gestrec.Corpus, word string, config Config, fitter model.Fitter) (Base, error) {

	if corpus == nil || !corpus.Has(word) {
		return Base{}, fmt.Errorf("selector: word [%s] not in corpus", word)
	}
	if config.MinN < 1 || config.MaxN < config.MinN {
		return Base{}, fmt.Errorf("selector: invalid range [%d,%d]", config.MinN, config.MaxN)
	}
	if config.NConstant < 1 {
		return Base{}, fmt.Errorf("selector: invalid constant state count [%d]", config.NConstant)
	}
	if fitter == nil {
		return Base{}, fmt.Errorf("selector: nil fitter")
	}
	return Base{corpus: corpus, word: word, config: config, fitter: fitter}, nil
}

// logf writes candidate diagnostics. Verbose promotes them to the
// default level, otherwise they show up at -v=2.
func (b *Base) logf(format string, args ...interface{}) {

	if b.config.Verbose || bool(glog.V(2)) {
		glog.InfoDepthf(1, format, args...)
	}
}

// fit trains a candidate with n states on all of the word's data.
// Returns nil when training fails; failures eliminate the candidate
// but never abort the search.
func (b *Base) fit(n int) model.Scorer {
	return b.fitOn(b.corpus.Seq(b.word), n)
}

// fitOn trains a candidate with n states on the given sequences.
func (b *Base) fitOn(x model.Seq, n int) model.Scorer {

	s, e := b.fitter.Fit(x, n, b.config.Seed)
	if e != nil {
		b.logf("word [%s] n [%d]: %s", b.word, n, e)
		return nil
	}
	return s
}

// fallback trains a model with the constant state count. Used when a
// criterion failed to score every candidate in the range.
func (b *Base) fallback() (*Candidate, error) {

	n := b.config.NConstant
	s := b.fit(n)
	if s == nil {
		return nil, fmt.Errorf("word [%s]: %w", b.word, ErrNoModel)
	}
	b.logf("word [%s]: falling back to constant n [%d]", b.word, n)
	return &Candidate{Word: b.word, N: n, scorer: s}, nil
}
