// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recognizer scores unknown gesture sequences against a bank
// of trained word models and guesses the best-matching word.
package recognizer

import (
	"math"
	"sort"

	"github.com/golang/glog"

	"github.com/akualab/gestrec/model"
)

// A TestItem is one unlabeled gesture to recognize.
type TestItem struct {
	ID string
	X  model.Seq
}

// Recognize scores every item against every model in the bank. For
// each item it returns the per-word log-likelihood table and the word
// with the highest score. Words are visited in lexicographic order and
// ties keep the first winner, so results are deterministic. A word
// whose model fails to score an item gets negative infinity. An item
// no model can score gets an empty guess.
func Recognize(bank map[string]model.Scorer, items []TestItem) ([]map[string]float64, []string) {

	words := make([]string, 0, len(bank))
	for word := range bank {
		words = append(words, word)
	}
	sort.Strings(words)

	scores := make([]map[string]float64, 0, len(items))
	guesses := make([]string, 0, len(items))
	for _, item := range items {

		table := make(map[string]float64, len(words))
		best := math.Inf(-1)
		guess := ""
		for _, word := range words {
			ll, e := bank[word].LogProb(item.X)
			if e != nil {
				glog.V(2).Infof("item [%s] word [%s]: %s", item.ID, word, e)
				ll = math.Inf(-1)
			}
			table[word] = ll
			if ll > best {
				best = ll
				guess = word
			}
		}
		scores = append(scores, table)
		guesses = append(guesses, guess)
	}
	return scores, guesses
}
