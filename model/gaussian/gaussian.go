// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gaussian implements a multivariate Gaussian distribution
// with a diagonal covariance matrix.
package gaussian

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/akualab/gestrec/floatx"
	"github.com/akualab/gestrec/model"
)

const (
	SMALL_SD        = 0.01
	SMALL_VARIANCE  = SMALL_SD * SMALL_SD
	MIN_NUM_SAMPLES = 0.01
)

// Gaussian is a multivariate Gaussian distribution with diagonal covariance.
type Gaussian struct {
	ModelName   string    `json:"name,omitempty"`
	NE          int       `json:"num_elements"`
	NSamples    float64   `json:"-"`
	Sumx        []float64 `json:"-"`
	Sumxsq      []float64 `json:"-"`
	Mean        []float64 `json:"mean"`
	StdDev      []float64 `json:"sd"`
	variance    []float64
	varianceInv []float64
	tmpArray    []float64
	const1      float64 // -(N/2)log(2PI) Depends only on NE.
	const2      float64 // const1 - sum(log sigma_i) Also depends on variance.
}

var floorv = func(r int, v float64) float64 {
	if v < SMALL_VARIANCE {
		return SMALL_VARIANCE
	}
	return v
}

// NewGaussian creates a new trainable Gaussian.
func NewGaussian(numElements int, mean, sd []float64, name string) *Gaussian {

	g := &Gaussian{
		Mean:      mean,
		StdDev:    sd,
		NE:        numElements,
		ModelName: name,
	}
	g.Initialize()
	return g
}

// Initialize allocates buffers and recomputes the derived parameters.
// Must be called after the model is restored from serialized data.
func (g *Gaussian) Initialize() {

	if g.Mean == nil {
		g.Mean = make([]float64, g.NE)
	}

	g.variance = make([]float64, g.NE)
	g.varianceInv = make([]float64, g.NE)
	if g.StdDev == nil {
		g.StdDev = make([]float64, g.NE)
		floatx.Apply(floatx.SetValueFunc(SMALL_SD), g.StdDev, nil)
	}
	floatx.Apply(floatx.Sq, g.StdDev, g.variance)

	// Initializes variance, varianceInv, and StdDev.
	g.setVariance(g.variance)

	if g.Sumx == nil {
		g.Sumx = make([]float64, g.NE)
	}
	if g.Sumxsq == nil {
		g.Sumxsq = make([]float64, g.NE)
	}

	g.tmpArray = make([]float64, g.NE)
	g.const1 = -float64(g.NE) * math.Log(2.0*math.Pi) / 2.0
	g.updateConst()
}

func (g *Gaussian) updateConst() {

	floatx.Apply(floatx.Log, g.variance, g.tmpArray)
	g.const2 = g.const1 - floats.Sum(g.tmpArray)/2.0
}

// LogProb returns the log probability density of an observation vector.
func (g *Gaussian) LogProb(obs []float64) (v float64) {

	for i, x := range obs {
		s := g.Mean[i] - x
		v += s * s * g.varianceInv[i] / 2.0
	}
	v = g.const2 - v

	return
}

// Update accumulates sufficient statistics using a weighted sample.
func (g *Gaussian) Update(obs []float64, w float64) error {

	if len(obs) != g.NE {
		return fmt.Errorf("gaussian [%s]: observation has [%d] elements, expected [%d]", g.ModelName, len(obs), g.NE)
	}

	/* Update sufficient statistics. */
	floatx.Apply(floatx.ScaleFunc(w), obs, g.tmpArray)
	floats.Add(g.Sumx, g.tmpArray)
	floatx.Apply(floatx.Sq, obs, g.tmpArray)
	floats.Scale(w, g.tmpArray)
	floats.Add(g.Sumxsq, g.tmpArray)
	g.NSamples += w

	return nil
}

// Estimate computes the model parameters from the accumulated statistics.
func (g *Gaussian) Estimate() error {

	if g.NSamples > MIN_NUM_SAMPLES {

		/* Estimate the mean. */
		floatx.Apply(floatx.ScaleFunc(1.0/g.NSamples), g.Sumx, g.Mean)
		/*
		 * Estimate the variance. sigma_sq = 1/n (sumxsq - 1/n sumx^2) or
		 * 1/n sumxsq - mean^2.
		 */
		tmp := g.variance // borrow as an intermediate array.

		floatx.Apply(floatx.Sq, g.Mean, g.tmpArray)
		floatx.Apply(floatx.ScaleFunc(1.0/g.NSamples), g.Sumxsq, tmp)
		floats.SubTo(g.variance, tmp, g.tmpArray)
		floatx.Apply(floorv, g.variance, nil)
	} else {

		/* Not enough training samples. */
		floatx.Apply(floatx.SetValueFunc(SMALL_VARIANCE), g.variance, nil)
		floatx.Apply(floatx.SetValueFunc(0), g.Mean, nil)
	}
	g.setVariance(g.variance) // to update varInv and stddev.

	/* Update log Gaussian constant. */
	g.updateConst()

	return nil
}

// Clear resets the accumulated statistics.
func (g *Gaussian) Clear() {

	floatx.Apply(floatx.SetValueFunc(0), g.Sumx, nil)
	floatx.Apply(floatx.SetValueFunc(0), g.Sumxsq, nil)
	g.NSamples = 0
}

func (g *Gaussian) setVariance(variance []float64) {
	copy(g.variance, variance)
	floatx.Apply(floatx.Inv, g.variance, g.varianceInv)
	g.StdDev = g.standardDeviation()
}

func (g *Gaussian) standardDeviation() (sd []float64) {

	sd = make([]float64, g.NE)
	floatx.Apply(floatx.Sqrt, g.variance, sd)
	return
}

// Sample returns a random observation vector drawn from the distribution.
func (g *Gaussian) Sample(r *rand.Rand) ([]float64, error) {
	return model.RandNormalVector(g.Mean, g.StdDev, r)
}

// Clone returns a deep copy of the model.
func (g *Gaussian) Clone() *Gaussian {

	ng := NewGaussian(g.NE, nil, nil, g.ModelName)
	ng.NSamples = g.NSamples

	copy(ng.Sumx, g.Sumx)
	copy(ng.Sumxsq, g.Sumxsq)
	copy(ng.Mean, g.Mean)
	copy(ng.StdDev, g.StdDev)
	copy(ng.variance, g.variance)
	copy(ng.varianceInv, g.varianceInv)
	ng.const1 = g.const1
	ng.const2 = g.const2

	return ng
}

func (g *Gaussian) Name() string        { return g.ModelName }
func (g *Gaussian) NumSamples() float64 { return g.NSamples }
func (g *Gaussian) NumElements() int    { return g.NE }
func (g *Gaussian) SetName(name string) { g.ModelName = name }
