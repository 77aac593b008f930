package gaussian

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akualab/gestrec"
)

func TestGaussianLogProb(t *testing.T) {

	g := NewGaussian(1, []float64{0}, []float64{1}, "g")

	// Standard normal density at the mean: -log(sqrt(2*pi)).
	expected := -0.9189385332046727
	gestrec.CompareFloats(t, expected, g.LogProb([]float64{0}), "wrong log prob at mean", 1e-10)

	// One standard deviation away: subtract 1/2.
	gestrec.CompareFloats(t, expected-0.5, g.LogProb([]float64{1}), "wrong log prob at mean+sd", 1e-10)
}

func TestGaussianLogProbMultivariate(t *testing.T) {

	mean := []float64{1, -2}
	sd := []float64{2, 0.5}
	g := NewGaussian(2, mean, sd, "g2")
	obs := []float64{0.5, -1}

	// Closed-form diagonal log density.
	var expected float64
	for i := range mean {
		v := sd[i] * sd[i]
		expected += -0.5*math.Log(2.0*math.Pi*v) - (obs[i]-mean[i])*(obs[i]-mean[i])/(2.0*v)
	}
	gestrec.CompareFloats(t, expected, g.LogProb(obs), "wrong multivariate log prob", 1e-10)
}

func TestTrainGaussian(t *testing.T) {

	g := NewGaussian(1, nil, nil, "trained")
	gestrec.CheckError(t, g.Update([]float64{1}, 1.0))
	gestrec.CheckError(t, g.Update([]float64{3}, 1.0))
	gestrec.CheckError(t, g.Estimate())

	gestrec.CompareFloats(t, 2.0, g.Mean[0], "wrong mean", 1e-10)
	gestrec.CompareFloats(t, 1.0, g.StdDev[0], "wrong std dev", 1e-10)

	// Clear resets the accumulators.
	g.Clear()
	if g.NumSamples() != 0 {
		t.Errorf("Expected zero samples after Clear, Got: [%f]", g.NumSamples())
	}
}

func TestEstimateFloorsVariance(t *testing.T) {

	g := NewGaussian(1, nil, nil, "floored")
	// Identical samples leave zero empirical variance.
	gestrec.CheckError(t, g.Update([]float64{5}, 1.0))
	gestrec.CheckError(t, g.Update([]float64{5}, 1.0))
	gestrec.CheckError(t, g.Estimate())

	gestrec.CompareFloats(t, SMALL_SD, g.StdDev[0], "variance not floored", 1e-10)
}

func TestUpdateDimMismatch(t *testing.T) {

	g := NewGaussian(2, nil, nil, "dim")
	if e := g.Update([]float64{1}, 1.0); e == nil {
		t.Errorf("Expected dimension mismatch error")
	}
}

func TestSample(t *testing.T) {

	g := NewGaussian(2, []float64{0, 100}, []float64{1, 1}, "sampler")
	r := rand.New(rand.NewSource(42))
	obs, e := g.Sample(r)
	gestrec.CheckError(t, e)
	if len(obs) != 2 {
		t.Fatalf("Wrong sample length: %d", len(obs))
	}
	if math.Abs(obs[1]-100) > 10 {
		t.Errorf("Sample too far from mean: %f", obs[1])
	}
}
