// Package stats computes streaming summary statistics over a numeric column.
//
// Mean and variance use Welford's update so a single pass is numerically
// stable. Quantiles come from a DDSketch with 1% relative accuracy.
package stats

import (
	"math"

	"github.com/DataDog/sketches-go/ddsketch"
)

const relativeAccuracy = 0.01

// Quantiles reported by the CLI.
var Quantiles = []float64{0.5, 0.9, 0.99}

// Summary accumulates statistics for a stream of values.
type Summary struct {
	Count int64
	Mean  float64
	Min   float64
	Max   float64

	m2     float64
	sketch *ddsketch.DDSketch
}

func NewSummary() (*Summary, error) {
	sk, err := ddsketch.NewDefaultDDSketch(relativeAccuracy)
	if err != nil {
		return nil, err
	}
	return &Summary{sketch: sk}, nil
}

// Add folds x into the summary. Non-finite values are ignored.
func (s *Summary) Add(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	if err := s.sketch.Add(x); err != nil {
		return err
	}

	s.Count++
	delta := x - s.Mean
	s.Mean += delta / float64(s.Count)
	s.m2 += delta * (x - s.Mean)

	if s.Count == 1 || x < s.Min {
		s.Min = x
	}
	if s.Count == 1 || x > s.Max {
		s.Max = x
	}
	return nil
}

// Variance is the sample variance; it needs at least two values.
func (s *Summary) Variance() (float64, bool) {
	if s.Count < 2 {
		return 0, false
	}
	return s.m2 / float64(s.Count-1), true
}

func (s *Summary) StdDev() (float64, bool) {
	v, ok := s.Variance()
	if !ok {
		return 0, false
	}
	return math.Sqrt(v), true
}

// Quantile estimates the q-quantile within the sketch's relative accuracy.
func (s *Summary) Quantile(q float64) (float64, error) {
	return s.sketch.GetValueAtQuantile(q)
}
