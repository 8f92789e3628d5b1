package sim

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DistTolerance is the maximum deviation of a probability row's sum from 1
// that validation accepts. Hand-entered rows accumulate a few ulps of float
// error when summed; 1e-9 absorbs that while still rejecting rows that are
// genuinely unnormalized. Rows are never silently renormalized.
const DistTolerance = 1e-9

// ErrInvalidDistribution reports a vector that is not a valid probability
// distribution: empty, a negative/NaN/Inf entry, or a sum further than
// DistTolerance from 1.
var ErrInvalidDistribution = errors.New("invalid probability distribution")

// Empirical draws from a discrete distribution over indices 0..K-1 by
// inverse-CDF lookup. It is built once per transition row; sampling is a
// pure function of the uniform input, so the same (row, u) pair always maps
// to the same index.
type Empirical struct {
	cdf []float64
}

// NewEmpirical validates probs and precomputes its cumulative distribution.
func NewEmpirical(probs []float64) (*Empirical, error) {
	if len(probs) == 0 {
		return nil, fmt.Errorf("%w: empty probability vector", ErrInvalidDistribution)
	}
	sum := 0.0
	for i, p := range probs {
		// NaN fails every comparison, so it must be trapped before the
		// sum check can be trusted.
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: entry %d is not finite (%v)", ErrInvalidDistribution, i, p)
		}
		if p < 0 {
			return nil, fmt.Errorf("%w: entry %d is negative (%v)", ErrInvalidDistribution, i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > DistTolerance {
		return nil, fmt.Errorf("%w: entries sum to %v, want 1 within %v", ErrInvalidDistribution, sum, DistTolerance)
	}

	cdf := make([]float64, len(probs))
	cum := 0.0
	for i, p := range probs {
		cum += p
		cdf[i] = cum
	}
	return &Empirical{cdf: cdf}, nil
}

// Sample maps one uniform draw u in [0, 1) to an index: the smallest j whose
// cumulative probability strictly exceeds u. The strict comparison keeps
// zero-probability entries unreachable; with probs [0, 1, 0] every u,
// including 0, lands on index 1. If float rounding left the final cumulative
// value at or below u, the last index is returned.
func (e *Empirical) Sample(u float64) int {
	j := sort.Search(len(e.cdf), func(i int) bool { return e.cdf[i] > u })
	if j == len(e.cdf) {
		return len(e.cdf) - 1
	}
	return j
}

// Len returns the number of categories sampled over.
func (e *Empirical) Len() int {
	return len(e.cdf)
}
