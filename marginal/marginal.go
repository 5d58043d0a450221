// Package marginal implements the per-element multinomial sub-distribution
// (spec.md §4.4) and its two enumeration strategies: MarginalTrek
// (best-first, memoized, extendable on demand) and PrecalculatedMarginal
// (exhaustive down to a cutoff). Grounded directly on
// original_source/IsoSpec++/marginalTrek++.{h,cpp}, translated from raw
// pointers/std::priority_queue/std::unordered_map into Conf slices,
// conf.PQ, and conf.VisitedSet.
package marginal

import (
	"errors"
	"fmt"
	"math"

	"isospec/conf"
)

const probSumEpsilon = 1e-9

// Marginal is the immutable multinomial distribution over how N atoms of
// one element distribute across its K isotopes.
type Marginal struct {
	K int
	N int

	AtomMasses   []float64
	AtomProbs    []float64
	AtomLogProbs []float64
	logGammaN1   float64 // logGamma(N+1), shared by every configuration's log-prob

	ModeConf  conf.Conf
	ModeLProb float64
	ModeMass  float64
	ModeEProb float64

	SmallestLProb float64
}

// New validates masses/probs/logProbs and locates the mode configuration
// by greedy hill-climbing from a rounded-proportional start (spec.md
// §4.4). logProbs is supplied by the caller (normally via
// elemtable.LogProbabilities) rather than computed here, keeping the
// element-table lookup mechanism a separate, reusable concern (spec.md §2).
func New(masses, probs, logProbs []float64, n int) (*Marginal, error) {
	k := len(masses)
	if k == 0 {
		return nil, errors.New("marginal: isotope count k must be at least 1")
	}
	if len(probs) != k || len(logProbs) != k {
		return nil, fmt.Errorf("marginal: masses/probs/logProbs length mismatch (%d/%d/%d)", k, len(probs), len(logProbs))
	}
	if n < 0 {
		return nil, fmt.Errorf("marginal: atom count N must be non-negative, got %d", n)
	}
	var sum float64
	for i, m := range masses {
		if m <= 0 {
			return nil, fmt.Errorf("marginal: mass[%d] = %g must be strictly positive", i, m)
		}
		p := probs[i]
		if p <= 0 || p > 1 {
			return nil, fmt.Errorf("marginal: prob[%d] = %g must lie in (0, 1]", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > probSumEpsilon {
		return nil, fmt.Errorf("marginal: probabilities sum to %g, want 1 within %g", sum, probSumEpsilon)
	}

	mode := initialConfigure(n, probs)
	mode, modeUnnorm := hillClimb(mode, logProbs)

	logGammaN1 := conf.LogGammaNominator(n)
	minLP := logProbs[0]
	for _, lp := range logProbs[1:] {
		if lp < minLP {
			minLP = lp
		}
	}

	return &Marginal{
		K:             k,
		N:             n,
		AtomMasses:    append([]float64(nil), masses...),
		AtomProbs:     append([]float64(nil), probs...),
		AtomLogProbs:  append([]float64(nil), logProbs...),
		logGammaN1:    logGammaN1,
		ModeConf:      mode,
		ModeLProb:     logGammaN1 + modeUnnorm,
		ModeMass:      conf.Mass(mode, masses),
		ModeEProb:     math.Exp(logGammaN1 + modeUnnorm),
		SmallestLProb: float64(n) * minLP,
	}, nil
}

// LogProb returns the log-probability of an arbitrary configuration of
// this Marginal's shape (spec.md §4.2's logProb).
func (m *Marginal) LogProb(c conf.Conf) float64 {
	return m.logGammaN1 + conf.UnnormalizedLogProb(c, m.AtomLogProbs)
}

// initialConfigure rounds N·probs[i] down plus one into each slot, then
// corrects the sum to exactly N: a deficit goes entirely to slot 0; a
// surplus is subtracted from slot 0 onward, cascading into later slots
// whenever a slot would go negative (original_source/IsoSpec++/
// marginalTrek++.cpp, initialConfigure).
func initialConfigure(n int, probs []float64) conf.Conf {
	k := len(probs)
	c := make(conf.Conf, k)
	sum := 0
	for i, p := range probs {
		v := int32(float64(n)*p) + 1
		c[i] = v
		sum += int(v)
	}
	diff := n - sum
	switch {
	case diff > 0:
		c[0] += int32(diff)
	case diff < 0:
		diff = -diff
		for i := 0; diff > 0 && i < k; i++ {
			if int(c[i]) >= diff {
				c[i] -= int32(diff)
				diff = 0
			} else {
				diff -= int(c[i])
				c[i] = 0
			}
		}
	}
	return c
}

// hillClimb repeatedly applies the single best one-atom transfer (i -> j)
// until no transfer improves the unnormalized log-probability, returning
// the final configuration and its unnormalized log-probability.
func hillClimb(start conf.Conf, logProbs []float64) (conf.Conf, float64) {
	k := len(logProbs)
	cur := append(conf.Conf(nil), start...)
	curLP := conf.UnnormalizedLogProb(cur, logProbs)

	for {
		bestI, bestJ := -1, -1
		bestDelta := 0.0
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				if i == j || cur[j] == 0 {
					continue
				}
				cur[i]++
				cur[j]--
				lp := conf.UnnormalizedLogProb(cur, logProbs)
				cur[i]--
				cur[j]++

				if delta := lp - curLP; delta > bestDelta {
					bestDelta = delta
					bestI, bestJ = i, j
				}
			}
		}
		if bestI < 0 {
			return cur, curLP
		}
		cur[bestI]++
		cur[bestJ]--
		curLP += bestDelta
	}
}
