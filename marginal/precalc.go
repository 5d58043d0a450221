package marginal

import (
	"math"
	"sort"

	"isospec/conf"
)

// Precalculated is PrecalculatedMarginal (spec.md §4.6): every
// configuration of a Marginal with log-probability ≥ a cutoff, computed
// once via the same best-first search neighbourhood as Trek, stored in
// dense parallel arrays and optionally sorted by descending log-probability.
type Precalculated struct {
	*Marginal

	Confs  []conf.Conf
	Masses []float64
	LProbs []float64
	EProbs []float64

	arena *conf.Arena // retained: Confs entries point into it
}

// NewPrecalculated enumerates every configuration with LProb ≥ lCutoff.
func NewPrecalculated(m *Marginal, lCutoff float64, doSort bool, tabSize, hashSize int) *Precalculated {
	t := NewTrek(m, tabSize, hashSize)

	for len(t.lprobs) > 0 && t.lprobs[len(t.lprobs)-1] >= lCutoff {
		if !t.addNextConf() {
			break
		}
	}
	n := len(t.lprobs)
	for n > 0 && t.lprobs[n-1] < lCutoff {
		n--
	}

	confs := append([]conf.Conf(nil), t.confs[:n]...)
	lprobs := append([]float64(nil), t.lprobs[:n]...)
	masses := append([]float64(nil), t.masses[:n]...)
	eprobs := make([]float64, n)
	for i, lp := range lprobs {
		eprobs[i] = math.Exp(lp)
	}

	if doSort {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return lprobs[idx[a]] > lprobs[idx[b]] })
		sConfs := make([]conf.Conf, n)
		sLProbs := make([]float64, n)
		sMasses := make([]float64, n)
		sEProbs := make([]float64, n)
		for newPos, oldPos := range idx {
			sConfs[newPos] = confs[oldPos]
			sLProbs[newPos] = lprobs[oldPos]
			sMasses[newPos] = masses[oldPos]
			sEProbs[newPos] = eprobs[oldPos]
		}
		confs, lprobs, masses, eprobs = sConfs, sLProbs, sMasses, sEProbs
	}

	return &Precalculated{
		Marginal: m,
		Confs:    confs,
		Masses:   masses,
		LProbs:   lprobs,
		EProbs:   eprobs,
		arena:    t.arena,
	}
}

// InRange reports whether idx names a precomputed configuration.
func (p *Precalculated) InRange(idx int) bool { return idx >= 0 && idx < len(p.Confs) }

// NoConfs returns the number of precomputed configurations.
func (p *Precalculated) NoConfs() int { return len(p.Confs) }
