// Package generator implements the three whole-molecule enumeration
// strategies of spec.md §4.8–§4.10: ThresholdGenerator, LayeredGenerator,
// and OrderedGenerator. All three consume an *iso.Iso (spec.md §5's
// single-ownership rule, enforced via Iso.Disown).
package generator

import (
	"isospec/conf"
	"isospec/marginal"
)

// odometer drives the bounded Cartesian walk over per-element
// PrecalculatedMarginals (spec.md §4.8): an index per element into that
// element's sorted configurations, advanced like a multi-digit counter
// with the least-significant (last) element advancing fastest, skipping
// any digit combination whose total log-probability has already fallen
// below the target. Shared by ThresholdGenerator and LayeredGenerator (a
// layered run is just a sequence of odometers over widening cutoffs).
type odometer struct {
	pm           []*marginal.Precalculated
	indices      []int
	absThreshold float64
	curLProb     float64
	first        bool
	done         bool // set once advance has returned false
	width        int  // total flattened conf length (sum of per-element k)
}

func newOdometer(marginals []*marginal.Marginal, absThreshold float64, tabSize, hashSize int) *odometer {
	dim := len(marginals)
	modeSum := 0.0
	for _, m := range marginals {
		modeSum += m.ModeLProb
	}

	pm := make([]*marginal.Precalculated, dim)
	width := 0
	for e, m := range marginals {
		// Upper bound on what every *other* element could contribute is its
		// mode log-probability; a configuration of element e can only ever
		// be part of a qualifying joint configuration if its own
		// log-probability clears absThreshold minus that bound.
		companionBound := modeSum - m.ModeLProb
		cutoff := absThreshold - companionBound
		pm[e] = marginal.NewPrecalculated(m, cutoff, true, tabSize, hashSize)
		width += m.K
	}
	return &odometer{pm: pm, indices: make([]int, dim), absThreshold: absThreshold, first: true, width: width}
}

// advance moves to the next odometer position whose joint log-probability
// is >= absThreshold (ties included), returning false once exhausted.
func (o *odometer) advance() bool {
	if o.done {
		return false
	}
	for {
		if o.first {
			o.first = false
			for _, p := range o.pm {
				if p.NoConfs() == 0 {
					o.done = true
					return false
				}
			}
		} else {
			e := len(o.pm) - 1
			for e >= 0 {
				o.indices[e]++
				if o.indices[e] < o.pm[e].NoConfs() {
					break
				}
				o.indices[e] = 0
				e--
			}
			if e < 0 {
				o.done = true
				return false
			}
		}

		total := 0.0
		for e, p := range o.pm {
			total += p.LProbs[o.indices[e]]
		}
		if total >= o.absThreshold {
			o.curLProb = total
			return true
		}
	}
}

func (o *odometer) mass() float64 {
	var total float64
	for e, p := range o.pm {
		total += p.Masses[o.indices[e]]
	}
	return total
}

// flatten returns the current position's whole-molecule configuration,
// element-major then isotope-major (spec.md §6).
func (o *odometer) flatten() conf.Conf {
	out := make(conf.Conf, o.width)
	pos := 0
	for e, p := range o.pm {
		c := p.Confs[o.indices[e]]
		copy(out[pos:], c)
		pos += len(c)
	}
	return out
}
