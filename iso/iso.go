// Package iso implements the Iso root descriptor (spec.md §4.7): one
// Marginal per distinct element, plus the molecule-level aggregate mass
// and probability bounds that every generator starts from.
package iso

import (
	"errors"
	"fmt"
	"math"

	"isospec/elemtable"
	"isospec/marginal"
)

// Iso groups the per-element Marginals of a molecule and caches the
// aggregate queries of spec.md §4.7. A *Iso is consumed (moved) into a
// generator constructor: the single-ownership rule of spec.md §5 is
// enforced by Disown, which panics if called twice.
type Iso struct {
	Marginals []*marginal.Marginal

	LightestMass           float64
	HeaviestMass           float64
	ModeMass               float64
	ModeLProb              float64
	MonoisotopicMass       float64
	TheoreticalAverageMass float64

	disowned bool
}

// New validates the flat construction inputs of spec.md §6 and builds one
// Marginal per element, looking up each element's tabulated log-probabilities
// via table (see elemtable).
func New(dimNumber int, isotopeNumbers, atomCounts []int, isotopeMasses, isotopeProbabilities []float64, table elemtable.Table) (*Iso, error) {
	if dimNumber <= 0 {
		return nil, errors.New("iso: dim_number must be positive")
	}
	if len(isotopeNumbers) != dimNumber || len(atomCounts) != dimNumber {
		return nil, fmt.Errorf("iso: isotope_numbers/atom_counts must have length dim_number=%d", dimNumber)
	}
	total := 0
	for _, k := range isotopeNumbers {
		if k <= 0 {
			return nil, errors.New("iso: every element must have at least one isotope")
		}
		total += k
	}
	if len(isotopeMasses) != total || len(isotopeProbabilities) != total {
		return nil, fmt.Errorf("iso: isotope_masses/isotope_probabilities must have total length %d", total)
	}

	marginals := make([]*marginal.Marginal, dimNumber)
	idx := 0
	for e := 0; e < dimNumber; e++ {
		k := isotopeNumbers[e]
		masses := isotopeMasses[idx : idx+k]
		probs := isotopeProbabilities[idx : idx+k]
		logProbs := elemtable.LogProbabilities(probs, table)

		m, err := marginal.New(masses, probs, logProbs, atomCounts[e])
		if err != nil {
			return nil, fmt.Errorf("iso: element %d: %w", e, err)
		}
		marginals[e] = m
		idx += k
	}

	it := &Iso{Marginals: marginals}
	it.computeAggregates()
	return it, nil
}

func (it *Iso) computeAggregates() {
	for _, m := range it.Marginals {
		lightest := math.Inf(1)
		heaviest := math.Inf(-1)
		mostAbundantMass := 0.0
		bestProb := -1.0
		var avg float64
		for i, mass := range m.AtomMasses {
			if mass < lightest {
				lightest = mass
			}
			if mass > heaviest {
				heaviest = mass
			}
			if m.AtomProbs[i] > bestProb {
				bestProb = m.AtomProbs[i]
				mostAbundantMass = mass
			}
			avg += m.AtomProbs[i] * mass
		}
		n := float64(m.N)
		it.LightestMass += n * lightest
		it.HeaviestMass += n * heaviest
		it.ModeMass += m.ModeMass
		it.ModeLProb += m.ModeLProb
		it.MonoisotopicMass += n * mostAbundantMass
		it.TheoreticalAverageMass += n * avg
	}
}

// Disown marks the Iso as consumed by a generator, per spec.md §5's
// single-ownership rule ("An Iso value is consumed (moved) into a
// generator — the Iso is no longer usable afterward"). It panics if the
// Iso was already disowned, since that indicates a caller bug (reusing an
// Iso across two generators) rather than a recoverable runtime condition.
func (it *Iso) Disown() {
	if it.disowned {
		panic("iso: Iso already consumed by a generator")
	}
	it.disowned = true
}
