// Package elemtable provides the *mechanism* spec.md §4.2/§9 requires: a
// static lookup from natural isotope abundance to a single, reused
// log-probability, so that two configurations whose probabilities happen
// to be tied never diverge because one path called math.Log and the other
// read a cached value rounded a half-ulp differently.
//
// The production chemical dataset itself (element/isotope natural
// abundances) is explicitly out of scope per spec.md §1 — it is an
// external, static collaborator. Reference below is a minimal H/C/O table
// covering spec.md §8's canonical scenarios, not a production dataset.
package elemtable

import "math"

// Table pairs natural probabilities with their canonical log-probability.
type Table struct {
	Probability    []float64
	LogProbability []float64
}

// LogProbabilities returns log(probs[i]) for every i, substituting the
// table's cached value whenever probs[i] exactly equals a tabulated
// probability (bitwise equality, not within-epsilon).
func LogProbabilities(probs []float64, table Table) []float64 {
	out := make([]float64, len(probs))
	for i, p := range probs {
		out[i] = math.Log(p)
		for j, tp := range table.Probability {
			if tp == p {
				out[i] = table.LogProbability[j]
				break
			}
		}
	}
	return out
}

var referenceProbability = []float64{
	0.99985, 0.00015, // H-1, H-2
	0.9893, 0.0107, // C-12, C-13
	0.99757, 0.00038, 0.00205, // O-16, O-17, O-18
}

// Reference is computed once at package init so every caller that matches
// against it reuses the exact same log() rounding, regardless of how many
// times LogProbabilities is called or from how many goroutines.
var Reference = Table{
	Probability:    referenceProbability,
	LogProbability: computeReferenceLogs(),
}

func computeReferenceLogs() []float64 {
	out := make([]float64, len(referenceProbability))
	for i, p := range referenceProbability {
		out[i] = math.Log(p)
	}
	return out
}

// Masses for the Reference table's isotopes, in the same H/C/O order, for
// convenience in tests and examples (spec.md §8's canonical element values).
var ReferenceMasses = []float64{
	1.00782503207, 2.0141017778, // H-1, H-2
	12.0, 13.0033548378, // C-12, C-13
	15.99491461957, 16.99913170, 17.9991610, // O-16, O-17, O-18
}
