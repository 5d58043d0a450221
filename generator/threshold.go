package generator

import (
	"math"

	"isospec/iso"
)

const (
	defaultTabSize  = 1000
	defaultHashSize = 1000
)

// ThresholdGenerator yields every whole-molecule configuration whose
// log-probability is at least threshold (spec.md §4.8). Yield order is
// unspecified; ties at exactly threshold are included.
type ThresholdGenerator struct {
	o *odometer
}

// NewThreshold consumes it and builds a ThresholdGenerator. If absolute is
// false, threshold is interpreted relative to it.ModeLProb (absolute
// cutoff = ModeLProb + threshold), matching spec.md §4.8's "relative to
// the molecule's mode log-probability" — a negative threshold then reads
// naturally as "this many nats below the mode".
func NewThreshold(it *iso.Iso, threshold float64, absolute bool, tabSize, hashSize int) *ThresholdGenerator {
	it.Disown()
	if tabSize <= 0 {
		tabSize = defaultTabSize
	}
	if hashSize <= 0 {
		hashSize = defaultHashSize
	}
	abs := threshold
	if !absolute {
		abs = it.ModeLProb + threshold
	}
	return &ThresholdGenerator{o: newOdometer(it.Marginals, abs, tabSize, hashSize)}
}

// AdvanceToNextConfiguration moves to the next qualifying configuration.
// It returns false once the search is exhausted; calling it again after
// that continues to return false.
func (g *ThresholdGenerator) AdvanceToNextConfiguration() bool { return g.o.advance() }

// Mass, LProb and Prob describe the current configuration. Their result is
// undefined if called before the first AdvanceToNextConfiguration or after
// one has returned false (spec.md §7).
func (g *ThresholdGenerator) Mass() float64  { return g.o.mass() }
func (g *ThresholdGenerator) LProb() float64 { return g.o.curLProb }
func (g *ThresholdGenerator) Prob() float64  { return math.Exp(g.o.curLProb) }

// GetConfSignature writes the current whole-molecule configuration,
// element-major then isotope-major, into buf (which must have room for
// the total isotope count across all elements).
func (g *ThresholdGenerator) GetConfSignature(buf []int32) { copy(buf, g.o.flatten()) }
