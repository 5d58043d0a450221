package generator

import (
	"math"
	"sort"

	"isospec/conf"
	"isospec/iso"
)

// initialLayerWidth is the first shell's width below the mode
// log-probability, in nats. Widened by doubling each round that still
// falls short of the target coverage (spec.md §4.9).
const initialLayerWidth = 5.0

type layerEntry struct {
	conf  conf.Conf
	lprob float64
	mass  float64
}

// LayeredGenerator yields configurations in widening log-probability
// shells until the accumulated probability exceeds target_coverage
// (spec.md §4.9). The full covering set is computed at construction time
// (each shell is itself a full odometer run, deduplicated against
// previous shells via a global visited set) and then served one entry at
// a time through AdvanceToNextConfiguration, in shell order.
type LayeredGenerator struct {
	entries []layerEntry
	idx     int
}

// NewLayered consumes it and searches widening shells until the
// accumulated probability reaches targetCoverage. When optimize is set, a
// final trim pass (spec.md §4.9's Open Question, resolved here per §9:
// sort the covering set by descending log-probability and truncate at the
// smallest prefix whose cumulative probability still reaches
// targetCoverage) drops the excess low-probability tail, producing the
// smallest covering set and leaving the output in strict descending order.
func NewLayered(it *iso.Iso, targetCoverage float64, optimize bool, tabSize, hashSize int) *LayeredGenerator {
	it.Disown()
	if tabSize <= 0 {
		tabSize = defaultTabSize
	}
	if hashSize <= 0 {
		hashSize = defaultHashSize
	}
	marginals := it.Marginals
	modeLProb := it.ModeLProb

	seen := conf.NewVisitedSet(hashSize)
	var entries []layerEntry
	var total conf.Summator

	width := initialLayerWidth
	for {
		o := newOdometer(marginals, modeLProb-width, tabSize, hashSize)
		for o.advance() {
			flat := o.flatten()
			if seen.Contains(flat) {
				continue
			}
			seen.Add(flat)
			entries = append(entries, layerEntry{conf: flat, lprob: o.curLProb, mass: o.mass()})
			total.Add(math.Exp(o.curLProb))
		}
		if total.Get() >= targetCoverage {
			break
		}
		width *= 2
	}

	if optimize {
		sort.Slice(entries, func(i, j int) bool { return entries[i].lprob > entries[j].lprob })
		var run conf.Summator
		cut := len(entries)
		for i, e := range entries {
			run.Add(math.Exp(e.lprob))
			if run.Get() >= targetCoverage {
				cut = i + 1
				break
			}
		}
		entries = entries[:cut]
	}

	return &LayeredGenerator{entries: entries, idx: -1}
}

// AdvanceToNextConfiguration moves to the next configuration in shell
// order, returning false once every shell has been served.
func (g *LayeredGenerator) AdvanceToNextConfiguration() bool {
	g.idx++
	return g.idx < len(g.entries)
}

func (g *LayeredGenerator) Mass() float64  { return g.entries[g.idx].mass }
func (g *LayeredGenerator) LProb() float64 { return g.entries[g.idx].lprob }
func (g *LayeredGenerator) Prob() float64  { return math.Exp(g.entries[g.idx].lprob) }

// GetConfSignature writes the current configuration into buf.
func (g *LayeredGenerator) GetConfSignature(buf []int32) { copy(buf, g.entries[g.idx].conf) }
