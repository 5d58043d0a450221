package marginal

import (
	"math"

	"isospec/conf"
	"isospec/internal/measure"
)

// trekNode is one pending configuration in a Trek's priority queue.
type trekNode struct {
	c     conf.Conf
	lprob float64
}

func (n trekNode) LProb() float64 { return n.lprob }

// Trek is a best-first enumeration of a Marginal's configurations in
// descending log-probability (IsoSpec's MarginalTrek, spec.md §4.5),
// memoized and extendable on demand.
type Trek struct {
	*Marginal

	tabSize, hashSize int
	arena             *conf.Arena
	pq                conf.PQ
	visited           *conf.VisitedSet
	scratch           conf.Conf

	confs     []conf.Conf
	lprobs    []float64
	masses    []float64
	totalProb conf.Summator

	Stats *measure.Run
}

// NewTrek builds a Trek seeded at the Marginal's mode. tabSize/hashSize
// size the arena's first block and the visited set, mirroring the
// original constructor's tabSize/hashSize parameters.
func NewTrek(m *Marginal, tabSize, hashSize int) *Trek {
	t := &Trek{
		Marginal: m,
		tabSize:  tabSize,
		hashSize: hashSize,
		scratch:  make(conf.Conf, m.K),
		Stats:    &measure.Run{},
	}
	t.reset()
	t.reseed()
	return t
}

func (t *Trek) reset() {
	t.arena = conf.NewArena(t.K, t.tabSize)
	t.visited = conf.NewVisitedSet(t.hashSize)
	t.pq = conf.PQ{}
	t.confs = nil
	t.lprobs = nil
	t.masses = nil
	t.totalProb.Reset()
}

// reseed performs the constructor hill-climb safety pass (spec.md §4.5,
// §9): because the step neighbourhood is identical to ordinary
// enumeration's, we greedily walk add_next_conf until the newly emitted
// log-probability drops below the previous one, take the best
// configuration seen during that walk as the true seed, and reset before
// real enumeration begins. This protects against initialConfigure's
// rounding landing one hill-climb step short of the mode on distributions
// with near-ties — see the Open Question in spec.md §9 about this not
// being proven to always recover the global mode.
func (t *Trek) reseed() {
	mode := t.arena.MakeCopy(t.Marginal.ModeConf)
	t.pq.PushItem(trekNode{c: mode, lprob: t.Marginal.LogProb(mode)})
	t.visited.Add(mode)

	lastProb := math.Inf(-1)
	for t.addNextConf() {
		cur := t.lprobs[len(t.lprobs)-1]
		if cur < lastProb {
			break
		}
		lastProb = cur
	}

	bestIdx := 0
	for i, lp := range t.lprobs {
		if lp > t.lprobs[bestIdx] {
			bestIdx = i
		}
	}
	best := append(conf.Conf(nil), t.confs[bestIdx]...)

	t.reset()
	seed := t.arena.MakeCopy(best)
	t.pq.PushItem(trekNode{c: seed, lprob: t.Marginal.LogProb(seed)})
	t.visited.Add(seed)
	t.addNextConf()
}

// addNextConf pops the best pending configuration, records it, and pushes
// every unvisited one-atom-transfer neighbour.
func (t *Trek) addNextConf() bool {
	if t.pq.Empty() {
		return false
	}
	top := t.pq.PopItem().(trekNode)
	t.confs = append(t.confs, top.c)
	t.lprobs = append(t.lprobs, top.lprob)
	t.masses = append(t.masses, conf.Mass(top.c, t.AtomMasses))
	t.totalProb.Add(math.Exp(top.lprob))
	t.Stats.Incr("pops", 1)

	k := t.K
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if i == j || top.c[j] == 0 {
				continue
			}
			copy(t.scratch, top.c)
			t.scratch[i]++
			t.scratch[j]--
			if t.visited.Contains(t.scratch) {
				continue
			}
			stored := t.arena.MakeCopy(t.scratch)
			t.visited.Add(stored)
			t.pq.PushItem(trekNode{c: stored, lprob: t.Marginal.LogProb(stored)})
			t.Stats.Incr("pushes", 1)
		}
	}
	return true
}

// ProbeConfigurationIdx ensures at least idx+1 configurations have been
// emitted, extending the search as needed. Returns false if the
// distribution is exhausted before reaching idx.
func (t *Trek) ProbeConfigurationIdx(idx int) bool {
	for len(t.confs) <= idx {
		if !t.addNextConf() {
			return false
		}
	}
	return true
}

// ProcessUntilCutoff extends the search until the accumulated probability
// mass reaches cutoff, returning the least index i with
// Σ_{j≤i} exp(lprob[j]) ≥ cutoff, or len(Confs()) if that's unreachable.
func (t *Trek) ProcessUntilCutoff(cutoff float64) int {
	var s conf.Summator
	for i, lp := range t.lprobs {
		s.Add(math.Exp(lp))
		if s.Get() >= cutoff {
			return i
		}
	}
	for t.totalProb.Get() < cutoff {
		if !t.addNextConf() {
			break
		}
	}
	s.Reset()
	for i, lp := range t.lprobs {
		s.Add(math.Exp(lp))
		if s.Get() >= cutoff {
			return i
		}
	}
	return len(t.confs)
}

// Confs, LProbs and Masses return the configurations emitted so far, in
// descending log-probability.
func (t *Trek) Confs() []conf.Conf   { return t.confs }
func (t *Trek) LProbs() []float64    { return t.lprobs }
func (t *Trek) Masses() []float64    { return t.masses }
func (t *Trek) TotalProb() float64   { return t.totalProb.Get() }
