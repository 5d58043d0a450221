package generator

import (
	"math"

	"isospec/conf"
	"isospec/iso"
	"isospec/marginal"
)

// jointNode is one pending whole-molecule configuration in an
// OrderedGenerator's global priority queue.
type jointNode struct {
	c     conf.Conf
	lprob float64
}

func (n jointNode) LProb() float64 { return n.lprob }

// OrderedGenerator yields whole-molecule configurations in strict
// descending log-probability (spec.md §4.10), using one global priority
// queue of partial joint configurations seeded at every element's mode,
// with successors generated by a one-atom transfer inside any single
// element's sub-configuration.
type OrderedGenerator struct {
	marginals []*marginal.Marginal
	offsets   []int
	widths    []int

	pq      conf.PQ
	visited *conf.VisitedSet

	cur      conf.Conf
	curLProb float64
}

// NewOrdered consumes it and seeds the search at the mode of every element.
func NewOrdered(it *iso.Iso, hashSize int) *OrderedGenerator {
	it.Disown()
	if hashSize <= 0 {
		hashSize = defaultHashSize
	}

	dim := len(it.Marginals)
	offsets := make([]int, dim)
	widths := make([]int, dim)
	total := 0
	for e, m := range it.Marginals {
		offsets[e] = total
		widths[e] = m.K
		total += m.K
	}

	g := &OrderedGenerator{
		marginals: it.Marginals,
		offsets:   offsets,
		widths:    widths,
		visited:   conf.NewVisitedSet(hashSize),
	}

	seed := make(conf.Conf, total)
	lp := 0.0
	for e, m := range it.Marginals {
		copy(seed[offsets[e]:offsets[e]+widths[e]], m.ModeConf)
		lp += m.ModeLProb
	}
	g.pq.PushItem(jointNode{c: seed, lprob: lp})
	g.visited.Add(seed)
	return g
}

func (g *OrderedGenerator) jointLProb(c conf.Conf) float64 {
	var total float64
	for e, m := range g.marginals {
		sub := c[g.offsets[e] : g.offsets[e]+g.widths[e]]
		total += m.LogProb(sub)
	}
	return total
}

// AdvanceToNextConfiguration pops the best pending configuration and
// enqueues its unvisited one-atom-transfer neighbours within every
// element, returning false once the queue is empty.
func (g *OrderedGenerator) AdvanceToNextConfiguration() bool {
	if g.pq.Empty() {
		return false
	}
	top := g.pq.PopItem().(jointNode)
	g.cur = top.c
	g.curLProb = top.lprob

	for e := range g.marginals {
		off, w := g.offsets[e], g.widths[e]
		sub := top.c[off : off+w]
		for i := 0; i < w; i++ {
			for j := 0; j < w; j++ {
				if i == j || sub[j] == 0 {
					continue
				}
				cand := append(conf.Conf(nil), top.c...)
				cand[off+i]++
				cand[off+j]--
				if g.visited.Contains(cand) {
					continue
				}
				g.visited.Add(cand)
				g.pq.PushItem(jointNode{c: cand, lprob: g.jointLProb(cand)})
			}
		}
	}
	return true
}

func (g *OrderedGenerator) Mass() float64 {
	var total float64
	for e, m := range g.marginals {
		sub := g.cur[g.offsets[e] : g.offsets[e]+g.widths[e]]
		total += conf.Mass(sub, m.AtomMasses)
	}
	return total
}

func (g *OrderedGenerator) LProb() float64 { return g.curLProb }
func (g *OrderedGenerator) Prob() float64  { return math.Exp(g.curLProb) }

// GetConfSignature writes the current configuration into buf.
func (g *OrderedGenerator) GetConfSignature(buf []int32) { copy(buf, g.cur) }
