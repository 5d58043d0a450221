// Package envelope implements the FixedEnvelope tabulators (spec.md
// §4.11): drive a generator to exhaustion and materialize its output into
// dense parallel arrays.
package envelope

// Generator is the common pull interface every generator package exposes
// (ThresholdGenerator, LayeredGenerator, OrderedGenerator): advance, then
// query the current configuration.
type Generator interface {
	AdvanceToNextConfiguration() bool
	Mass() float64
	LProb() float64
	Prob() float64
	GetConfSignature(buf []int32)
}

// Options selects which of the four parallel arrays to materialize.
type Options struct {
	GetMasses bool
	GetLProbs bool
	GetProbs  bool
	GetConfs  bool
}

// FixedEnvelope holds the dense arrays produced by Tabulate.
type FixedEnvelope struct {
	masses    []float64
	lprobs    []float64
	probs     []float64
	confs     []int32
	confWidth int
	n         int
}

// Tabulate drains g to exhaustion, recording whichever of
// masses/log-probs/probs/confs opts selects. confWidth is the per-entry
// length of a flattened whole-molecule configuration (Σ isotope_numbers).
func Tabulate(g Generator, confWidth int, opts Options) *FixedEnvelope {
	fe := &FixedEnvelope{confWidth: confWidth}
	var buf []int32
	if opts.GetConfs {
		buf = make([]int32, confWidth)
	}
	for g.AdvanceToNextConfiguration() {
		if opts.GetMasses {
			fe.masses = append(fe.masses, g.Mass())
		}
		if opts.GetLProbs {
			fe.lprobs = append(fe.lprobs, g.LProb())
		}
		if opts.GetProbs {
			fe.probs = append(fe.probs, g.Prob())
		}
		if opts.GetConfs {
			g.GetConfSignature(buf)
			fe.confs = append(fe.confs, buf...)
		}
		fe.n++
	}
	return fe
}

// ConfsNo returns the number of tabulated configurations.
func (fe *FixedEnvelope) ConfsNo() int { return fe.n }

// ConfWidth returns the per-entry length of a flattened configuration in
// the Confs array (Σ isotope_numbers).
func (fe *FixedEnvelope) ConfWidth() int { return fe.confWidth }

// Masses returns the tabulated masses. If release is true, the envelope
// drops its own reference — the caller becomes the sole owner, mirroring
// the original's release-transfers-ownership contract (there is nothing
// to manually free in Go, but a second call with release=true returns nil).
func (fe *FixedEnvelope) Masses(release bool) []float64 {
	out := fe.masses
	if release {
		fe.masses = nil
	}
	return out
}

// LProbs returns the tabulated log-probabilities, with the same release
// semantics as Masses.
func (fe *FixedEnvelope) LProbs(release bool) []float64 {
	out := fe.lprobs
	if release {
		fe.lprobs = nil
	}
	return out
}

// Probs returns the tabulated probabilities, with the same release
// semantics as Masses.
func (fe *FixedEnvelope) Probs(release bool) []float64 {
	out := fe.probs
	if release {
		fe.probs = nil
	}
	return out
}

// Confs returns the flattened configurations (n*confWidth entries,
// element-major then isotope-major), with the same release semantics as
// Masses.
func (fe *FixedEnvelope) Confs(release bool) []int32 {
	out := fe.confs
	if release {
		fe.confs = nil
	}
	return out
}
