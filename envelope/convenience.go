package envelope

import (
	"isospec/generator"
	"isospec/iso"
)

// ThresholdOptions configures NewThresholdEnvelope (spec.md §4.11's
// Threshold variant: {threshold, absolute, get_masses, get_probs,
// get_lprobs, get_confs}).
type ThresholdOptions struct {
	Threshold float64
	Absolute  bool
	Options
	TabSize  int
	HashSize int
}

// NewThresholdEnvelope consumes it, drives an IsoThresholdGenerator to
// exhaustion, and tabulates the result.
func NewThresholdEnvelope(it *iso.Iso, opts ThresholdOptions) *FixedEnvelope {
	width := totalWidth(it)
	g := generator.NewThreshold(it, opts.Threshold, opts.Absolute, opts.TabSize, opts.HashSize)
	return Tabulate(g, width, opts.Options)
}

// LayeredOptions configures NewLayeredEnvelope (spec.md §4.11's Layered
// variant: {target_coverage, optimize, get_masses, get_probs, get_lprobs,
// get_confs}).
type LayeredOptions struct {
	TargetCoverage float64
	Optimize       bool
	Options
	TabSize  int
	HashSize int
}

// NewLayeredEnvelope consumes it, drives an IsoLayeredGenerator to
// exhaustion, and tabulates the result.
func NewLayeredEnvelope(it *iso.Iso, opts LayeredOptions) *FixedEnvelope {
	width := totalWidth(it)
	g := generator.NewLayered(it, opts.TargetCoverage, opts.Optimize, opts.TabSize, opts.HashSize)
	return Tabulate(g, width, opts.Options)
}

// OrderedOptions configures NewOrderedEnvelope.
type OrderedOptions struct {
	Options
	HashSize int
}

// NewOrderedEnvelope consumes it, drives an IsoOrderedGenerator to
// exhaustion, and tabulates the result in strict descending log-probability
// order.
func NewOrderedEnvelope(it *iso.Iso, opts OrderedOptions) *FixedEnvelope {
	width := totalWidth(it)
	g := generator.NewOrdered(it, opts.HashSize)
	return Tabulate(g, width, opts.Options)
}

func totalWidth(it *iso.Iso) int {
	w := 0
	for _, m := range it.Marginals {
		w += m.K
	}
	return w
}
