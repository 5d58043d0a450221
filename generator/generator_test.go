package generator

import (
	"math"
	"sort"
	"testing"

	"isospec/elemtable"
	"isospec/iso"
)

func newWater(t *testing.T) *iso.Iso {
	t.Helper()
	masses := append(append([]float64{}, elemtable.ReferenceMasses[0:2]...), elemtable.ReferenceMasses[4:7]...)
	probs := append(append([]float64{}, elemtable.Reference.Probability[0:2]...), elemtable.Reference.Probability[4:7]...)
	it, err := iso.New(2, []int{2, 3}, []int{2, 1}, masses, probs, elemtable.Reference)
	if err != nil {
		t.Fatalf("iso.New(water): %v", err)
	}
	return it
}

func newMethane(t *testing.T) *iso.Iso {
	t.Helper()
	masses := append(append([]float64{}, elemtable.ReferenceMasses[2:4]...), elemtable.ReferenceMasses[0:2]...)
	probs := append(append([]float64{}, elemtable.Reference.Probability[2:4]...), elemtable.Reference.Probability[0:2]...)
	it, err := iso.New(2, []int{2, 2}, []int{1, 4}, masses, probs, elemtable.Reference)
	if err != nil {
		t.Fatalf("iso.New(methane): %v", err)
	}
	return it
}

func newCarbon(t *testing.T, n int) *iso.Iso {
	t.Helper()
	it, err := iso.New(1, []int{2}, []int{n}, elemtable.ReferenceMasses[2:4], elemtable.Reference.Probability[2:4], elemtable.Reference)
	if err != nil {
		t.Fatalf("iso.New(C%d): %v", n, err)
	}
	return it
}

func newHydrogenAtom(t *testing.T) *iso.Iso {
	t.Helper()
	it, err := iso.New(1, []int{2}, []int{1}, elemtable.ReferenceMasses[0:2], elemtable.Reference.Probability[0:2], elemtable.Reference)
	if err != nil {
		t.Fatalf("iso.New(H1): %v", err)
	}
	return it
}

// TestThresholdWater is canonical scenario A: water at an absolute
// log-probability threshold of log(0.0001) must include both the all-light
// and an all-heavy-oxygen configuration, and every emitted entry must clear
// the threshold.
func TestThresholdWater(t *testing.T) {
	it := newWater(t)
	threshold := math.Log(0.0001)
	g := NewThreshold(it, threshold, true, 0, 0)

	var masses []float64
	for g.AdvanceToNextConfiguration() {
		if g.LProb() < threshold {
			t.Fatalf("emitted lprob %v below threshold %v", g.LProb(), threshold)
		}
		masses = append(masses, g.Mass())
	}
	if len(masses) == 0 {
		t.Fatal("ThresholdGenerator(water) produced no configurations")
	}
	wantLight := 2*elemtable.ReferenceMasses[0] + elemtable.ReferenceMasses[4]
	found := false
	for _, m := range masses {
		if math.Abs(m-wantLight) < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Fatalf("all-light water configuration (mass %.6f) missing from %v", wantLight, masses)
	}
	wantHeavyO := 2*elemtable.ReferenceMasses[0] + elemtable.ReferenceMasses[6]
	found = false
	for _, m := range masses {
		if math.Abs(m-wantHeavyO) < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Fatalf("heavy-oxygen water configuration (mass %.6f) missing from %v", wantHeavyO, masses)
	}
}

// TestThresholdMethaneAtMode is canonical scenario B: thresholding methane
// exactly at its own mode log-probability yields exactly one configuration:
// the mode itself.
func TestThresholdMethaneAtMode(t *testing.T) {
	it := newMethane(t)
	modeLProb := it.ModeLProb
	g := NewThreshold(it, modeLProb, true, 0, 0)

	n := 0
	var gotLProb, gotMass float64
	for g.AdvanceToNextConfiguration() {
		n++
		gotLProb = g.LProb()
		gotMass = g.Mass()
	}
	if n != 1 {
		t.Fatalf("methane at-mode threshold produced %d configurations, want 1", n)
	}
	if math.Abs(gotLProb-modeLProb) > 1e-9 {
		t.Fatalf("lone configuration lprob = %v, want mode %v", gotLProb, modeLProb)
	}
	if math.Abs(gotMass-it.ModeMass) > 1e-9 {
		t.Fatalf("lone configuration mass = %v, want ModeMass %v", gotMass, it.ModeMass)
	}
}

func TestThresholdAboveModeYieldsNothing(t *testing.T) {
	it := newWater(t)
	g := NewThreshold(it, it.ModeLProb+1.0, true, 0, 0)
	if g.AdvanceToNextConfiguration() {
		t.Fatal("threshold above the mode produced a configuration")
	}
}

// TestOrderedHydrogenAtom is canonical scenario D: a single hydrogen atom's
// ordered search must yield exactly the two possible configurations, H-1
// then H-2, in strictly descending log-probability.
func TestOrderedHydrogenAtom(t *testing.T) {
	it := newHydrogenAtom(t)
	g := NewOrdered(it, 0)

	var lprobs []float64
	var masses []float64
	for g.AdvanceToNextConfiguration() {
		lprobs = append(lprobs, g.LProb())
		masses = append(masses, g.Mass())
	}
	if len(lprobs) != 2 {
		t.Fatalf("ordered H1 search produced %d configurations, want 2", len(lprobs))
	}
	if lprobs[0] <= lprobs[1] {
		t.Fatalf("ordered output not strictly descending: %v", lprobs)
	}
	if math.Abs(masses[0]-elemtable.ReferenceMasses[0]) > 1e-9 {
		t.Fatalf("first ordered mass = %v, want H-1 mass %v", masses[0], elemtable.ReferenceMasses[0])
	}
	if math.Abs(masses[1]-elemtable.ReferenceMasses[1]) > 1e-9 {
		t.Fatalf("second ordered mass = %v, want H-2 mass %v", masses[1], elemtable.ReferenceMasses[1])
	}
}

func TestOrderedIsNonIncreasing(t *testing.T) {
	it := newCarbon(t, 20)
	g := NewOrdered(it, 0)
	var last float64
	first := true
	for n := 0; n < 50 && g.AdvanceToNextConfiguration(); n++ {
		if !first && g.LProb() > last {
			t.Fatalf("ordered generator lprob increased: %v after %v", g.LProb(), last)
		}
		last = g.LProb()
		first = false
	}
}

// TestLayeredCarbon100 is canonical scenario C: a layered search over C100
// with optimize set must cover at least the target fraction of probability
// mass without including more than the minimal covering prefix.
func TestLayeredCarbon100(t *testing.T) {
	it := newCarbon(t, 100)
	const target = 0.99
	g := NewLayered(it, target, true, 0, 0)

	var lprobs []float64
	for g.AdvanceToNextConfiguration() {
		lprobs = append(lprobs, g.LProb())
	}
	if len(lprobs) == 0 {
		t.Fatal("layered C100 search produced no configurations")
	}
	for i := 1; i < len(lprobs); i++ {
		if lprobs[i] > lprobs[i-1] {
			t.Fatalf("optimized layered output not descending at %d: %v > %v", i, lprobs[i], lprobs[i-1])
		}
	}
	var full, withoutLast float64
	for i, lp := range lprobs {
		full += math.Exp(lp)
		if i < len(lprobs)-1 {
			withoutLast += math.Exp(lp)
		}
	}
	if full < target {
		t.Fatalf("full covering set probability %v below target %v", full, target)
	}
	if withoutLast >= target {
		t.Fatalf("prefix without the last entry already reaches target (%v >= %v): not a minimal cover", withoutLast, target)
	}
}

// TestThresholdIdempotence is canonical scenario E: rebuilding the same
// molecule and running ThresholdGenerator twice at the same threshold
// produces the same multiset of (mass, lprob) pairs, independent of run.
func TestThresholdIdempotence(t *testing.T) {
	threshold := math.Log(0.0001)
	collect := func(it *iso.Iso) [][2]float64 {
		g := NewThreshold(it, threshold, true, 0, 0)
		var out [][2]float64
		for g.AdvanceToNextConfiguration() {
			out = append(out, [2]float64{g.Mass(), g.LProb()})
		}
		sort.Slice(out, func(i, j int) bool { return out[i][1] > out[j][1] })
		return out
	}
	a := collect(newWater(t))
	b := collect(newWater(t))
	if len(a) != len(b) {
		t.Fatalf("run sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if math.Abs(a[i][0]-b[i][0]) > 1e-9 || math.Abs(a[i][1]-b[i][1]) > 1e-9 {
			t.Fatalf("entry %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestThresholdDisownPreventsReuse(t *testing.T) {
	it := newWater(t)
	NewThreshold(it, 0, true, 0, 0)
	defer func() {
		if recover() == nil {
			t.Fatal("building a second generator from a consumed Iso did not panic")
		}
	}()
	NewThreshold(it, 0, true, 0, 0)
}
