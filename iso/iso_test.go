package iso

import (
	"math"
	"testing"

	"isospec/elemtable"
)

func water(t *testing.T) *Iso {
	t.Helper()
	isotopeNumbers := []int{2, 3}
	atomCounts := []int{2, 1}
	masses := append(append([]float64{}, elemtable.ReferenceMasses[0:2]...), elemtable.ReferenceMasses[4:7]...)
	probs := append(append([]float64{}, elemtable.Reference.Probability[0:2]...), elemtable.Reference.Probability[4:7]...)
	it, err := New(2, isotopeNumbers, atomCounts, masses, probs, elemtable.Reference)
	if err != nil {
		t.Fatalf("New(water) failed: %v", err)
	}
	return it
}

func TestNewValidation(t *testing.T) {
	ref := elemtable.Reference
	cases := []struct {
		name      string
		dim       int
		isoNums   []int
		atomNums  []int
		masses    []float64
		probs     []float64
	}{
		{"zero dim", 0, nil, nil, nil, nil},
		{"isotope_numbers length mismatch", 2, []int{2}, []int{1, 1}, elemtable.ReferenceMasses[0:2], elemtable.Reference.Probability[0:2]},
		{"zero isotopes for an element", 1, []int{0}, []int{1}, nil, nil},
		{"masses total length mismatch", 1, []int{2}, []int{1}, []float64{1.0}, []float64{1.0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.dim, c.isoNums, c.atomNums, c.masses, c.probs, ref); err == nil {
				t.Fatalf("New(%+v) succeeded, want error", c)
			}
		})
	}
}

func TestAggregateOrdering(t *testing.T) {
	it := water(t)
	// spec.md §4.7's expected ordering of the aggregate mass statistics.
	if it.LightestMass > it.MonoisotopicMass+1e-9 {
		t.Fatalf("LightestMass %v > MonoisotopicMass %v", it.LightestMass, it.MonoisotopicMass)
	}
	if it.MonoisotopicMass > it.TheoreticalAverageMass+1e-6 {
		t.Fatalf("MonoisotopicMass %v > TheoreticalAverageMass %v", it.MonoisotopicMass, it.TheoreticalAverageMass)
	}
	if it.TheoreticalAverageMass > it.HeaviestMass+1e-9 {
		t.Fatalf("TheoreticalAverageMass %v > HeaviestMass %v", it.TheoreticalAverageMass, it.HeaviestMass)
	}
	// Water's monoisotopic mass is the all-light-isotope mass: 2*H-1 + O-16.
	wantMono := 2*elemtable.ReferenceMasses[0] + elemtable.ReferenceMasses[4]
	if math.Abs(it.MonoisotopicMass-wantMono) > 1e-9 {
		t.Fatalf("MonoisotopicMass = %v, want %v", it.MonoisotopicMass, wantMono)
	}
}

func TestDisownPanicsOnSecondCall(t *testing.T) {
	it := water(t)
	it.Disown()
	defer func() {
		if recover() == nil {
			t.Fatal("second Disown() did not panic")
		}
	}()
	it.Disown()
}
