package measure

import (
	"testing"
	"time"
)

func TestIncrAccumulatesAndCountersResets(t *testing.T) {
	var r Run
	r.Incr("pops", 3)
	r.Incr("pops", 4)
	r.Incr("pushes", 1)

	counts := r.Counters()
	if counts["pops"] != 7 {
		t.Fatalf("pops = %d, want 7", counts["pops"])
	}
	if counts["pushes"] != 1 {
		t.Fatalf("pushes = %d, want 1", counts["pushes"])
	}

	again := r.Counters()
	if again["pops"] != 0 || again["pushes"] != 0 {
		t.Fatalf("Counters did not reset: %v", again)
	}
}

func TestTrackRecordsAndClearsTimings(t *testing.T) {
	var r Run
	start := time.Now()
	r.Track(start, "hillclimb")

	entries := r.Timings()
	if len(entries) != 1 || entries[0].Label != "hillclimb" {
		t.Fatalf("Timings = %v, want one entry labeled hillclimb", entries)
	}

	if len(r.Timings()) != 0 {
		t.Fatal("Timings did not clear the entry list")
	}
}
