// Package conf provides the basic building blocks shared by every layer of
// the enumeration engine: the configuration vector type, the arena that
// bulk-allocates them, a Kahan-style summator, and the log-probability
// arithmetic used to score a configuration.
//
// Grounded on original_source/IsoSpec++/marginalTrek++.{h,cpp}: Conf there
// is a raw `int*` owned by an Allocator<int>; equality and hashing are a
// pair of functors (ConfEqual, KeyHasher) passed to an
// std::unordered_map<Conf,int,KeyHasher,ConfEqual>. Go has no raw-pointer
// map keys, so VisitedSet (visited.go) reproduces the same hash-then-verify
// shape explicitly instead of relying on pointer identity.
package conf

// Conf is a configuration: a fixed-length, non-negative integer vector
// (isotope counts for one element, or the flattened per-element
// concatenation for a whole molecule) summing to a known atom count. It is
// a non-owning view into memory handed out by an Arena; the zero value is
// not meaningful on its own.
type Conf []int32

// Equal reports whether c and other hold identical counts.
func (c Conf) Equal(other Conf) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Sum returns the total atom count represented by c.
func (c Conf) Sum() int {
	s := 0
	for _, v := range c {
		s += int(v)
	}
	return s
}

// Clone returns a freshly allocated independent copy of c, not drawn from
// any Arena, so the copy stays valid after the arena is gone.
func (c Conf) Clone() Conf {
	out := make(Conf, len(c))
	copy(out, c)
	return out
}
