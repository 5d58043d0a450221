package conf

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Hash is a fixed-size, platform-independent digest of a configuration's
// contents, used as the bucket key of a VisitedSet. A blake2b-256 sum is
// the same for a given configuration on every platform and toolchain. The
// buckets themselves live in an ordinary Go map, whose internal placement
// is the runtime's own; a VisitedSet only answers membership queries and
// is never iterated by the search, so that placement does not affect the
// order in which configurations are found.
type Hash [blake2b.Size256]byte

// HashConf returns the blake2b-256 digest of c's little-endian int32 bytes.
func HashConf(c Conf) Hash {
	buf := make([]byte, len(c)*4)
	for i, v := range c {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return blake2b.Sum256(buf)
}

// VisitedSet is a hash-then-verify membership set over configurations,
// mirroring the original's std::unordered_map<Conf,int,KeyHasher,ConfEqual>:
// Hash narrows the search to a bucket, and Conf.Equal resolves collisions,
// so correctness never depends on the hash being collision-free.
type VisitedSet struct {
	buckets map[Hash][]Conf
}

// NewVisitedSet returns an empty set sized for hashSize expected entries.
func NewVisitedSet(hashSize int) *VisitedSet {
	if hashSize <= 0 {
		hashSize = 1024
	}
	return &VisitedSet{buckets: make(map[Hash][]Conf, hashSize)}
}

// Contains reports whether c (by content, not identity) is already present.
func (v *VisitedSet) Contains(c Conf) bool {
	h := HashConf(c)
	for _, cand := range v.buckets[h] {
		if cand.Equal(c) {
			return true
		}
	}
	return false
}

// Add records c as visited. Callers should check Contains first if they
// need to distinguish a fresh insert from a no-op.
func (v *VisitedSet) Add(c Conf) {
	h := HashConf(c)
	v.buckets[h] = append(v.buckets[h], c)
}

// Len returns the number of distinct configurations recorded.
func (v *VisitedSet) Len() int {
	n := 0
	for _, b := range v.buckets {
		n += len(b)
	}
	return n
}
