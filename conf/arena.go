package conf

// Arena bulk-allocates fixed-length Conf values and owns their backing
// storage. It hands out non-owning slices; previously returned slices
// remain valid and stable for the arena's entire lifetime — growth appends
// a new block rather than reallocating an existing one.
//
// Single-writer: Allocate/MakeCopy must not be called concurrently, but a
// Conf already handed out may be freely read from any goroutine once its
// writer has finished populating it (spec.md §4.3).
type Arena struct {
	width    int // k: length of every Conf this arena produces
	blocks   [][]int32
	cur      []int32 // current block, sliced down as it fills
	blockLen int     // capacity of the next block to allocate
}

const defaultBlockConfs = 1024

// NewArena returns an Arena producing configurations of length width, with
// tabSize as a hint for how many configurations the first block should
// hold (mirrors the original's tabSize constructor parameter).
func NewArena(width int, tabSize int) *Arena {
	if width <= 0 {
		panic("conf: arena width must be positive")
	}
	if tabSize <= 0 {
		tabSize = defaultBlockConfs
	}
	a := &Arena{width: width, blockLen: tabSize}
	a.grow()
	return a
}

func (a *Arena) grow() {
	block := make([]int32, a.width*a.blockLen)
	a.blocks = append(a.blocks, block)
	a.cur = block
	a.blockLen *= 2 // geometric growth, as spec.md §4.3 requires
}

// Allocate returns a zeroed Conf of the arena's fixed width.
func (a *Arena) Allocate() Conf {
	if len(a.cur) < a.width {
		a.grow()
	}
	c := Conf(a.cur[:a.width:a.width])
	a.cur = a.cur[a.width:]
	return c
}

// MakeCopy allocates a new Conf and copies src's contents into it.
func (a *Arena) MakeCopy(src Conf) Conf {
	c := a.Allocate()
	copy(c, src)
	return c
}

// Width reports the fixed configuration length this arena produces.
func (a *Arena) Width() int { return a.width }
