package conf

import "container/heap"

// Item is anything orderable by descending log-probability in a PQ.
type Item interface {
	LProb() float64
}

// PQ is a max-heap (highest LProb popped first) built on container/heap.
// Spec.md §9 leaves the heap implementation to the reader ("the
// implementer picks any heap ... whose key is the configuration
// content") — container/heap is the standard library's priority-queue
// primitive and idiomatic first choice; see DESIGN.md for why no
// third-party heap from the example pack was substituted instead.
type PQ struct {
	items []Item
}

func (pq *PQ) Len() int            { return len(pq.items) }
func (pq *PQ) Less(i, j int) bool  { return pq.items[i].LProb() > pq.items[j].LProb() }
func (pq *PQ) Swap(i, j int)       { pq.items[i], pq.items[j] = pq.items[j], pq.items[i] }
func (pq *PQ) Push(x interface{})  { pq.items = append(pq.items, x.(Item)) }
func (pq *PQ) Pop() interface{} {
	old := pq.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]
	return it
}

// PushItem inserts it, maintaining the heap invariant.
func (pq *PQ) PushItem(it Item) { heap.Push(pq, it) }

// PopItem removes and returns the highest-LProb item.
func (pq *PQ) PopItem() Item { return heap.Pop(pq).(Item) }

// Empty reports whether the queue has no items.
func (pq *PQ) Empty() bool { return len(pq.items) == 0 }
