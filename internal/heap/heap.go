package heap

import "golang.org/x/exp/constraints"

// LessFunc reports whether a must be closer to the top of the heap than b.
type LessFunc[T any] func(a, b T) bool

// Min is a comparator function to implement min-heap for any type that supports ordering.
func Min[T constraints.Ordered](a, b T) bool { return a < b }

// Heap is a generic port of container.Heap. Not safe to use concurrently.
type Heap[T any] struct {
	less  LessFunc[T]
	items []T
}

// New creates new heap data structure with given comparator.
func New[T any](less LessFunc[T]) *Heap[T] {
	return &Heap[T]{
		items: make([]T, 0),
		less:  less,
	}
}

func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *Heap[T]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(h.items[j], h.items[i]) {
			break
		}

		h.swap(i, j)

		j = i
	}
}

func (h *Heap[T]) down(i0, n int) {
	i := i0

	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int rolling
			break
		}

		j := j1 // left child

		if j2 := j1 + 1; j2 < n && h.less(h.items[j2], h.items[j1]) {
			j = j2 // right child
		}

		if !h.less(h.items[j], h.items[i]) {
			break
		}

		h.swap(i, j)

		i = j
	}
}

// Len returns current number of elements on the structure.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Push adds new element to the heap in O(log n) time.
func (h *Heap[T]) Push(val T) {
	h.items = append(h.items, val)
	h.up(h.Len() - 1)
}

// Pop returns and removes the top element from the heap. The ok result is false
// when the heap is empty.
func (h *Heap[T]) Pop() (item T, ok bool) {
	n := h.Len() - 1
	if n < 0 {
		return item, false
	}

	h.swap(0, n)
	h.down(0, n)

	item = h.items[n]

	var zero T
	h.items[n] = zero
	h.items = h.items[:n]

	return item, true
}
