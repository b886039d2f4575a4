package datastructure

import (
	"errors"

	"github.com/lintang-b-s/elenav/pkg"
)

// SearchKey is the heap item of the vertex searches: the vertex and the
// distance (meter) accumulated on the way to it.
type SearchKey struct {
	node Index
	dist float64
}

func NewSearchKey(node Index, dist float64) SearchKey {
	return SearchKey{node: node, dist: dist}
}

func (qk SearchKey) GetNode() Index {
	return qk.node
}

func (qk SearchKey) GetDist() float64 {
	return qk.dist
}

// SearchKeyLess orders equal-rank keys by accumulated distance, then by vertex id.
func SearchKeyLess(a, b SearchKey) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.node < b.node
}

type PriorityQueueNode[T comparable] struct {
	rank    float64
	item    T
	itemPos int
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

func (p *PriorityQueueNode[T]) SetRank(rank float64) {
	p.rank = rank
}
func (p *PriorityQueueNode[T]) SetPos(i int) {
	p.itemPos = i
}

func (p *PriorityQueueNode[T]) GetPos() int {
	return p.itemPos
}

func NewPriorityQueueNode[T comparable](rank float64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{rank: rank, item: item}
}

// MinHeap d-ary heap priorityqueue. nodes with equal rank are ordered by tieLess when set.
type MinHeap[T comparable] struct {
	heap    []*PriorityQueueNode[T]
	d       int
	tieLess func(a, b T) bool
}

func NewFourAryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](4)
}

func NewdAryHeap[T comparable](d int) *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]*PriorityQueueNode[T], 0),
		d:    d,
	}
}

// NewFourAryHeapWithTieBreak returns a 4-ary heap that orders equal ranks with tieLess.
func NewFourAryHeapWithTieBreak[T comparable](tieLess func(a, b T) bool) *MinHeap[T] {
	h := NewdAryHeap[T](4)
	h.tieLess = tieLess
	return h
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.heap[i], h.heap[j]
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if h.tieLess == nil {
		return false
	}
	return h.tieLess(a.item, b.item)
}

// heapifyUp mempertahankan heap property. check apakah parent dari index lebih besar kalau iya swap, then recursive ke parent.  O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.Swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown mempertahankan heap property. check apakah nilai salah satu children dari index lebih kecil kalau iya swap, then recursive ke children yang kecil tadi.  O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {

	leftMostChild := index*h.d + 1
	if leftMostChild >= len(h.heap) {
		return
	}

	sentinel := leftMostChild + h.d
	if sentinel > len(h.heap) {
		sentinel = len(h.heap)
	}

	smallest := leftMostChild
	for i := leftMostChild + 1; i < sentinel; i++ {
		if h.less(i, smallest) {
			smallest = i
		}
	}

	if h.less(smallest, index) {
		h.Swap(index, smallest)

		h.heapifyDown(smallest)
	}
}

func (h *MinHeap[T]) Swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]

	h.heap[i].SetPos(i)
	h.heap[j].SetPos(j)
}

// isEmpty check apakah heap kosong
func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

// size ukuran heap
func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
}

// getMin mendapatkan nilai minimum dari min-heap (index 0)
func (h *MinHeap[T]) GetMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return &PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) GetMinrank() float64 {
	if h.IsEmpty() {
		return 2 * pkg.INF_WEIGHT
	}
	return h.heap[0].rank
}

// insert item baru
func (h *MinHeap[T]) Insert(key *PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	key.SetPos(index)
	h.heapifyUp(index)
}

// extractMin ambil nilai minimum dari min-heap (index 0) & pop dari heap. O(logN), heapifyDown(0) O(logN)
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return &PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	root := h.heap[0]

	h.Swap(0, h.Size()-1)

	h.heap = h.heap[:h.Size()-1]
	root.SetPos(-1)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}

// decreaseKey update rank dari item min-heap.   O(logN) heapify.
func (h *MinHeap[T]) DecreaseKey(item *PriorityQueueNode[T], rank float64, newItem T) error {
	itemPos := item.GetPos()
	if itemPos < 0 || itemPos >= h.Size() || h.heap[itemPos].GetRank() < rank {
		return errors.New("invalid index or new value")
	}

	h.heap[itemPos].SetRank(rank)
	h.heap[itemPos].item = newItem
	h.heapifyUp(itemPos)
	return nil
}
