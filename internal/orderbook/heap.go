package orderbook

import (
	"container/heap"

	"github.com/nathanyu/lob-engine/internal/domain"
)

// bidHeap is a max-heap: highest price first, earliest arrival breaks ties.
type bidHeap []*domain.Order

func (h bidHeap) Len() int { return len(h) }

func (h bidHeap) Less(i, j int) bool {
	if h[i].Price != h[j].Price {
		return h[i].Price > h[j].Price
	}
	return h[i].ArrivalSeq < h[j].ArrivalSeq
}

func (h bidHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].SetHeapIndex(i)
	h[j].SetHeapIndex(j)
}

func (h *bidHeap) Push(x any) {
	o := x.(*domain.Order)
	o.SetHeapIndex(len(*h))
	*h = append(*h, o)
}

func (h *bidHeap) Pop() any {
	old := *h
	n := len(old)
	o := old[n-1]
	old[n-1] = nil
	o.SetHeapIndex(-1)
	*h = old[:n-1]
	return o
}

// askHeap is a min-heap: lowest price first, earliest arrival breaks ties.
type askHeap []*domain.Order

func (h askHeap) Len() int { return len(h) }

func (h askHeap) Less(i, j int) bool {
	if h[i].Price != h[j].Price {
		return h[i].Price < h[j].Price
	}
	return h[i].ArrivalSeq < h[j].ArrivalSeq
}

func (h askHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].SetHeapIndex(i)
	h[j].SetHeapIndex(j)
}

func (h *askHeap) Push(x any) {
	o := x.(*domain.Order)
	o.SetHeapIndex(len(*h))
	*h = append(*h, o)
}

func (h *askHeap) Pop() any {
	old := *h
	n := len(old)
	o := old[n-1]
	old[n-1] = nil
	o.SetHeapIndex(-1)
	*h = old[:n-1]
	return o
}

var (
	_ heap.Interface = (*bidHeap)(nil)
	_ heap.Interface = (*askHeap)(nil)
)
