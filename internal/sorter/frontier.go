package sorter

import (
	"container/heap"

	"github.com/NamanBalaji/fman/internal/ordering"
)

// frontierEntry is the pending head line of one chunk.
type frontierEntry struct {
	key   ordering.Key
	chunk int
	line  string
}

// frontier is the merge priority queue. Entries are ordered by key under the
// job comparator, then by chunk index, so equal keys leave in input order.
type frontier struct {
	cmp   ordering.Comparator
	items []frontierEntry
}

func newFrontier(cmp ordering.Comparator, capacity int) *frontier {
	return &frontier{cmp: cmp, items: make([]frontierEntry, 0, capacity)}
}

// before is the composite comparator: primary key, then chunk index.
func (f *frontier) before(a, b frontierEntry) bool {
	if c := f.cmp.Compare(a.key, b.key); c != 0 {
		return c < 0
	}
	return a.chunk < b.chunk
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool { return f.before(f.items[i], f.items[j]) }

func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) { f.items = append(f.items, x.(frontierEntry)) }

func (f *frontier) Pop() any {
	n := len(f.items)
	e := f.items[n-1]
	f.items[n-1] = frontierEntry{}
	f.items = f.items[:n-1]
	return e
}

func (f *frontier) push(e frontierEntry) { heap.Push(f, e) }

func (f *frontier) pop() frontierEntry { return heap.Pop(f).(frontierEntry) }
