package diagnostics

import (
	"container/list"
	"context"
	"sync"
)

// DefaultCapacity is the number of entries a Recorder keeps by default.
const DefaultCapacity = 100

// Recorder keeps the most recent entries, evicting the oldest first.
type Recorder struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List
	mu       sync.Mutex
}

// NewRecorder creates a recorder holding at most capacity entries.
// The capacity must be positive, otherwise it panics.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		panic("diagnostics recorder capacity must be positive")
	}
	return &Recorder{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Collect stores e. An entry with an id already present replaces it.
func (r *Recorder) Collect(_ context.Context, e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if elem, ok := r.items[e.ID]; ok {
		elem.Value = e
		r.order.MoveToFront(elem)
		return
	}

	r.items[e.ID] = r.order.PushFront(e)
	if r.order.Len() > r.capacity {
		oldest := r.order.Back()
		r.order.Remove(oldest)
		delete(r.items, oldest.Value.(Entry).ID)
	}
}

// Get returns the entry recorded under id.
func (r *Recorder) Get(id string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if elem, ok := r.items[id]; ok {
		return elem.Value.(Entry), true
	}
	return Entry{}, false
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (r *Recorder) Recent(n int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || n > r.order.Len() {
		n = r.order.Len()
	}
	out := make([]Entry, 0, n)
	for elem := r.order.Front(); elem != nil && len(out) < n; elem = elem.Next() {
		out = append(out, elem.Value.(Entry))
	}
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]*list.Element)
	r.order.Init()
}
