package worker

import "sync"

// recentEvents remembers the last n event IDs so a message redelivered after
// a lost ACK is not announced twice by the same process.
type recentEvents struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
	next  int
}

func newRecentEvents(n int) *recentEvents {
	return &recentEvents{
		ids:   make(map[string]struct{}, n),
		order: make([]string, n),
	}
}

func (r *recentEvents) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok
}

func (r *recentEvents) Add(id string) {
	if id == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[id]; ok {
		return
	}
	if old := r.order[r.next]; old != "" {
		delete(r.ids, old)
	}
	r.order[r.next] = id
	r.ids[id] = struct{}{}
	r.next = (r.next + 1) % len(r.order)
}
