package link

// entry is a queued note id and its distance from the root.
type entry struct {
	ID    string
	Depth int
}

// Queue is a BFS queue of note ids. Each id is enqueued at most once, at
// the depth it was first reached.
type Queue struct {
	entries []entry
	depth   map[string]int
	next    int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{depth: make(map[string]int)}
}

// Add enqueues id at depth unless it was seen before. It reports whether
// the id was new.
func (q *Queue) Add(id string, depth int) bool {
	if _, seen := q.depth[id]; seen {
		return false
	}
	q.depth[id] = depth
	q.entries = append(q.entries, entry{ID: id, Depth: depth})
	return true
}

// HasNext reports whether unprocessed ids remain.
func (q *Queue) HasNext() bool {
	return q.next < len(q.entries)
}

// Next pops the next id in BFS order.
func (q *Queue) Next() (string, int) {
	e := q.entries[q.next]
	q.next++
	return e.ID, e.Depth
}

// Seen returns how many distinct ids were enqueued.
func (q *Queue) Seen() int {
	return len(q.entries)
}

// Depth returns the depth id was reached at.
func (q *Queue) Depth(id string) (int, bool) {
	d, ok := q.depth[id]
	return d, ok
}
