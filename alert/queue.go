package alert

import "sort"

// Queue holds pending alerts sorted by descending priority, FIFO among equal priority
// Not safe for concurrent use; the owner confines access to one goroutine
type Queue struct {
	items   []Alert
	nextSeq uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{items: make([]Alert, 0, 16)}
}

// Push inserts a after every alert of greater or equal priority
func (q *Queue) Push(a Alert) {
	a.seq = q.nextSeq
	q.nextSeq++

	// First index whose priority is strictly lower keeps earlier equal-priority arrivals ahead
	idx := sort.Search(len(q.items), func(i int) bool {
		return q.items[i].priority < a.priority
	})

	q.items = append(q.items, Alert{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = a
}

// Pop removes and returns the highest priority, earliest arrived alert
func (q *Queue) Pop() (Alert, bool) {
	if len(q.items) == 0 {
		return Alert{}, false
	}
	a := q.items[0]
	q.items[0] = Alert{}
	q.items = q.items[1:]
	return a, true
}

// Len returns the number of pending alerts
func (q *Queue) Len() int {
	return len(q.items)
}

// Snapshot returns a copy of the pending alerts in display order
func (q *Queue) Snapshot() []Alert {
	out := make([]Alert, len(q.items))
	copy(out, q.items)
	return out
}
