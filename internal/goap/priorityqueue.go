package goap

import (
	"container/heap"

	"github.com/wojons/ptp-core/internal/model"
)

// pqItem is one heap entry: (priority, goal_id, goal) plus the index
// container/heap needs for O(log n) removal, grounded on the
// goalPriorityQueue pattern in the pack's elite-agent-collective
// memory package.
type pqItem struct {
	goalID   string
	priority float64
	goal     *model.Goal
	index    int
}

type itemHeap []*pqItem

func (h itemHeap) Len() int { return len(h) }

// Less orders by descending priority, then ascending goal_id, matching
// the (−priority, goal_id, goal) key from spec.md §4.6.
func (h itemHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].goalID < h[j].goalID
}

func (h itemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *itemHeap) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// PriorityQueue is a heap over goals keyed by (−priority, goal_id,
// goal), with a side map of each goal's current priority so a stale
// heap entry (superseded by UpdatePriority) is skipped on pop instead
// of removed eagerly (spec.md §4.6).
type PriorityQueue struct {
	items   itemHeap
	current map[string]float64
}

// NewPriorityQueue builds an empty queue.
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{current: make(map[string]float64)}
}

// Push inserts a goal at the given priority.
func (q *PriorityQueue) Push(g *model.Goal, priority float64) {
	item := &pqItem{goalID: g.GoalID, priority: priority, goal: g}
	heap.Push(&q.items, item)
	q.current[g.GoalID] = priority
}

// UpdatePriority reinserts the goal at a new priority; the prior heap
// entry becomes stale and is discarded the next time it's popped.
func (q *PriorityQueue) UpdatePriority(g *model.Goal, priority float64) {
	q.Push(g, priority)
}

// Pop removes and returns the highest-priority live goal, skipping any
// stale entries whose current priority in the side map no longer
// matches the popped entry. Returns nil when the queue is empty.
func (q *PriorityQueue) Pop() *model.Goal {
	for q.items.Len() > 0 {
		item := heap.Pop(&q.items).(*pqItem)
		if q.current[item.goalID] != item.priority {
			continue // stale: superseded by a later UpdatePriority
		}
		delete(q.current, item.goalID)
		return item.goal
	}
	return nil
}

// Len reports the number of entries still on the heap, including any
// stale ones not yet skipped — callers wanting a live count should use
// LiveLen.
func (q *PriorityQueue) Len() int { return q.items.Len() }

// LiveLen reports the number of goals with an up-to-date heap entry.
func (q *PriorityQueue) LiveLen() int { return len(q.current) }

// Peek reports whether the queue currently holds any live entries.
func (q *PriorityQueue) Peek() bool { return len(q.current) > 0 }
