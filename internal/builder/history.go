package builder

import "github.com/alexisbeaulieu97/pagesmith/internal/domain/page"

// DefaultHistoryLimit caps each history stack.
const DefaultHistoryLimit = 50

// History is a bounded linear undo/redo log of full component-list snapshots.
// It is not safe for concurrent use; Store guards it with its own mutex.
type History struct {
	limit  int
	past   [][]page.PlacedComponent
	future [][]page.PlacedComponent
}

// NewHistory returns a history holding at most limit snapshots per stack.
// Non-positive limits fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Limit returns the per-stack capacity.
func (h *History) Limit() int {
	return h.limit
}

// Record pushes a copy of the pre-mutation list and invalidates the redo stack.
func (h *History) Record(snapshot []page.PlacedComponent) {
	h.past = push(h.past, page.CloneList(snapshot), h.limit)
	h.future = nil
}

// Undo pops the newest past snapshot and parks current on the redo stack.
// Ownership of current passes to the history.
func (h *History) Undo(current []page.PlacedComponent) ([]page.PlacedComponent, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = push(h.future, current, h.limit)
	return prev, true
}

// Redo pops the newest future snapshot and parks current on the undo stack.
func (h *History) Redo(current []page.PlacedComponent) ([]page.PlacedComponent, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = push(h.past, current, h.limit)
	return next, true
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}

func (h *History) CanUndo() bool  { return len(h.past) > 0 }
func (h *History) CanRedo() bool  { return len(h.future) > 0 }
func (h *History) UndoDepth() int { return len(h.past) }
func (h *History) RedoDepth() int { return len(h.future) }

// push appends and discards the oldest entries beyond limit.
func push(stack [][]page.PlacedComponent, snapshot []page.PlacedComponent, limit int) [][]page.PlacedComponent {
	stack = append(stack, snapshot)
	if over := len(stack) - limit; over > 0 {
		copy(stack, stack[over:])
		for i := len(stack) - over; i < len(stack); i++ {
			stack[i] = nil
		}
		stack = stack[:len(stack)-over]
	}
	return stack
}
