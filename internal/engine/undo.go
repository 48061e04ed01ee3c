package engine

import "github.com/courtkeeper/courtside/internal/model"

// undoDepth bounds the rollback history. Oldest snapshots fall off first.
const undoDepth = 20

// UndoEntry pairs an about-to-be-applied action with deep copies of the
// three mutable aggregates taken immediately before it was applied.
type UndoEntry struct {
	Action    model.Action
	State     model.GameState
	Stats     map[string]*model.PlayerStats
	Analytics model.Analytics
}

// UndoLedger is a bounded snapshot stack: FIFO eviction on overflow, LIFO
// on undo. Rollback replaces whole aggregates, it is not an inverse
// operation, so it is only correct while nothing mutates the aggregates
// between Push and the action's application.
type UndoLedger struct {
	entries []UndoEntry
}

func NewUndoLedger() *UndoLedger {
	return &UndoLedger{entries: make([]UndoEntry, 0, undoDepth)}
}

func (l *UndoLedger) Len() int { return len(l.entries) }

// Push snapshots current state ahead of applying action. GameState and
// Analytics are value types so assignment copies them; the stats map is
// cloned entry by entry.
func (l *UndoLedger) Push(action model.Action, state model.GameState, stats map[string]*model.PlayerStats, analytics model.Analytics) {
	entry := UndoEntry{
		Action:    action,
		State:     state,
		Stats:     model.CloneStats(stats),
		Analytics: analytics,
	}
	if len(l.entries) >= undoDepth {
		l.entries = append(l.entries[1:], entry)
		return
	}
	l.entries = append(l.entries, entry)
}

// Pop removes and returns the most recent snapshot.
func (l *UndoLedger) Pop() (UndoEntry, bool) {
	if len(l.entries) == 0 {
		return UndoEntry{}, false
	}
	last := len(l.entries) - 1
	entry := l.entries[last]
	l.entries = l.entries[:last]
	return entry, true
}
