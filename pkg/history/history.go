// Package history implements a linear undo/redo log of snapshots,
// matching conventional editor semantics: any new action taken after an
// undo discards the redo tail.
package history

import (
	"sync"
	"time"
)

// Entry is one recorded mutation: the state before it, the state after
// it, and when it happened.
type Entry[T any] struct {
	Before    []T       `json:"before"`
	After     []T       `json:"after"`
	Action    string    `json:"action"` // add, update, delete, bulk_delete
	Timestamp time.Time `json:"timestamp"`
}

// Log is a linear undo/redo stack over snapshots of []T. The zero
// value is not usable; call NewLog. Safe for concurrent use.
type Log[T any] struct {
	mu      sync.Mutex
	entries []Entry[T]
	// index points at the last applied entry; -1 when fully undone.
	index int
}

// NewLog returns an empty log.
func NewLog[T any]() *Log[T] {
	return &Log[T]{index: -1}
}

// Record pushes a new mutation. Any entries above the current index
// (the redo tail left by prior undos) are truncated first.
func (l *Log[T]) Record(action string, before, after []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries[:l.index+1], Entry[T]{
		Before:    cloneSlice(before),
		After:     cloneSlice(after),
		Action:    action,
		Timestamp: time.Now(),
	})
	l.index = len(l.entries) - 1
}

// Undo steps back one entry and returns the state to restore. ok is
// false when there is nothing to undo.
func (l *Log[T]) Undo() (state []T, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index < 0 {
		return nil, false
	}
	state = cloneSlice(l.entries[l.index].Before)
	l.index--
	return state, true
}

// Redo re-applies the next entry and returns the state to restore. ok
// is false when there is nothing to redo.
func (l *Log[T]) Redo() (state []T, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index+1 >= len(l.entries) {
		return nil, false
	}
	l.index++
	return cloneSlice(l.entries[l.index].After), true
}

// CanUndo reports whether Undo would succeed.
func (l *Log[T]) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index >= 0
}

// CanRedo reports whether Redo would succeed.
func (l *Log[T]) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index+1 < len(l.entries)
}

// Len returns the number of recorded entries (including any redo tail).
func (l *Log[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
