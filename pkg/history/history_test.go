package history

import (
	"sync"
	"testing"
)

func TestUndoRedoScenario(t *testing.T) {
	// Start from an empty set, add marker A, then marker B.
	l := NewLog[string]()
	l.Record("add", []string{}, []string{"A"})
	l.Record("add", []string{"A"}, []string{"A", "B"})

	state, ok := l.Undo()
	if !ok {
		t.Fatal("first undo failed")
	}
	if len(state) != 1 || state[0] != "A" {
		t.Fatalf("first undo restored %v, expected [A]", state)
	}

	state, ok = l.Undo()
	if !ok {
		t.Fatal("second undo failed")
	}
	if len(state) != 0 {
		t.Fatalf("second undo restored %v, expected []", state)
	}

	if _, ok := l.Undo(); ok {
		t.Fatal("undo past the beginning should fail")
	}

	state, ok = l.Redo()
	if !ok {
		t.Fatal("redo failed")
	}
	if len(state) != 1 || state[0] != "A" {
		t.Fatalf("redo restored %v, expected [A]", state)
	}
}

func TestNewActionDiscardsRedoTail(t *testing.T) {
	l := NewLog[string]()
	l.Record("add", []string{}, []string{"A"})
	l.Record("add", []string{"A"}, []string{"A", "B"})

	if _, ok := l.Undo(); !ok {
		t.Fatal("undo failed")
	}
	if !l.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	// A new mutation invalidates the redo entry for B.
	l.Record("add", []string{"A"}, []string{"A", "C"})
	if l.CanRedo() {
		t.Error("redo tail should be discarded by a new action")
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, expected 2 after truncation", l.Len())
	}

	state, ok := l.Undo()
	if !ok {
		t.Fatal("undo after truncation failed")
	}
	if len(state) != 1 || state[0] != "A" {
		t.Errorf("undo restored %v, expected [A]", state)
	}
}

func TestCanUndoCanRedo(t *testing.T) {
	l := NewLog[int]()
	if l.CanUndo() || l.CanRedo() {
		t.Fatal("empty log should allow neither undo nor redo")
	}

	l.Record("add", nil, []int{1})
	if !l.CanUndo() {
		t.Error("CanUndo should be true after a record")
	}
	if l.CanRedo() {
		t.Error("CanRedo should be false at the head")
	}

	l.Undo()
	if l.CanUndo() {
		t.Error("CanUndo should be false when fully undone")
	}
	if !l.CanRedo() {
		t.Error("CanRedo should be true when fully undone")
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	l := NewLog[string]()
	before := []string{}
	after := []string{"A"}
	l.Record("add", before, after)

	// Mutating the caller's slice must not reach the log.
	after[0] = "corrupted"

	l.Record("add", []string{"A"}, []string{"A", "B"})
	state, _ := l.Undo()
	if state[0] != "A" {
		t.Errorf("log shared backing array with caller: %v", state)
	}
}

func TestConcurrentRecord(t *testing.T) {
	l := NewLog[int]()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Record("add", nil, []int{n})
		}(i)
	}
	wg.Wait()
	if l.Len() != 20 {
		t.Errorf("Len() = %d, expected 20", l.Len())
	}
}
