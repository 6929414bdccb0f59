package progress

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
)

type memStore struct {
	slots   map[string]Progress
	saveErr error
	loadErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{slots: make(map[string]Progress)}
}

func (m *memStore) Save(_ context.Context, slot string, p Progress) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.slots[slot] = p
	return nil
}

func (m *memStore) Load(_ context.Context, slot string) (Progress, bool, error) {
	if m.loadErr != nil {
		return Progress{}, false, m.loadErr
	}
	p, ok := m.slots[slot]
	return p, ok, nil
}

func (m *memStore) Delete(_ context.Context, slot string) error {
	delete(m.slots, slot)
	return nil
}

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestTrackerStartsFresh(t *testing.T) {
	tr := NewTracker(context.Background(), newMemStore(), "slot-1", discard())
	if tr.Chapter() != 1 {
		t.Fatalf("chapter = %d, want 1", tr.Chapter())
	}
	if !tr.ChapterUnlocked(1) || tr.ChapterUnlocked(2) {
		t.Fatal("only chapter 1 should start unlocked")
	}
}

func TestMarkSolvedAwardsClueAndUnlocks(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tr := NewTracker(ctx, store, "slot-1", discard())

	tr.MarkSolved(ctx, 1)
	snap := tr.Snapshot()
	if !snap.Solved[0] {
		t.Fatal("chapter 1 not marked solved")
	}
	if !snap.HasClue(ClueBeforeWolves) {
		t.Fatalf("clues = %v, want %s", snap.Clues, ClueBeforeWolves)
	}
	if tr.Chapter() != 2 || !tr.ChapterUnlocked(2) {
		t.Fatalf("chapter = %d after solve, want 2", tr.Chapter())
	}

	// Replaying a solved chapter neither duplicates its clue nor regresses
	// the unlock.
	tr.MarkSolved(ctx, 1)
	snap = tr.Snapshot()
	if len(snap.Clues) != 1 {
		t.Fatalf("clues = %v after replay", snap.Clues)
	}
	if tr.Chapter() != 2 {
		t.Fatalf("chapter = %d after replay, want 2", tr.Chapter())
	}
}

func TestFullPlaythroughCompletes(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(ctx, newMemStore(), "slot-1", discard())

	for chapter := 1; chapter <= ChapterCount; chapter++ {
		tr.MarkSolved(ctx, chapter)
	}
	snap := tr.Snapshot()
	if !snap.Complete() {
		t.Fatalf("not complete after all chapters: %+v", snap)
	}
	if tr.Chapter() != 6 {
		t.Fatalf("chapter = %d after finishing, want 6 (reward)", tr.Chapter())
	}
	want := []string{ClueBeforeWolves, ClueExodus, ClueNotMeatbrain, ClueSequenceLocated, ClueRexFragment}
	if len(snap.Clues) != len(want) {
		t.Fatalf("clues = %v", snap.Clues)
	}
	for i, clue := range want {
		if snap.Clues[i] != clue {
			t.Fatalf("clue %d = %s, want %s (collection order must persist)", i, snap.Clues[i], clue)
		}
	}
}

func TestTrackerPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	tr := NewTracker(ctx, store, "slot-1", discard())
	tr.MarkSolved(ctx, 1)
	tr.MarkSolved(ctx, 2)
	tr.RecordByteInteraction(ctx)

	reloaded := NewTracker(ctx, store, "slot-1", discard())
	snap := reloaded.Snapshot()
	if snap.Chapter != 3 || !snap.Solved[0] || !snap.Solved[1] {
		t.Fatalf("reloaded snapshot = %+v", snap)
	}
	if snap.ByteInteractions != 1 {
		t.Fatalf("byte interactions = %d", snap.ByteInteractions)
	}

	other := NewTracker(ctx, store, "slot-2", discard())
	if other.Chapter() != 1 {
		t.Fatal("slots leaked into each other")
	}
}

func TestStoreFailuresDegradeSilently(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.saveErr = errors.New("disk full")

	tr := NewTracker(ctx, store, "slot-1", discard())
	tr.MarkSolved(ctx, 1)
	if tr.Chapter() != 2 {
		t.Fatal("save failure blocked in-memory progress")
	}

	store.loadErr = errors.New("corrupt row")
	tr2 := NewTracker(ctx, store, "slot-1", discard())
	if tr2.Chapter() != 1 {
		t.Fatal("load failure did not fall back to a fresh game")
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tr := NewTracker(ctx, store, "slot-1", discard())
	tr.MarkSolved(ctx, 1)
	tr.Reset(ctx)

	snap := tr.Snapshot()
	if snap.Chapter != 1 || snap.SolvedCount() != 0 || len(snap.Clues) != 0 {
		t.Fatalf("reset snapshot = %+v", snap)
	}
}
