package progress

import (
	"context"
	"log"
)

// Tracker owns the in-memory progress for one save slot and mirrors every
// mutation to the store. Store failures degrade to a logged diagnostic; they
// never interrupt play.
type Tracker struct {
	slot     string
	store    Store
	logger   *log.Logger
	progress Progress
}

// NewTracker loads the slot's saved state, falling back to a fresh game when
// the slot is empty or the load fails.
func NewTracker(ctx context.Context, store Store, slot string, logger *log.Logger) *Tracker {
	t := &Tracker{slot: slot, store: store, logger: logger, progress: NewProgress()}
	saved, ok, err := store.Load(ctx, slot)
	if err != nil {
		t.logf("load slot %s: %v", slot, err)
		return t
	}
	if ok {
		t.progress = saved
	}
	return t
}

func (t *Tracker) logf(format string, args ...any) {
	if t.logger != nil {
		t.logger.Printf(format, args...)
	}
}

func (t *Tracker) persist(ctx context.Context) {
	if err := t.store.Save(ctx, t.slot, t.progress); err != nil {
		t.logf("save slot %s: %v", t.slot, err)
	}
}

// Snapshot returns a copy of the current progress.
func (t *Tracker) Snapshot() Progress {
	p := t.progress
	p.Clues = append([]string{}, t.progress.Clues...)
	return p
}

// Chapter returns the furthest unlocked chapter.
func (t *Tracker) Chapter() int { return t.progress.Chapter }

// ChapterUnlocked reports whether the chapter may be entered.
func (t *Tracker) ChapterUnlocked(chapter int) bool {
	return chapter >= 1 && chapter <= t.progress.Chapter
}

// MarkSolved records a chapter completion, awards its clue, and unlocks the
// next chapter.
func (t *Tracker) MarkSolved(ctx context.Context, chapter int) {
	if chapter < 1 || chapter > ChapterCount {
		return
	}
	t.progress.Solved[chapter-1] = true
	if clue, ok := ChapterClues[chapter]; ok {
		t.addClue(clue)
	}
	if chapter >= t.progress.Chapter && t.progress.Chapter <= ChapterCount {
		t.progress.Chapter = chapter + 1
	}
	t.persist(ctx)
}

func (t *Tracker) addClue(clue string) {
	if t.progress.HasClue(clue) {
		return
	}
	t.progress.Clues = append(t.progress.Clues, clue)
}

// AddClue records an extra clue outside the per-chapter awards.
func (t *Tracker) AddClue(ctx context.Context, clue string) {
	if t.progress.HasClue(clue) {
		return
	}
	t.addClue(clue)
	t.persist(ctx)
}

// RecordByteInteraction bumps the sentinel conversation counter.
func (t *Tracker) RecordByteInteraction(ctx context.Context) {
	t.progress.ByteInteractions++
	t.persist(ctx)
}

// Reset wipes the slot back to a fresh game.
func (t *Tracker) Reset(ctx context.Context) {
	t.progress = NewProgress()
	if err := t.store.Delete(ctx, t.slot); err != nil {
		t.logf("delete slot %s: %v", t.slot, err)
	}
	t.persist(ctx)
}
