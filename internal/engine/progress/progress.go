// Package progress tracks the player's journey through the five chapters and
// persists it across sessions.
package progress

import "context"

// Clue identifiers recorded on chapter completion. The vault code derivation
// matches on stems of these strings.
const (
	ClueBeforeWolves    = "they_came_before_wolves"
	ClueExodus          = "exodus_2"
	ClueNotMeatbrain    = "not_meatbrain"
	ClueSequenceLocated = "dino_sequence_located"
	ClueRexFragment     = "rex_type_fragment"
)

// ChapterClues maps each trial chapter to the clue it awards.
var ChapterClues = map[int]string{
	1: ClueBeforeWolves,
	2: ClueExodus,
	3: ClueNotMeatbrain,
	4: ClueSequenceLocated,
	5: ClueRexFragment,
}

// ChapterCount is the number of trial chapters.
const ChapterCount = 5

// Progress is the persisted game state for one save slot.
type Progress struct {
	// Chapter is the furthest unlocked chapter, 1 through 6. Chapter 6 is
	// the reward screen.
	Chapter int
	// Solved is index-aligned to chapters: Solved[0] is chapter 1.
	Solved [ChapterCount]bool
	// Clues preserves collection order without duplicates.
	Clues []string
	// ByteInteractions counts conversations with the sentinel.
	ByteInteractions int
}

// NewProgress returns the chapter 1 starting state.
func NewProgress() Progress {
	return Progress{Chapter: 1}
}

// HasClue reports whether a clue was collected.
func (p *Progress) HasClue(clue string) bool {
	for _, c := range p.Clues {
		if c == clue {
			return true
		}
	}
	return false
}

// SolvedCount returns the number of completed chapters.
func (p *Progress) SolvedCount() int {
	n := 0
	for _, s := range p.Solved {
		if s {
			n++
		}
	}
	return n
}

// Complete reports whether every trial is solved.
func (p *Progress) Complete() bool {
	return p.SolvedCount() == ChapterCount
}

// Store persists save slots. Implementations must tolerate loading a slot
// that was never saved.
type Store interface {
	Save(ctx context.Context, slot string, p Progress) error
	Load(ctx context.Context, slot string) (Progress, bool, error)
	Delete(ctx context.Context, slot string) error
}
