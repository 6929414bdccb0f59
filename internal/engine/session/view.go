package session

import (
	"strconv"
	"strings"

	"github.com/louisbranch/aikira.quest/internal/engine/scene"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// DialogueView is the line currently on screen.
type DialogueView struct {
	Speaker  string `json:"speaker"`
	Text     string `json:"text"`
	Complete bool   `json:"complete"`
}

// PuzzleView summarizes the active puzzle for a transport client.
type PuzzleView struct {
	Kind     string            `json:"kind"`
	Solved   bool              `json:"solved"`
	Attempts int               `json:"attempts"`
	Detail   map[string]string `json:"detail,omitempty"`
}

// View is a full session snapshot.
type View struct {
	SessionID string        `json:"session_id"`
	Scene     string        `json:"scene"`
	Phase     string        `json:"phase,omitempty"`
	Chapter   int           `json:"chapter"`
	Clues     []string      `json:"clues"`
	Solved    []bool        `json:"solved"`
	Dialogue  *DialogueView `json:"dialogue,omitempty"`
	Puzzle    *PuzzleView   `json:"puzzle,omitempty"`
}

// View captures the current session state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.tracker.Snapshot()
	v := View{
		SessionID: s.id,
		Chapter:   snap.Chapter,
		Clues:     snap.Clues,
		Solved:    snap.Solved[:],
	}

	current := s.manager.Current()
	if current == nil {
		return v
	}
	v.Scene = current.Name()

	switch sc := current.(type) {
	case *scene.IntroScene:
		v.Dialogue = runnerView(sc.Runner())
	case *scene.SymbolScene:
		v.Phase = sc.Phase().String()
		if p := sc.Puzzle(); p != nil {
			entered := make([]string, 0, len(p.Entered()))
			for _, k := range p.Entered() {
				entered = append(entered, string(k))
			}
			v.Puzzle = &PuzzleView{
				Kind:     "symbol",
				Solved:   p.Solved(),
				Attempts: p.Attempts(),
				Detail:   map[string]string{"entered": strings.Join(entered, ",")},
			}
		}
	case *scene.MemoryScene:
		v.Phase = sc.Phase().String()
		if p := sc.Puzzle(); p != nil {
			v.Puzzle = &PuzzleView{
				Kind:     "memory",
				Solved:   p.Solved(),
				Attempts: p.Attempts(),
				Detail: map[string]string{
					"phase":    p.Phase().String(),
					"glyphs":   strconv.Itoa(p.GlyphCount()),
					"playback": joinInts(sc.Highlights()),
					"entered":  joinInts(p.Entered()),
				},
			}
		}
	case *scene.RiddleScene:
		v.Phase = sc.Phase().String()
		if p := sc.Puzzle(); p != nil {
			r := p.Current()
			detail := map[string]string{
				"state":   p.State().String(),
				"prompt":  r.Prompt,
				"options": strings.Join(r.Options[:], "|"),
			}
			if p.HintUsed() {
				detail["hint"] = r.Hint
			}
			if p.Answered() || p.Solved() {
				detail["correct"] = strconv.FormatBool(p.Correct())
				detail["explanation"] = r.Explanation
			}
			v.Puzzle = &PuzzleView{
				Kind:     "riddle",
				Solved:   p.Solved(),
				Attempts: p.Attempts(),
				Detail:   detail,
			}
		}
	case *scene.NavScene:
		v.Phase = sc.Phase().String()
		if p := sc.Puzzle(); p != nil {
			x, y := p.PlayerCell()
			v.Puzzle = &PuzzleView{
				Kind:     "nav",
				Solved:   p.Solved(),
				Attempts: p.Attempts(),
				Detail: map[string]string{
					"player":    strconv.Itoa(x) + "," + strconv.Itoa(y),
					"collected": strconv.Itoa(p.Collected()),
					"fragments": strconv.Itoa(p.FragmentCount()),
					"exit_open": strconv.FormatBool(p.ExitActive()),
				},
			}
		}
	case *scene.CodeScene:
		v.Phase = sc.Phase().String()
		if p := sc.Puzzle(); p != nil {
			slots := p.Slots()
			masked := make([]byte, 0, len(slots))
			for _, r := range slots {
				if r == 0 {
					masked = append(masked, '_')
				} else {
					masked = append(masked, byte(r))
				}
			}
			v.Puzzle = &PuzzleView{
				Kind:     "code",
				Solved:   p.Solved(),
				Attempts: p.Attempts(),
				Detail: map[string]string{
					"phase":  p.Phase().String(),
					"slots":  string(masked),
					"active": strconv.Itoa(p.Active()),
					"glow":   strconv.FormatFloat(sc.CursorGlow(), 'f', 2, 64),
					"locked": strconv.FormatBool(p.Locked()),
				},
			}
		}
	}

	if v.Dialogue == nil {
		if runner, ok := currentRunner(current); ok {
			v.Dialogue = runnerView(runner)
		}
	}
	return v
}

// runnerHolder is implemented by scenes whose conversation should surface in
// the view.
type runnerHolder interface{ Runner() *scene.Runner }

func currentRunner(s scene.Scene) (*scene.Runner, bool) {
	if h, ok := s.(runnerHolder); ok {
		return h.Runner(), true
	}
	return nil, false
}

func runnerView(r *scene.Runner) *DialogueView {
	if r == nil || !r.Active() {
		return nil
	}
	speaker, text, complete := r.Current()
	return &DialogueView{Speaker: speaker, Text: text, Complete: complete}
}

// joinInts renders an int sequence as comma-separated text for view details.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// chapterNumber parses "chapterN" registry names.
func chapterNumber(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "chapter")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lockedErr(chapter int) error {
	return apperrors.WithMetadata(
		apperrors.CodeChapterLocked,
		"chapter is not unlocked yet",
		map[string]string{"Chapter": strconv.Itoa(chapter)},
	)
}
