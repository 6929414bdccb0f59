package scene

// EventKind discriminates input events.
type EventKind int

const (
	// EventClick is a pointer press in scene coordinates.
	EventClick EventKind = iota
	// EventKey is a named key press.
	EventKey
	// EventRune is printable character input.
	EventRune
)

// Named keys.
const (
	KeyEnter  = "enter"
	KeyEscape = "escape"
	KeyDelete = "delete"
	KeyLeft   = "left"
	KeyRight  = "right"
	KeyUp     = "up"
	KeyDown   = "down"
	KeyClear  = "clear"
	KeyHint   = "hint"
)

// Event is one player input.
type Event struct {
	Kind EventKind
	X, Y float64
	Key  string
	Rune rune
}

// Click builds a pointer event.
func Click(x, y float64) Event {
	return Event{Kind: EventClick, X: x, Y: y}
}

// Key builds a named key event.
func Key(name string) Event {
	return Event{Kind: EventKey, Key: name}
}

// Rune builds a printable input event.
func Rune(r rune) Event {
	return Event{Kind: EventRune, Rune: r}
}
