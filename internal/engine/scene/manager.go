package scene

import (
	"context"
	"log"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// Manager holds the scene registry and exactly one current scene. All
// input, update and resize traffic forwards to whichever scene is current.
type Manager struct {
	scenes  map[string]Scene
	current Scene
	logger  *log.Logger

	width, height int
}

// NewManager builds an empty registry.
func NewManager(logger *log.Logger) *Manager {
	return &Manager{scenes: make(map[string]Scene), logger: logger}
}

// Register adds a scene under its own name. Re-registering replaces.
func (m *Manager) Register(s Scene) {
	m.scenes[s.Name()] = s
}

// Current returns the active scene, or nil before the first transition.
func (m *Manager) Current() Scene {
	return m.current
}

// TransitionTo exits the current scene, swaps, and enters the named one.
func (m *Manager) TransitionTo(ctx context.Context, name string) error {
	next, ok := m.scenes[name]
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeSceneUnknown,
			"no scene registered under name",
			map[string]string{"Scene": name})
	}
	if m.current != nil {
		m.current.Exit()
	}
	if m.logger != nil {
		m.logger.Printf("scene transition to %s", name)
	}
	m.current = next
	next.Enter(ctx)
	if m.width > 0 && m.height > 0 {
		next.Resize(m.width, m.height)
	}
	return nil
}

// Update forwards a frame tick to the current scene.
func (m *Manager) Update() {
	if m.current != nil {
		m.current.Update()
	}
}

// HandleInput forwards an event. A scene with nothing active reports the
// event unhandled.
func (m *Manager) HandleInput(ctx context.Context, ev Event) bool {
	if m.current == nil {
		return false
	}
	return m.current.HandleInput(ctx, ev)
}

// Resize records the viewport and forwards it to the current scene.
func (m *Manager) Resize(width, height int) {
	m.width, m.height = width, height
	if m.current != nil {
		m.current.Resize(width, height)
	}
}
