package animation

import (
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// GroupKey derives the manager key for an ordered target group. Order is
// significant: the same lights in a different order animate differently.
func GroupKey(targets []string) string {
	return strings.Join(targets, ",")
}

// Manager owns the live animation controllers, keyed by target group.
// It guarantees at most one controller per group key. The mutex guards the
// map only; tick execution never runs under it.
type Manager struct {
	factory func(key string) *Controller
	logger  hclog.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewManager creates a Manager that builds controllers with factory.
// The factory receives the group key, letting callers bind per-group sinks.
func NewManager(factory func(key string) *Controller, logger hclog.Logger) *Manager {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Manager{
		factory:     factory,
		logger:      logger.Named("animation-manager"),
		controllers: make(map[string]*Controller),
	}
}

// GetOrCreate returns the controller for the given group key, constructing
// one if none exists yet. The returned controller may be running or idle.
func (m *Manager) GetOrCreate(key string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if controller, ok := m.controllers[key]; ok {
		return controller
	}

	controller := m.factory(key)
	m.controllers[key] = controller
	m.logger.Debug("created controller", "group", key)
	return controller
}

// Get returns the controller for the given group key, if any.
func (m *Manager) Get(key string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	controller, ok := m.controllers[key]
	return controller, ok
}

// IsAnimating reports whether the group's controller is running.
func (m *Manager) IsAnimating(key string) bool {
	controller, ok := m.Get(key)
	return ok && controller.Running()
}

// Stop stops the controller for the given group key and removes it.
// Safe to call for unknown keys.
func (m *Manager) Stop(key string) {
	m.mu.Lock()
	controller, ok := m.controllers[key]
	delete(m.controllers, key)
	m.mu.Unlock()

	if ok {
		controller.Stop()
	}
}

// AnyRunning reports whether any managed controller is currently running.
func (m *Manager) AnyRunning() bool {
	m.mu.Lock()
	controllers := make([]*Controller, 0, len(m.controllers))
	for _, controller := range m.controllers {
		controllers = append(controllers, controller)
	}
	m.mu.Unlock()

	for _, controller := range controllers {
		if controller.Running() {
			return true
		}
	}
	return false
}

// StopAll stops every managed controller. Safe to call when none are
// running; used at process teardown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	controllers := make([]*Controller, 0, len(m.controllers))
	for _, controller := range m.controllers {
		controllers = append(controllers, controller)
	}
	m.controllers = make(map[string]*Controller)
	m.mu.Unlock()

	for _, controller := range controllers {
		controller.Stop()
	}
}
