// Package plugin keeps the registry of request plugins. What a plugin does
// with a request is up to the plugin; the manager only validates, orders and
// looks them up.
package plugin

import (
	"errors"
	"net/http"
	"sync"
)

// ErrInvalidPlugin is matched by every registration failure.
var ErrInvalidPlugin = errors.New("plugin: invalid plugin")

type registrationError struct{ msg string }

func (e *registrationError) Error() string        { return e.msg }
func (e *registrationError) Is(target error) bool { return target == ErrInvalidPlugin }

// Plugin is a named request handler.
type Plugin interface {
	Name() string
	http.Handler
}

// NameChecker validates plugin names.
type NameChecker interface {
	ValidateClass(name string) bool
}

// Translator produces the user-facing registration error messages.
type Translator interface {
	Trans(key string, placeholders map[string]any, language string) string
}

// Manager holds plugins in registration order.
type Manager struct {
	mu      sync.RWMutex
	plugins []Plugin
	byName  map[string]Plugin
	names   NameChecker
	tr      Translator
}

// NewManager creates an empty Manager.
func NewManager(names NameChecker, tr Translator) *Manager {
	return &Manager{byName: make(map[string]Plugin), names: names, tr: tr}
}

// Register adds p. Its name must be a valid class name and not taken yet.
func (m *Manager) Register(p Plugin) error {
	if p == nil {
		return &registrationError{msg: "plugin: nil plugin"}
	}
	name := p.Name()
	if !m.names.ValidateClass(name) {
		return &registrationError{msg: m.tr.Trans("errors.classes.invalid", map[string]any{"name": name}, "")}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byName[name]; taken {
		return &registrationError{msg: m.tr.Trans("errors.plugins.duplicate", map[string]any{"name": name}, "")}
	}
	m.byName[name] = p
	m.plugins = append(m.plugins, p)
	return nil
}

// Plugin looks a plugin up by name.
func (m *Manager) Plugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byName[name]
	return p, ok
}

// Plugins returns the registered plugins in registration order.
func (m *Manager) Plugins() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Plugin, len(m.plugins))
	copy(out, m.plugins)
	return out
}

// Handler wraps an http.Handler as a Plugin.
func Handler(name string, h http.Handler) Plugin { return handlerPlugin{name: name, Handler: h} }

type handlerPlugin struct {
	name string
	http.Handler
}

func (p handlerPlugin) Name() string { return p.name }
