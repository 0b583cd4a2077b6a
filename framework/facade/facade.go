// Package facade exposes the framework services behind small per-concern
// interfaces. A Facade resolves each service from the container once, then
// every method forwards to it and returns its result unchanged.
package facade

import (
	"github.com/km-arc/go-jaxon/framework/config"
	"github.com/km-arc/go-jaxon/framework/container"
	"github.com/km-arc/go-jaxon/framework/events"
	gohttp "github.com/km-arc/go-jaxon/framework/http"
	"github.com/km-arc/go-jaxon/framework/minify"
	"github.com/km-arc/go-jaxon/framework/plugin"
	"github.com/km-arc/go-jaxon/framework/routing"
	"github.com/km-arc/go-jaxon/framework/translation"
	"github.com/km-arc/go-jaxon/framework/validation"
	"github.com/km-arc/go-jaxon/framework/view"
)

// ── Access interfaces ────────────────────────────────────────────────────────

// ManagerAccess exposes the request-side managers.
type ManagerAccess interface {
	PluginManager() *plugin.Manager
	RequestManager() *routing.Router
	ResponseManager() *gohttp.ResponseManager
}

// ConfigAccess reads and writes options.
type ConfigAccess interface {
	SetOption(name string, value any) error
	SetOptions(opts any, prefix string) error
	GetOption(name string) (any, bool)
	HasOption(name string) bool
	GetOptionNames(prefix string) []string
}

// TemplateAccess renders templates.
type TemplateAccess interface {
	SetCacheDir(dir string)
	Render(name string, vars map[string]any) (string, error)
}

// TranslationAccess translates strings.
type TranslationAccess interface {
	Trans(key string, placeholders map[string]any, language string) string
}

// MinifyAccess minifies scripts.
type MinifyAccess interface {
	Minify(src, dst string) bool
}

// ValidationAccess validates exported names.
type ValidationAccess interface {
	ValidateFunction(name string) bool
	ValidateEvent(name string) bool
	ValidateClass(name string) bool
	ValidateMethod(name string) bool
}

// EventAccess registers event listeners.
type EventAccess interface {
	AddEventListener(l events.Listener)
}

// ── Facade ───────────────────────────────────────────────────────────────────

// Facade implements every access interface.
type Facade struct {
	plugins    *plugin.Manager
	requests   *routing.Router
	responses  *gohttp.ResponseManager
	config     *config.Store
	template   *view.Engine
	translator *translation.Translator
	minifier   *minify.Minifier
	validator  *validation.Validator
	dispatcher *events.Dispatcher
}

var (
	_ ManagerAccess     = (*Facade)(nil)
	_ ConfigAccess      = (*Facade)(nil)
	_ TemplateAccess    = (*Facade)(nil)
	_ TranslationAccess = (*Facade)(nil)
	_ MinifyAccess      = (*Facade)(nil)
	_ ValidationAccess  = (*Facade)(nil)
	_ EventAccess       = (*Facade)(nil)
)

// New resolves every service from c. The first resolution error is returned
// as is.
func New(c *container.Container) (*Facade, error) {
	f := &Facade{}
	var err error
	if f.config, err = container.Resolve[*config.Store](c, container.KeyConfig); err != nil {
		return nil, err
	}
	if f.validator, err = container.Resolve[*validation.Validator](c, container.KeyValidator); err != nil {
		return nil, err
	}
	if f.dispatcher, err = container.Resolve[*events.Dispatcher](c, container.KeyEventDispatcher); err != nil {
		return nil, err
	}
	if f.template, err = container.Resolve[*view.Engine](c, container.KeyTemplate); err != nil {
		return nil, err
	}
	if f.translator, err = container.Resolve[*translation.Translator](c, container.KeyTranslator); err != nil {
		return nil, err
	}
	if f.minifier, err = container.Resolve[*minify.Minifier](c, container.KeyMinifier); err != nil {
		return nil, err
	}
	if f.plugins, err = container.Resolve[*plugin.Manager](c, container.KeyPluginManager); err != nil {
		return nil, err
	}
	if f.requests, err = container.Resolve[*routing.Router](c, container.KeyRequestManager); err != nil {
		return nil, err
	}
	if f.responses, err = container.Resolve[*gohttp.ResponseManager](c, container.KeyResponseManager); err != nil {
		return nil, err
	}
	return f, nil
}

// ── Managers ─────────────────────────────────────────────────────────────────

func (f *Facade) PluginManager() *plugin.Manager           { return f.plugins }
func (f *Facade) RequestManager() *routing.Router          { return f.requests }
func (f *Facade) ResponseManager() *gohttp.ResponseManager { return f.responses }

// ── Config ───────────────────────────────────────────────────────────────────

func (f *Facade) SetOption(name string, value any) error   { return f.config.SetOption(name, value) }
func (f *Facade) SetOptions(opts any, prefix string) error { return f.config.SetOptions(opts, prefix) }
func (f *Facade) GetOption(name string) (any, bool)        { return f.config.GetOption(name) }
func (f *Facade) HasOption(name string) bool               { return f.config.HasOption(name) }
func (f *Facade) GetOptionNames(prefix string) []string    { return f.config.GetOptionNames(prefix) }

// ── Templates ────────────────────────────────────────────────────────────────

func (f *Facade) SetCacheDir(dir string) { f.template.SetCacheDir(dir) }

func (f *Facade) Render(name string, vars map[string]any) (string, error) {
	return f.template.Render(name, vars)
}

// ── Translation ──────────────────────────────────────────────────────────────

func (f *Facade) Trans(key string, placeholders map[string]any, language string) string {
	return f.translator.Trans(key, placeholders, language)
}

// ── Minify ───────────────────────────────────────────────────────────────────

func (f *Facade) Minify(src, dst string) bool { return f.minifier.Minify(src, dst) }

// ── Validation ───────────────────────────────────────────────────────────────

func (f *Facade) ValidateFunction(name string) bool { return f.validator.ValidateFunction(name) }
func (f *Facade) ValidateEvent(name string) bool    { return f.validator.ValidateEvent(name) }
func (f *Facade) ValidateClass(name string) bool    { return f.validator.ValidateClass(name) }
func (f *Facade) ValidateMethod(name string) bool   { return f.validator.ValidateMethod(name) }

// ── Events ───────────────────────────────────────────────────────────────────

func (f *Facade) AddEventListener(l events.Listener) { f.dispatcher.AddListener(l) }
