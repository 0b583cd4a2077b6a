package providers

import (
	"fmt"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

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

// Framework returns one provider per service key, in boot order.
func Framework(loggers ldlog.Loggers, cfg *ConfigServiceProvider, tpl *ViewServiceProvider) []container.ServiceProvider {
	if cfg == nil {
		cfg = &ConfigServiceProvider{}
	}
	if tpl == nil {
		tpl = &ViewServiceProvider{}
	}
	cfg.Loggers = loggers
	tpl.Loggers = loggers
	return []container.ServiceProvider{
		cfg,
		&ValidationServiceProvider{},
		&EventServiceProvider{},
		tpl,
		&TranslationServiceProvider{Loggers: loggers},
		&MinifyServiceProvider{Loggers: loggers},
		&PluginServiceProvider{},
		&RoutingServiceProvider{},
		&ResponseServiceProvider{},
	}
}

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider builds the option store: defaults, then JAXON_*
// environment variables (unless SkipEnv), then each of Files in order. The
// well-known options are validated last; a bad value fails the "config" key.
//
// Bound abstracts:
//   - "config" → *config.Store
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
	Files    []string
	SkipEnv  bool
	Loggers  ldlog.Loggers
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	app.Singleton(container.KeyConfig, func(_ *container.Container) (any, error) {
		store := config.NewStore()
		if err := store.SetOptions(config.Defaults(), ""); err != nil {
			return nil, err
		}
		if !p.SkipEnv {
			config.LoadEnv(store, p.Loggers, p.EnvFiles...)
		}
		for _, f := range p.Files {
			if err := config.LoadFile(store, f, ""); err != nil {
				return nil, err
			}
		}
		if _, err := config.Typed(store); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		return store, nil
	})
	return nil
}

// options returns the typed view of the resolved option store.
func options(c *container.Container) (config.Options, error) {
	store, err := container.Resolve[*config.Store](c, container.KeyConfig)
	if err != nil {
		return config.Options{}, err
	}
	return config.Typed(store)
}

// ── ValidationServiceProvider ─────────────────────────────────────────────────

// Bound abstracts:
//   - "validator" → *validation.Validator
type ValidationServiceProvider struct{ container.BaseProvider }

func (p *ValidationServiceProvider) Register(app *container.Container) error {
	app.Singleton(container.KeyValidator, func(_ *container.Container) (any, error) {
		return validation.New(), nil
	})
	return nil
}

// ── EventServiceProvider ──────────────────────────────────────────────────────

// Bound abstracts:
//   - "event-dispatcher" → *events.Dispatcher
type EventServiceProvider struct{ container.BaseProvider }

func (p *EventServiceProvider) Register(app *container.Container) error {
	app.Singleton(container.KeyEventDispatcher, func(_ *container.Container) (any, error) {
		return events.NewDispatcher(), nil
	})
	return nil
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider registers the template engine.
//
// Bound abstracts:
//   - "template" → *view.Engine
//
// Configuration keys read from "config":
//   - template.cache_dir
type ViewServiceProvider struct {
	container.BaseProvider
	Dir     string // default namespace directory, none when empty
	Ext     string // file extension, default: ".tpl"
	Loggers ldlog.Loggers
}

func (p *ViewServiceProvider) Register(app *container.Container) error {
	ext := p.Ext
	if ext == "" {
		ext = ".tpl"
	}
	app.Singleton(container.KeyTemplate, func(c *container.Container) (any, error) {
		opts, err := options(c)
		if err != nil {
			return nil, err
		}
		engine := view.NewEngine(p.Loggers)
		if p.Dir != "" {
			engine.AddNamespace("", p.Dir, ext)
		}
		if opts.Template.CacheDir != "" {
			engine.SetCacheDir(opts.Template.CacheDir)
		}
		return engine, nil
	})
	return nil
}

// ── TranslationServiceProvider ────────────────────────────────────────────────

// Bound abstracts:
//   - "translator" → *translation.Translator
//
// Configuration keys read from "config":
//   - core.language
//   - translation.dir
type TranslationServiceProvider struct {
	container.BaseProvider
	Loggers ldlog.Loggers
}

func (p *TranslationServiceProvider) Register(app *container.Container) error {
	app.Singleton(container.KeyTranslator, func(c *container.Container) (any, error) {
		opts, err := options(c)
		if err != nil {
			return nil, err
		}
		tr, err := translation.New(p.Loggers)
		if err != nil {
			return nil, err
		}
		if opts.Core.Language != "" {
			tr.SetLocale(opts.Core.Language)
		}
		if dir := opts.Translation.Dir; dir != "" {
			if err := tr.LoadDir(dir); err != nil {
				return nil, err
			}
		}
		return tr, nil
	})
	return nil
}

// ── MinifyServiceProvider ─────────────────────────────────────────────────────

// Bound abstracts:
//   - "minifier" → *minify.Minifier
//
// Configuration keys read from "config":
//   - js.app.minify
type MinifyServiceProvider struct {
	container.BaseProvider
	Loggers ldlog.Loggers
}

func (p *MinifyServiceProvider) Register(app *container.Container) error {
	app.Singleton(container.KeyMinifier, func(c *container.Container) (any, error) {
		opts, err := options(c)
		if err != nil {
			return nil, err
		}
		mf := minify.New(p.Loggers)
		mf.SetEnabled(opts.JS.Minify)
		return mf, nil
	})
	return nil
}

// ── PluginServiceProvider ─────────────────────────────────────────────────────

// Bound abstracts:
//   - "plugin-manager" → *plugin.Manager
type PluginServiceProvider struct{ container.BaseProvider }

func (p *PluginServiceProvider) Register(app *container.Container) error {
	app.Singleton(container.KeyPluginManager, func(c *container.Container) (any, error) {
		v, err := container.Resolve[*validation.Validator](c, container.KeyValidator)
		if err != nil {
			return nil, err
		}
		tr, err := container.Resolve[*translation.Translator](c, container.KeyTranslator)
		if err != nil {
			return nil, err
		}
		return plugin.NewManager(v, tr), nil
	})
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the request manager.
//
// Bound abstracts:
//   - "request-manager" → *routing.Router
//
// Configuration keys read from "config":
//   - core.request.uri
type RoutingServiceProvider struct{ container.BaseProvider }

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	app.Singleton(container.KeyRequestManager, func(c *container.Container) (any, error) {
		opts, err := options(c)
		if err != nil {
			return nil, err
		}
		return routing.New(opts.Core.RequestURI), nil
	})
	return nil
}

// ── ResponseServiceProvider ───────────────────────────────────────────────────

// Bound abstracts:
//   - "response-manager" → *gohttp.ResponseManager
//
// Configuration keys read from "config":
//   - core.encoding
type ResponseServiceProvider struct{ container.BaseProvider }

func (p *ResponseServiceProvider) Register(app *container.Container) error {
	app.Singleton(container.KeyResponseManager, func(c *container.Container) (any, error) {
		opts, err := options(c)
		if err != nil {
			return nil, err
		}
		return gohttp.NewResponseManager(opts.Core.Encoding), nil
	})
	return nil
}
