package app

import (
	"io"
	"net/http"
	"sync"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/km-arc/go-jaxon/framework/config"
	"github.com/km-arc/go-jaxon/framework/container"
	"github.com/km-arc/go-jaxon/framework/facade"
	"github.com/km-arc/go-jaxon/framework/plugin"
	"github.com/km-arc/go-jaxon/framework/providers"
	"github.com/km-arc/go-jaxon/framework/routing"
)

// Application is the top-level service container. It embeds the IoC
// Container and ProviderRegistry so callers can Bind, Singleton and
// Register directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
	Loggers   ldlog.Loggers

	mu     sync.Mutex // guards config reloads
	booted bool
	facade *facade.Facade
}

type settings struct {
	loggers  ldlog.Loggers
	config   providers.ConfigServiceProvider
	template providers.ViewServiceProvider
}

// Option customises New.
type Option func(*settings)

// WithLoggers sets the loggers shared by every service.
func WithLoggers(l ldlog.Loggers) Option { return func(s *settings) { s.loggers = l } }

// WithEnvFiles loads the given dotenv files before reading JAXON_* variables.
func WithEnvFiles(files ...string) Option {
	return func(s *settings) { s.config.EnvFiles = append(s.config.EnvFiles, files...) }
}

// WithoutEnv skips the environment entirely.
func WithoutEnv() Option { return func(s *settings) { s.config.SkipEnv = true } }

// WithConfigFile merges a YAML, JSON or TOML file into the options.
func WithConfigFile(path string) Option {
	return func(s *settings) { s.config.Files = append(s.config.Files, path) }
}

// WithTemplates sets the default template namespace directory.
func WithTemplates(dir, ext string) Option {
	return func(s *settings) { s.template.Dir, s.template.Ext = dir, ext }
}

// New creates the application and registers the framework providers.
// Services are not built until Boot or first use.
func New(opts ...Option) *Application {
	s := &settings{loggers: ldlog.NewDefaultLoggers()}
	for _, opt := range opts {
		opt(s)
	}

	c := container.New()
	a := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		Loggers:   s.loggers,
	}
	c.AfterResolving(func(abstract string, _ any) {
		a.Loggers.Debugf("Resolved [%s] in container %s", abstract, c.ID())
	})

	for _, p := range providers.Framework(s.loggers, &s.config, &s.template) {
		// framework providers never fail to register
		_ = a.Providers.Register(p)
	}
	return a
}

var (
	instanceOnce sync.Once
	instance     *Application
)

// Instance returns the process-wide application, created on first call with
// default settings. Later calls return the same value.
func Instance() *Application {
	instanceOnce.Do(func() { instance = New() })
	return instance
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs every provider's Boot phase, then builds each framework service
// in dependency order. The first failure is returned. Boot is idempotent
// once it has succeeded.
func (a *Application) Boot() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.booted {
		return nil
	}
	if err := a.Providers.Boot(); err != nil {
		return err
	}
	for _, key := range container.AllKeys() {
		if _, err := a.Make(key); err != nil {
			return err
		}
	}
	f, err := facade.New(a.Container)
	if err != nil {
		return err
	}
	a.facade = f
	a.booted = true
	a.Loggers.Infof("Application booted (container %s)", a.ID())
	return nil
}

// Booted reports whether Boot has completed.
func (a *Application) Booted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.booted
}

// Facade returns the accessor over every framework service, booting the
// application first when needed.
func (a *Application) Facade() (*facade.Facade, error) {
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a.facade, nil
}

// Config resolves the option store.
func (a *Application) Config() (*config.Store, error) {
	return container.Resolve[*config.Store](a.Container, container.KeyConfig)
}

// LoadConfigFile merges a YAML, JSON or TOML file into the options under
// prefix.
func (a *Application) LoadConfigFile(path, prefix string) error {
	store, err := a.Config()
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return config.LoadFile(store, path, prefix)
}

// GetOption reads an option while holding the lock used by config reloads.
func (a *Application) GetOption(name string) (any, bool) {
	store, err := a.Config()
	if err != nil {
		return nil, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return store.GetOption(name)
}

// WatchConfig reloads path into the options whenever it changes on disk.
// Reloads only merge: removed keys keep their last value, and services that
// were already built keep the options they were constructed with. Close the
// returned value to stop watching.
func (a *Application) WatchConfig(path, prefix string) (io.Closer, error) {
	store, err := a.Config()
	if err != nil {
		return nil, err
	}
	return config.Watch(path, store, prefix, &a.mu, a.Loggers, config.DefaultWatchDebounce)
}

// Handler mounts every registered plugin under the request URI and returns
// the resulting router.
func (a *Application) Handler() (http.Handler, error) {
	f, err := a.Facade()
	if err != nil {
		return nil, err
	}
	r := f.RequestManager()
	r.MountPlugins(f.PluginManager())
	return r, nil
}

// RegisterPlugin validates and adds a plugin to the plugin manager.
func (a *Application) RegisterPlugin(p plugin.Plugin) error {
	pm, err := container.Resolve[*plugin.Manager](a.Container, container.KeyPluginManager)
	if err != nil {
		return err
	}
	return pm.Register(p)
}

// Router resolves the request manager.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, container.KeyRequestManager)
}
