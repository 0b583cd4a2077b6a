// Package container provides an IoC (Inversion of Control) container and a
// Service Provider system.
//
// # Overview
//
// The container builds and caches the framework services by key. Factories
// return (instance, error); a failed construction is reported as a
// *ResolutionError and remembered for that key until Retry is called.
// Because Go has no runtime constructor reflection, auto-wiring is replaced by
// explicit factory functions.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot(), then resolve every key in AllKeys order
//  4. Use the services
//
// # Bindings
//
//	// Transient, new instance every Make()
//	c.Bind("Foo", func(c *container.Container) (any, error) { return &Foo{}, nil })
//
//	// Singleton, created once and reused
//	c.Singleton("template", func(c *container.Container) (any, error) {
//	    store, err := container.Resolve[*config.Store](c, container.KeyConfig)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return newEngine(store), nil
//	})
//
//	// Pre-built value
//	c.Instance("config", store)
//
//	// Alias
//	c.Alias("template", "view")
//
// # Resolving
//
//	raw, err := c.Make("template")
//	engine, err := container.Resolve[*view.Engine](c, "template")
//
// # Failures
//
//	_, err := c.Make("translator")      // *ResolutionError, errors.Is(err, ErrResolution)
//	_, err = c.Make("translator")       // same error, factory not re-run
//	tr, err := c.Retry("translator")    // clears the failure and tries again
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    app.Singleton("mailer", func(c *container.Container) (any, error) {
//	        return mail.New(), nil
//	    })
//	    return nil
//	}
//
//	registry := container.NewProviderRegistry(c)
//	if err := registry.Register(&AppServiceProvider{}); err != nil { ... }
//	if err := registry.Boot(); err != nil { ... }
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool   { return true }
//	func (p *HeavyProvider) Provides() []string { return []string{"heavy"} }
//	func (p *HeavyProvider) Register(app *container.Container) error {
//	    app.Singleton("heavy", func(c *container.Container) (any, error) {
//	        return heavySetup() // only called on first app.Make("heavy")
//	    })
//	    return nil
//	}
package container
