package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jaxon/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalls int
	bootCalled    bool
}

func (p *eagerProvider) Register(app *container.Container) error {
	p.registerCalls++
	app.Singleton("eager-svc", func(c *container.Container) (any, error) { return "eager", nil })
	return nil
}

func (p *eagerProvider) Boot(_ *container.Container) error {
	p.bootCalled = true
	return nil
}

// deferredProvider is lazy: only registered when "deferred-svc" is first resolved.
type deferredProvider struct {
	container.BaseProvider
	registerCalled bool
}

func (p *deferredProvider) Register(app *container.Container) error {
	p.registerCalled = true
	app.Singleton("deferred-svc", func(c *container.Container) (any, error) { return "deferred-value", nil })
	return nil
}

func (p *deferredProvider) IsDeferred() bool   { return true }
func (p *deferredProvider) Provides() []string { return []string{"deferred-svc"} }

// lyingProvider claims a key it never binds.
type lyingProvider struct{ container.BaseProvider }

func (p *lyingProvider) Register(_ *container.Container) error { return nil }
func (p *lyingProvider) IsDeferred() bool                      { return true }
func (p *lyingProvider) Provides() []string                    { return []string{"ghost"} }

type failingBootProvider struct{ container.BaseProvider }

func (p *failingBootProvider) Register(_ *container.Container) error { return nil }
func (p *failingBootProvider) Boot(_ *container.Container) error {
	return errors.New("boot refused")
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.registerCalls)
	assert.False(t, p.bootCalled, "Boot() should not run before registry.Boot()")

	require.NoError(t, reg.Boot())
	assert.True(t, p.bootCalled)
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&eagerProvider{}))
	require.NoError(t, reg.Boot())

	got, err := container.Resolve[string](c, "eager-svc")
	require.NoError(t, err)
	assert.Equal(t, "eager", got)
}

func TestRegistry_Boot_Idempotent(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	assert.False(t, reg.Booted())

	require.NoError(t, reg.Register(&eagerProvider{}))
	require.NoError(t, reg.Boot())
	require.NoError(t, reg.Boot())
	assert.True(t, reg.Booted())
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.registerCalls)
	assert.Len(t, reg.Providers(), 1)
}

func TestRegistry_BootError_Propagates(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Register(&failingBootProvider{}))

	err := reg.Boot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boot refused")
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_RegisteredOnFirstMake(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Boot())
	assert.False(t, p.registerCalled, "deferred provider Register() should wait for Make()")

	got, err := container.Resolve[string](c, "deferred-svc")
	require.NoError(t, err)
	assert.Equal(t, "deferred-value", got)
	assert.True(t, p.registerCalled)
	assert.Empty(t, reg.Providers(), "deferred providers are not listed as eager")
}

func TestRegistry_DeferredProvider_MissingBindingFails(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&lyingProvider{}))

	_, err := c.Make("ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrResolution)
}

// ── Boot after registration (late provider) ───────────────────────────────────

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Boot())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	assert.True(t, p.bootCalled)
}

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	assert.NoError(t, p.Boot(container.New()))
	assert.False(t, p.IsDeferred())
	assert.Empty(t, p.Provides())
}
