package routing

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-jaxon/framework/plugin"
)

// Router is the request manager: a chi router rooted at the request URI,
// with one sub-tree per registered plugin.
type Router struct {
	mux chi.Router
	uri string
}

// New creates a Router with sane defaults (Recoverer, RealIP). uri is the
// base path every plugin is mounted under; "" means "/".
func New(uri string) *Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	return &Router{mux: r, uri: "/" + strings.Trim(uri, "/")}
}

// URI returns the base path plugins are mounted under.
func (r *Router) URI() string { return r.uri }

// ── Plugins ──────────────────────────────────────────────────────────────────

// MountPlugins routes <uri>/<name> and everything below it to each plugin.
func (r *Router) MountPlugins(pm *plugin.Manager) {
	for _, p := range pm.Plugins() {
		r.Mount(p.Name(), p)
	}
}

// Mount routes <uri>/<name> and everything below it to h.
func (r *Router) Mount(name string, h http.Handler) {
	base := strings.TrimSuffix(r.uri, "/") + "/" + name
	r.mux.Handle(base, h)
	r.mux.Handle(base+"/*", h)
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h http.HandlerFunc)  { r.mux.Get(pattern, h) }
func (r *Router) Post(pattern string, h http.HandlerFunc) { r.mux.Post(pattern, h) }

// ── Middleware ───────────────────────────────────────────────────────────────

// Middleware adds one or more middleware to the router. chi requires these to
// be added before any route.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Params ───────────────────────────────────────────────────────────────────

// Param extracts a URL param.
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
