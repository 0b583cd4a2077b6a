package view

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// ── Errors ───────────────────────────────────────────────────────────────────

var (
	ErrTemplateNotFound = errors.New("view: template not found")
	ErrRender           = errors.New("view: render failed")
	ErrMissingVar       = errors.New("missing template variable")
)

// NotFoundError reports an unknown template name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string        { return fmt.Sprintf("view: template %q not found", e.Name) }
func (e *NotFoundError) Is(target error) bool { return target == ErrTemplateNotFound }

// RenderError reports a failed render. Var is set when a placeholder had no
// value.
type RenderError struct {
	Name string
	Var  string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Var != "" {
		return fmt.Sprintf("view: render %q: %v %q", e.Name, e.Err, e.Var)
	}
	return fmt.Sprintf("view: render %q: %v", e.Name, e.Err)
}
func (e *RenderError) Unwrap() error        { return e.Err }
func (e *RenderError) Is(target error) bool { return target == ErrRender }

// ── Engine ───────────────────────────────────────────────────────────────────

// NamespaceSeparator splits "namespace::path" template names.
const NamespaceSeparator = "::"

// placeholder matches {{name}} with optional inner spaces.
var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

type namespace struct {
	dir string
	ext string
}

// Engine renders named templates, binding {{name}} placeholders strictly:
// every placeholder must have a value.
//
// Templates come from in-memory sources (Register) or from namespace
// directories (AddNamespace). Compiled templates are kept in memory and, when
// a cache dir is set, on disk.
type Engine struct {
	mu         sync.Mutex
	namespaces map[string]namespace
	sources    map[string]string
	compiled   map[string]*compiled

	cacheDir     string
	cacheChecked bool

	loggers ldlog.Loggers
}

// NewEngine creates an Engine with no namespaces.
func NewEngine(loggers ldlog.Loggers) *Engine {
	return &Engine{
		namespaces: make(map[string]namespace),
		sources:    make(map[string]string),
		compiled:   make(map[string]*compiled),
		loggers:    loggers,
	}
}

// AddNamespace maps ns to a template directory. Templates in the default
// namespace are registered with ns "".
//
//	engine.AddNamespace("jaxon", "./templates", ".tpl")
//	engine.Render("jaxon::plugins/dialog", vars) // ./templates/plugins/dialog.tpl
func (e *Engine) AddNamespace(ns, dir, ext string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.namespaces[ns] = namespace{dir: dir, ext: ext}
}

// Register adds an in-memory template. It takes precedence over files.
func (e *Engine) Register(name, source string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources[name] = source
	delete(e.compiled, name)
}

// SetCacheDir records the compile cache directory. Nothing is touched on disk
// here; a directory that cannot be written fails the next Render.
func (e *Engine) SetCacheDir(dir string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cacheDir = dir
	e.cacheChecked = false
}

// CacheDir returns the configured compile cache directory.
func (e *Engine) CacheDir() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cacheDir
}

// Render resolves name and substitutes vars into it.
func (e *Engine) Render(name string, vars map[string]any) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cacheDir != "" && !e.cacheChecked {
		if err := checkCacheDir(e.cacheDir); err != nil {
			return "", &RenderError{Name: name, Err: err}
		}
		e.cacheChecked = true
	}

	tpl, err := e.load(name)
	if err != nil {
		return "", err
	}
	return tpl.execute(vars)
}

// load returns the compiled template for name (must hold mu).
func (e *Engine) load(name string) (*compiled, error) {
	if src, ok := e.sources[name]; ok {
		if tpl, ok := e.compiled[name]; ok {
			return tpl, nil
		}
		tpl := compile(name, src, 0)
		e.compiled[name] = tpl
		return tpl, nil
	}

	path, err := e.path(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, &NotFoundError{Name: name}
	}
	mtime := info.ModTime().UnixNano()

	if tpl, ok := e.compiled[name]; ok && tpl.ModTime == mtime {
		return tpl, nil
	}
	if e.cacheDir != "" {
		if tpl, ok := readCache(e.cacheDir, name, mtime); ok {
			e.compiled[name] = tpl
			return tpl, nil
		}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &RenderError{Name: name, Err: err}
	}
	tpl := compile(name, string(src), mtime)
	if e.cacheDir != "" {
		if err := writeCache(e.cacheDir, tpl); err != nil {
			return nil, &RenderError{Name: name, Err: err}
		}
		e.loggers.Debugf("Cached template %q in %s", name, e.cacheDir)
	}
	e.compiled[name] = tpl
	return tpl, nil
}

// path maps a template name to a file inside its namespace directory.
func (e *Engine) path(name string) (string, error) {
	ns, rel := "", name
	if i := strings.Index(name, NamespaceSeparator); i >= 0 {
		ns, rel = name[:i], name[i+len(NamespaceSeparator):]
	}
	space, ok := e.namespaces[ns]
	if !ok || rel == "" {
		return "", &NotFoundError{Name: name}
	}
	path, err := securejoin.SecureJoin(space.dir, rel+space.ext)
	if err != nil {
		return "", &NotFoundError{Name: name}
	}
	return path, nil
}

// ── Compiled templates ───────────────────────────────────────────────────────

type part struct {
	Text string `json:"t,omitempty"`
	Var  string `json:"v,omitempty"`
}

type compiled struct {
	Name    string `json:"name"`
	ModTime int64  `json:"mtime"`
	Parts   []part `json:"parts"`
}

func compile(name, src string, mtime int64) *compiled {
	tpl := &compiled{Name: name, ModTime: mtime}
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(src, -1) {
		if m[0] > last {
			tpl.Parts = append(tpl.Parts, part{Text: src[last:m[0]]})
		}
		tpl.Parts = append(tpl.Parts, part{Var: src[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(src) {
		tpl.Parts = append(tpl.Parts, part{Text: src[last:]})
	}
	return tpl
}

func (t *compiled) execute(vars map[string]any) (string, error) {
	var b strings.Builder
	for _, p := range t.Parts {
		if p.Var == "" {
			b.WriteString(p.Text)
			continue
		}
		v, ok := vars[p.Var]
		if !ok {
			return "", &RenderError{Name: t.Name, Var: p.Var, Err: ErrMissingVar}
		}
		fmt.Fprint(&b, v)
	}
	return b.String(), nil
}
