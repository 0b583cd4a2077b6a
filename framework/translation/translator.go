// Package translation looks up translated strings by key and language.
//
// A missing key is never an error: Trans returns the key itself so that
// rendering can carry on with an untranslated label.
package translation

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"golang.org/x/text/language"

	"github.com/km-arc/go-jaxon/framework/config"
)

// DefaultLocale is used until SetLocale is called.
const DefaultLocale = "en"

//go:embed lang/*.yaml
var builtin embed.FS

// Translator holds one catalog per language.
type Translator struct {
	mu       sync.RWMutex
	locale   string
	catalogs map[string]map[string]string
	loggers  ldlog.Loggers
}

// New creates a Translator preloaded with the built-in catalogs.
func New(loggers ldlog.Loggers) (*Translator, error) {
	t := &Translator{
		locale:   DefaultLocale,
		catalogs: make(map[string]map[string]string),
		loggers:  loggers,
	}
	entries, err := builtin.ReadDir("lang")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		data, err := builtin.ReadFile("lang/" + entry.Name())
		if err != nil {
			return nil, err
		}
		if err := t.load(data, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))); err != nil {
			return nil, fmt.Errorf("translation: built-in %s: %w", entry.Name(), err)
		}
	}
	return t, nil
}

// SetLocale changes the language used when Trans gets an empty language.
func (t *Translator) SetLocale(lang string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locale = normalize(lang)
}

// Locale returns the default language.
func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

// ── Catalogs ─────────────────────────────────────────────────────────────────

// AddTranslations merges entries into the catalog for lang.
func (t *Translator) AddTranslations(lang string, entries map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	lang = normalize(lang)
	cat, ok := t.catalogs[lang]
	if !ok {
		cat = make(map[string]string, len(entries))
		t.catalogs[lang] = cat
	}
	for k, v := range entries {
		cat[k] = v
	}
}

// LoadFile merges a YAML catalog into lang. Nested keys are joined with ".".
func (t *Translator) LoadFile(path, lang string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := t.load(data, lang); err != nil {
		return fmt.Errorf("translation: %s: %w", path, err)
	}
	return nil
}

// LoadDir loads every <lang>.yaml file found in dir.
func (t *Translator) LoadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		lang := strings.TrimSuffix(filepath.Base(path), ".yaml")
		if err := t.LoadFile(path, lang); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) load(data []byte, lang string) error {
	tree, err := config.ParseYAML(data)
	if err != nil {
		return err
	}
	flat := config.NewStore()
	if err := flat.SetOptions(tree, ""); err != nil {
		return err
	}
	entries := make(map[string]string, flat.Len())
	for _, key := range flat.GetOptionNames("") {
		entries[key] = flat.String(key, "")
	}
	t.AddTranslations(lang, entries)
	return nil
}

// ── Lookup ───────────────────────────────────────────────────────────────────

// Trans returns the translation of key in lang (the default language when lang
// is empty) with :name placeholders replaced. Lookup tries the exact language
// tag, then its base language. An unknown key is returned unchanged.
//
//	t.Trans("errors.functions.invalid", map[string]any{"name": "1bad"}, "fr")
func (t *Translator) Trans(key string, placeholders map[string]any, lang string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if lang == "" {
		lang = t.locale
	}
	text, ok := t.lookup(key, lang)
	if !ok {
		if t.loggers.IsDebugEnabled() {
			t.loggers.Debugf("Missing translation %q for %q%s", key, lang, t.suggest(key, lang))
		}
		return key
	}
	return substitute(text, placeholders)
}

// Has reports whether key has a translation in lang.
func (t *Translator) Has(key, lang string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.lookup(key, lang)
	return ok
}

func (t *Translator) lookup(key, lang string) (string, bool) {
	for _, candidate := range candidates(lang) {
		if text, ok := t.catalogs[candidate][key]; ok {
			return text, true
		}
	}
	return "", false
}

// suggest names the closest key of the catalog, for debug logs only.
func (t *Translator) suggest(key, lang string) string {
	best, bestDist := "", -1
	for _, candidate := range candidates(lang) {
		for k := range t.catalogs[candidate] {
			d := levenshtein.ComputeDistance(key, k)
			if bestDist < 0 || d < bestDist || (d == bestDist && k < best) {
				best, bestDist = k, d
			}
		}
	}
	if best == "" || bestDist > len(key)/2 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

func substitute(text string, placeholders map[string]any) string {
	if len(placeholders) == 0 {
		return text
	}
	names := make([]string, 0, len(placeholders))
	for name := range placeholders {
		names = append(names, name)
	}
	// Longer names first, so :username is not eaten by :user.
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, ":"+name, fmt.Sprint(placeholders[name]))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// normalize returns the canonical form of a language tag, or the lower-cased
// input when it does not parse.
func normalize(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	return tag.String()
}

func candidates(lang string) []string {
	exact := normalize(lang)
	tag, err := language.Parse(lang)
	if err != nil {
		return []string{exact}
	}
	base, _ := tag.Base()
	if b := base.String(); b != exact {
		return []string{exact, b}
	}
	return []string{exact}
}
