package config

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/km-arc/go-jaxon/framework/validation"
)

// Well-known option names.
const (
	OptLanguage       = "core.language"
	OptEncoding       = "core.encoding"
	OptFunctionPrefix = "core.prefix.function"
	OptClassPrefix    = "core.prefix.class"
	OptRequestURI     = "core.request.uri"
	OptCacheDir       = "template.cache_dir"
	OptTranslationDir = "translation.dir"
	OptMinify         = "js.app.minify"
)

// EnvPrefix marks environment variables that LoadEnv copies into a Store.
const EnvPrefix = "JAXON_"

// Options is the typed view of the well-known options. Anything else found in
// the Store lands in Extra.
type Options struct {
	Core        CoreOptions
	Template    TemplateOptions
	Translation TranslationOptions
	JS          JSOptions
	Extra       map[string]any
}

type CoreOptions struct {
	Language       string `validate:"omitempty,bcp47_language_tag"`
	Encoding       string `validate:"required"`
	FunctionPrefix string `validate:"omitempty,function_name"`
	ClassPrefix    string `validate:"omitempty,class_name"`
	RequestURI     string `validate:"omitempty,uri"`
}

type TemplateOptions struct {
	CacheDir string
}

type TranslationOptions struct {
	Dir string
}

type JSOptions struct {
	Minify bool
}

// Defaults returns the options a fresh application starts with.
func Defaults() Tree {
	return Tree{
		{Key: OptLanguage, Value: "en"},
		{Key: OptEncoding, Value: "UTF-8"},
		{Key: OptFunctionPrefix, Value: "jaxon_"},
		{Key: OptClassPrefix, Value: "Jaxon"},
		{Key: OptMinify, Value: true},
	}
}

// LoadEnv reads .env files (if present) and copies every JAXON_* variable into s.
// The prefix is dropped, the rest lower-cased, "_" becomes "." and "__" a
// literal underscore: JAXON_TEMPLATE_CACHE__DIR → template.cache_dir.
// Variables that do not map to a valid option name are logged and skipped.
func LoadEnv(s *Store, loggers ldlog.Loggers, envFiles ...string) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Non-fatal: .env may not exist in production
		_ = godotenv.Load(f)
	}

	env := os.Environ()
	sort.Strings(env)
	for _, kv := range env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if err := s.SetOption(envName(key), value); err != nil {
			loggers.Warnf("Ignoring environment variable %s: %v", key, err)
		}
	}
}

func envName(key string) string {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	name = strings.ReplaceAll(name, "__", "\x00")
	name = strings.ReplaceAll(name, "_", ".")
	return strings.ReplaceAll(name, "\x00", "_")
}

// Typed builds and validates the typed view of s.
func Typed(s *Store) (Options, error) {
	opts := Options{
		Core: CoreOptions{
			Language:       s.String(OptLanguage, ""),
			Encoding:       s.String(OptEncoding, "UTF-8"),
			FunctionPrefix: s.String(OptFunctionPrefix, ""),
			ClassPrefix:    s.String(OptClassPrefix, ""),
			RequestURI:     s.String(OptRequestURI, ""),
		},
		Template:    TemplateOptions{CacheDir: s.String(OptCacheDir, "")},
		Translation: TranslationOptions{Dir: s.String(OptTranslationDir, "")},
		JS:          JSOptions{Minify: boolOption(s, OptMinify)},
		Extra:       make(map[string]any),
	}

	known := map[string]bool{
		OptLanguage: true, OptEncoding: true, OptFunctionPrefix: true, OptClassPrefix: true,
		OptRequestURI: true, OptCacheDir: true, OptTranslationDir: true, OptMinify: true,
	}
	for _, name := range s.GetOptionNames("") {
		if !known[name] {
			opts.Extra[name], _ = s.GetOption(name)
		}
	}

	v := validator.New()
	validation.RegisterTags(v)
	if err := v.Struct(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func boolOption(s *Store, name string) bool {
	v, ok := s.GetOption(name)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	}
	return false
}
