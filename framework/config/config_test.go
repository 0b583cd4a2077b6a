package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jaxon/framework/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ── Readers ──────────────────────────────────────────────────────────────────

func TestLoadFile_YAMLKeepsDocumentOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jaxon.yaml", `
core:
  request:
    uri: /ajax
  language: fr
js:
  app:
    minify: false
    dirs: [a, b]
`)
	s := config.NewStore()
	require.NoError(t, config.LoadFile(s, path, ""))

	assert.Equal(t, []string{"core.request.uri", "core.language", "js.app.minify", "js.app.dirs"}, s.GetOptionNames(""))
	v, _ := s.GetOption("js.app.minify")
	assert.Equal(t, false, v)
	v, _ = s.GetOption("js.app.dirs")
	assert.Equal(t, []any{"a", "b"}, v)
}

func TestLoadFile_JSONWithPrefix(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.json", `{"uri": "/x", "mode": "sync"}`)
	s := config.NewStore()
	require.NoError(t, config.LoadFile(s, path, "core.request"))

	assert.Equal(t, []string{"core.request.uri", "core.request.mode"}, s.GetOptionNames(""))
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jaxon.toml", `
[core]
language = "de"

[core.request]
uri = "/toml"

[template]
cache_dir = "/tmp/cache"
`)
	s := config.NewStore()
	require.NoError(t, config.LoadFile(s, path, ""))

	assert.Equal(t, []string{"core.language", "core.request.uri", "template.cache_dir"}, s.GetOptionNames(""))
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = config.ReadFile(writeFile(t, dir, "x.ini", "a=1"))
	assert.Error(t, err)

	_, err = config.ReadFile(writeFile(t, dir, "list.yaml", "- a\n- b\n"))
	assert.Error(t, err)
}

func TestParseYAML_Empty(t *testing.T) {
	tree, err := config.ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, tree)
}

// ── Env ──────────────────────────────────────────────────────────────────────

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, "test.env", "JAXON_CORE_LANGUAGE=es\n")
	t.Setenv("JAXON_TEMPLATE_CACHE__DIR", "/var/cache/jaxon")
	t.Setenv("OTHER_VAR", "ignored")
	// godotenv.Load sets variables for the whole process.
	t.Cleanup(func() { _ = os.Unsetenv("JAXON_CORE_LANGUAGE") })

	s := config.NewStore()
	config.LoadEnv(s, ldlog.NewDisabledLoggers(), envFile)

	assert.Equal(t, "es", s.String(config.OptLanguage, ""))
	assert.Equal(t, "/var/cache/jaxon", s.String(config.OptCacheDir, ""))
	assert.False(t, s.HasOption("other.var"))
}

func TestLoadEnv_SkipsMalformedNames(t *testing.T) {
	t.Setenv("JAXON_PATH_", "/usr/bin")
	t.Setenv("JAXON_CORE_ENCODING", "ISO-8859-1")

	mockLog := ldlogtest.NewMockLog()
	defer mockLog.DumpIfTestFailed(t)

	s := config.NewStore()
	config.LoadEnv(s, mockLog.Loggers, filepath.Join(t.TempDir(), "absent.env"))

	assert.Equal(t, "ISO-8859-1", s.String(config.OptEncoding, ""))
	assert.False(t, s.HasOption("path."))
	mockLog.AssertMessageMatch(t, true, ldlog.Warn, "Ignoring environment variable JAXON_PATH_")
}

// ── Typed ────────────────────────────────────────────────────────────────────

func TestTyped_Defaults(t *testing.T) {
	s := config.NewStore()
	require.NoError(t, s.SetOptions(config.Defaults(), ""))
	require.NoError(t, s.SetOption("custom.flag", "on"))

	opts, err := config.Typed(s)
	require.NoError(t, err)

	assert.Equal(t, "en", opts.Core.Language)
	assert.Equal(t, "jaxon_", opts.Core.FunctionPrefix)
	assert.Equal(t, "Jaxon", opts.Core.ClassPrefix)
	assert.True(t, opts.JS.Minify)
	assert.Equal(t, map[string]any{"custom.flag": "on"}, opts.Extra)
}

func TestTyped_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{config.OptFunctionPrefix, "1bad"},
		{config.OptClassPrefix, "class"},
		{config.OptLanguage, "not a language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.NewStore()
			require.NoError(t, s.SetOption(tt.name, tt.value))
			_, err := config.Typed(s)
			assert.Error(t, err)
		})
	}
}

func TestTyped_MinifyFromString(t *testing.T) {
	s := config.NewStore()
	require.NoError(t, s.SetOption(config.OptMinify, "true"))
	opts, err := config.Typed(s)
	require.NoError(t, err)
	assert.True(t, opts.JS.Minify)
}

// ── Watch ────────────────────────────────────────────────────────────────────

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.yaml", "core:\n  language: en\n")

	mockLog := ldlogtest.NewMockLog()
	mockLog.Loggers.SetMinLevel(ldlog.Debug)
	defer mockLog.DumpIfTestFailed(t)

	s := config.NewStore()
	require.NoError(t, config.LoadFile(s, path, ""))

	var mu sync.Mutex
	closer, err := config.Watch(path, s, "", &mu, mockLog.Loggers, 20*time.Millisecond)
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, os.WriteFile(path, []byte("core:\n  language: it\n"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return s.String(config.OptLanguage, "") == "it"
	}, 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return mockLog.HasMessageMatch(ldlog.Info, "Config reloaded")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatch_ReloadKeepsRemovedKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.yaml", "core:\n  language: en\ntemplate:\n  cache_dir: /tmp/tpl\n")

	s := config.NewStore()
	require.NoError(t, config.LoadFile(s, path, ""))

	var mu sync.Mutex
	closer, err := config.Watch(path, s, "", &mu, ldlog.NewDisabledLoggers(), 20*time.Millisecond)
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, os.WriteFile(path, []byte("core:\n  language: it\n"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return s.String(config.OptLanguage, "") == "it"
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/tmp/tpl", s.String(config.OptCacheDir, ""))
}
