package minify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jaxon/framework/minify"
)

const script = `
// say hello
function greet ( name ) {
    var message = "Hello, " + name ;
    return message ;
}
`

func TestMinify_Success(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.js")
	dst := filepath.Join(dir, "app.min.js")
	require.NoError(t, os.WriteFile(src, []byte(script), 0o600))

	ok := minify.New(ldlog.NewDisabledLoggers()).Minify(src, dst)
	require.True(t, ok)

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Less(t, len(out), len(script))
	assert.NotContains(t, string(out), "say hello")
	assert.Contains(t, string(out), "greet")
}

func TestMinify_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.min.js")

	mockLog := ldlogtest.NewMockLog()
	ok := minify.New(mockLog.Loggers).Minify(filepath.Join(dir, "missing.js"), dst)

	assert.False(t, ok)
	_, err := os.Stat(dst)
	assert.True(t, os.IsNotExist(err), "destination must not be created")
	mockLog.AssertMessageMatch(t, true, ldlog.Warn, "Cannot minify")
}

func TestMinify_ExistingDestinationUntouchedOnFailure(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.min.js")
	require.NoError(t, os.WriteFile(dst, []byte("previous"), 0o600))

	ok := minify.New(ldlog.NewDisabledLoggers()).Minify(filepath.Join(dir, "missing.js"), dst)
	assert.False(t, ok)

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(out))
}

func TestMinify_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(src, []byte(script), 0o600))

	ok := minify.New(ldlog.NewDisabledLoggers()).Minify(src, filepath.Join(dir, "no", "such", "dir", "app.min.js"))
	assert.False(t, ok)
}

func TestMinify_DisabledCopiesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.js")
	dst := filepath.Join(dir, "app.min.js")
	require.NoError(t, os.WriteFile(src, []byte(script), 0o600))

	mf := minify.New(ldlog.NewDisabledLoggers())
	mf.SetEnabled(false)
	require.True(t, mf.Minify(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, script, string(data))

	assert.False(t, mf.Minify(filepath.Join(dir, "missing.js"), dst))
}
