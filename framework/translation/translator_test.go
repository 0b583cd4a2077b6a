package translation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jaxon/framework/translation"
)

func newTranslator(t *testing.T) *translation.Translator {
	t.Helper()
	tr, err := translation.New(ldlog.NewDisabledLoggers())
	require.NoError(t, err)
	return tr
}

func TestTrans_MissingKeyReturnsKey(t *testing.T) {
	tr := newTranslator(t)
	assert.Equal(t, "greeting.missing", tr.Trans("greeting.missing", map[string]any{}, "en"))
	assert.Equal(t, "greeting.missing", tr.Trans("greeting.missing", nil, "xx"))
}

func TestTrans_BuiltinCatalogs(t *testing.T) {
	tr := newTranslator(t)
	vars := map[string]any{"name": "1bad"}

	assert.Equal(t, "Invalid function name: 1bad.", tr.Trans("errors.functions.invalid", vars, ""))
	assert.Equal(t, "Nom de fonction invalide : 1bad.", tr.Trans("errors.functions.invalid", vars, "fr"))
}

func TestTrans_Placeholders(t *testing.T) {
	tr := newTranslator(t)
	tr.AddTranslations("en", map[string]string{
		"greeting": "Hello :user (:username), you have :count messages",
	})

	got := tr.Trans("greeting", map[string]any{"user": "Ann", "username": "ann42", "count": 3}, "en")
	assert.Equal(t, "Hello Ann (ann42), you have 3 messages", got)
}

func TestTrans_DefaultLocale(t *testing.T) {
	tr := newTranslator(t)
	assert.Equal(t, translation.DefaultLocale, tr.Locale())

	tr.SetLocale("fr")
	assert.Equal(t, "fr", tr.Locale())
	assert.Equal(t, "Nom de classe invalide : x.", tr.Trans("errors.classes.invalid", map[string]any{"name": "x"}, ""))
}

func TestTrans_FallsBackToBaseLanguage(t *testing.T) {
	tr := newTranslator(t)
	tr.AddTranslations("pt", map[string]string{"yes": "sim"})
	tr.AddTranslations("pt-BR", map[string]string{"bus": "ônibus"})

	assert.Equal(t, "ônibus", tr.Trans("bus", nil, "pt-BR"))
	assert.Equal(t, "sim", tr.Trans("yes", nil, "pt-BR"))
	assert.Equal(t, "bus", tr.Trans("bus", nil, "pt"))
	assert.True(t, tr.Has("yes", "pt-br"))
}

func TestLoadFile_And_LoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.yaml"), []byte("app:\n  hello: \"Hallo :name\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es.yaml"), []byte("app:\n  hello: \"Hola :name\"\n"), 0o600))

	tr := newTranslator(t)
	require.NoError(t, tr.LoadDir(dir))

	assert.Equal(t, "Hallo Ann", tr.Trans("app.hello", map[string]any{"name": "Ann"}, "de"))
	assert.Equal(t, "Hola Ann", tr.Trans("app.hello", map[string]any{"name": "Ann"}, "es"))

	assert.Error(t, tr.LoadFile(filepath.Join(dir, "missing.yaml"), "it"))
}

func TestTrans_MissingKeyLogsSuggestion(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	mockLog.Loggers.SetMinLevel(ldlog.Debug)
	defer mockLog.DumpIfTestFailed(t)

	tr, err := translation.New(mockLog.Loggers)
	require.NoError(t, err)

	assert.Equal(t, "errors.function.invalid", tr.Trans("errors.function.invalid", nil, "en"))
	mockLog.AssertMessageMatch(t, true, ldlog.Debug, `did you mean "errors.functions.invalid"`)
}
