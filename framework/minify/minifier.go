// Package minify shrinks JavaScript files. Minification is best-effort:
// failures are logged and reported as false, never returned as errors.
package minify

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

const mediaType = "application/javascript"

// Minifier minifies script files.
type Minifier struct {
	m        *minify.M
	loggers  ldlog.Loggers
	disabled bool
}

// New returns a Minifier for JavaScript.
func New(loggers ldlog.Loggers) *Minifier {
	m := minify.New()
	m.AddFunc(mediaType, js.Minify)
	return &Minifier{m: m, loggers: loggers}
}

// SetEnabled switches minification on or off. While off, Minify copies src
// to dst unchanged.
func (mf *Minifier) SetEnabled(enabled bool) { mf.disabled = !enabled }

// Minify reads src and writes its minified form to dst. It returns false on
// any failure, in which case dst is left as it was.
func (mf *Minifier) Minify(src, dst string) bool {
	in, err := os.ReadFile(src)
	if err != nil {
		mf.loggers.Warnf("Cannot minify %q: %v", src, err)
		return false
	}

	if mf.disabled {
		if err := writeAtomic(dst, in); err != nil {
			mf.loggers.Warnf("Cannot write %q: %v", dst, err)
			return false
		}
		mf.loggers.Debugf("Minification off, copied %q to %q", src, dst)
		return true
	}

	var out bytes.Buffer
	if err := mf.m.Minify(mediaType, &out, bytes.NewReader(in)); err != nil {
		mf.loggers.Warnf("Cannot minify %q: %v", src, err)
		return false
	}

	if err := writeAtomic(dst, out.Bytes()); err != nil {
		mf.loggers.Warnf("Cannot write minified %q: %v", dst, err)
		return false
	}
	mf.loggers.Debugf("Minified %q to %q (%d → %d bytes)", src, dst, len(in), out.Len())
	return true
}

// writeAtomic writes through a temp file in dst's directory, then renames it.
func writeAtomic(dst string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
