package view

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

func cacheFile(dir, name string) string {
	sum := sha1.Sum([]byte(name))
	return filepath.Join(dir, hex.EncodeToString(sum[:])+".json")
}

// checkCacheDir creates dir if needed and proves it is writable.
func checkCacheDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".writable-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// readCache loads a compiled template written for the same source mtime.
func readCache(dir, name string, mtime int64) (*compiled, bool) {
	data, err := os.ReadFile(cacheFile(dir, name))
	if err != nil {
		return nil, false
	}
	var tpl compiled
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, false
	}
	if tpl.Name != name || tpl.ModTime != mtime {
		return nil, false
	}
	return &tpl, true
}

func writeCache(dir string, tpl *compiled) error {
	data, err := json.Marshal(tpl)
	if err != nil {
		return err
	}
	path := cacheFile(dir, tpl.Name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
