package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ReadFile parses an option file into a Tree, keeping the document's key order.
// The format is chosen by extension: .yaml, .yml, .json or .toml.
func ReadFile(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		// JSON is read through the YAML parser so key order survives.
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", ext)
	}
}

// LoadFile reads path and stores its options under prefix.
func LoadFile(s *Store, path, prefix string) error {
	tree, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := s.SetOptions(tree, prefix); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ── YAML / JSON ──────────────────────────────────────────────────────────────

// ParseYAML decodes a YAML (or JSON) mapping document into a Tree.
func ParseYAML(data []byte) (Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return Tree{}, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config: top-level value must be a mapping")
	}
	return yamlTree(root)
}

func yamlTree(node *yaml.Node) (Tree, error) {
	tree := make(Tree, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		if val.Kind == yaml.AliasNode && val.Alias != nil {
			val = val.Alias
		}
		if val.Kind == yaml.MappingNode {
			sub, err := yamlTree(val)
			if err != nil {
				return nil, err
			}
			tree = append(tree, Entry{Key: key, Value: sub})
			continue
		}
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, fmt.Errorf("config: key %q: %w", key, err)
		}
		tree = append(tree, Entry{Key: key, Value: v})
	}
	return tree, nil
}

// ── TOML ─────────────────────────────────────────────────────────────────────

// ParseTOML decodes a TOML document into a flat Tree of dotted names, in the
// order the keys appear. Arrays of tables are kept as leaf values.
func ParseTOML(data []byte) (Tree, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	tree := Tree{}
	for _, key := range md.Keys() {
		v, ok := lookup(raw, key)
		if !ok {
			continue
		}
		if _, isTable := v.(map[string]any); isTable {
			continue
		}
		tree = append(tree, Entry{Key: strings.Join(key, "."), Value: v})
	}
	return tree, nil
}

func lookup(m map[string]any, path []string) (any, bool) {
	var cur any = m
	for _, seg := range path {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = node[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}
