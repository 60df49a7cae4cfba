package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at a dotted YAML path and the file
// that last set it. List entries are addressed by index:
//
//	log_level
//	appearance.colors.sel_fg
//	tag_defaults.gaps.inner_h
//	rules.3.class
//	keys.0
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	var node yaml.Node
	if err := node.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	cur := &node
	for _, part := range strings.Split(path, ".") {
		next, err := child(cur, part)
		if err != nil {
			return nil, fmt.Errorf("unknown path: %s: %w", path, err)
		}
		cur = next
	}
	var out any
	if err := cur.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func child(n *yaml.Node, key string) (*yaml.Node, error) {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == key {
				return n.Content[i+1], nil
			}
		}
		return nil, fmt.Errorf("no key %q", key)
	case yaml.SequenceNode:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(n.Content) {
			return nil, fmt.Errorf("no index %q", key)
		}
		return n.Content[i], nil
	default:
		return nil, fmt.Errorf("%q is not a container", key)
	}
}
