package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList supports either a single string or a list of strings:
//
//	keys: "Mod1-Return"
//
// or:
//
//	keys:
//	  - "Mod1-e"
//	  - "e"
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: list entries must be scalars", item.Line)
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or list of strings", value.Line)
	}
}

// RawConfig is one config file as written: an optional include list plus any
// subset of Config. Decoding a file onto a RawConfig seeded with the merged
// result so far overrides only the keys present in that file.
type RawConfig struct {
	Include StringList `yaml:"include"`
	Config  `yaml:",inline"`
}
