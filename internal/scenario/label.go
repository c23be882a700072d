package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/bayesdice/internal/source"
)

// Label is a source.Key decoded from a YAML scalar. Integer scalars become
// int keys, booleans bool keys, and everything else quoted or plain string keys.
type Label struct {
	source.Key
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Label) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: label must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!int":
		var v int
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		l.Key = source.Int(v)
	case "!!bool":
		var v bool
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		l.Key = source.Bool(v)
	case "!!str":
		l.Key = source.Str(node.Value)
	default:
		return fmt.Errorf("line %d: label %q must be an int, bool or string", node.Line, node.Value)
	}
	return nil
}
