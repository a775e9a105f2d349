package config

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Machfile represents the structure of the machfile.yaml configuration file.
type Machfile struct {
	Version string     `yaml:"version"`
	Default string     `yaml:"default"`
	Targets TargetList `yaml:"targets"`
}

// TargetSpec represents a single target definition in the configuration.
type TargetSpec struct {
	Description string   `yaml:"description"`
	Cmd         []string `yaml:"cmd"`
	DependsOn   []string `yaml:"dependsOn"`
}

// TargetEntry pairs a target name with its spec.
type TargetEntry struct {
	Name string
	Spec TargetSpec
}

// TargetList is an ordered list of target definitions. It decodes from a YAML
// mapping while preserving declaration order, which a plain map would lose.
type TargetList []TargetEntry

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *TargetList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return zerr.With(zerr.New("targets must be a mapping"), "line", value.Line)
	}

	entries := make(TargetList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var spec TargetSpec
		if err := valueNode.Decode(&spec); err != nil {
			return zerr.Wrap(err, "failed to decode target "+keyNode.Value)
		}
		entries = append(entries, TargetEntry{Name: keyNode.Value, Spec: spec})
	}

	*l = entries
	return nil
}
