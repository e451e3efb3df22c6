package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse reads a YAML document mapping class names to candidate lists:
//
//	person: [John Smith, Jim Avery]
//	hashtag: [history]
//	relation: [History, Archaeology]
func Parse(data []byte) (*Vocabulary, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing vocabulary: %w", err)
	}
	return FromNames(raw)
}

// FromNames converts a class-name keyed map, as found in configuration, into a
// Vocabulary.
func FromNames(raw map[string][]string) (*Vocabulary, error) {
	lists := make(map[Class][]string, len(raw))
	for name, entries := range raw {
		c, err := ParseClass(name)
		if err != nil {
			return nil, err
		}
		lists[c] = append(lists[c], entries...)
	}
	return New(lists), nil
}

// LoadFile reads and parses a vocabulary file.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// MarshalYAML writes the vocabulary in the format Parse reads.
func (v *Vocabulary) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range Classes {
		list := v.Candidates(c)
		if len(list) == 0 {
			continue
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, entry := range list {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: c.String()},
			seq,
		)
	}
	return node, nil
}
