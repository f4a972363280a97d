package tree

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// DecodeYAML reads every document of a multi-document YAML stream.
//
// Empty documents are returned as null, so the index of each node matches
// its position in the stream. The whole stream is read before returning.
func DecodeYAML(r io.Reader) ([]Node, error) {
	dec := yaml.NewDecoder(r)

	var docs []Node

	for {
		var doc yaml.Node

		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}

		if err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}

		n, err := FromYAML(&doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(docs), err)
		}

		docs = append(docs, n)
	}
}

// FromYAML converts a [yaml.Node] into a [Node]. Mapping order is kept,
// aliases are expanded, and merge keys ("<<") add the merged keys that the
// mapping does not set itself.
func FromYAML(n *yaml.Node) (Node, error) {
	if n == nil {
		return Null(), nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}

		return FromYAML(n.Content[0])

	case yaml.AliasNode:
		return FromYAML(n.Alias)

	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))

		for i, item := range n.Content {
			v, err := FromYAML(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			seq = append(seq, v)
		}

		return seq, nil

	case yaml.MappingNode:
		return fromYAMLMapping(n)

	case yaml.ScalarNode:
		var v any

		err := n.Decode(&v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return FromValue(v)
	}

	return Null(), nil
}

func fromYAMLMapping(n *yaml.Node) (*Mapping, error) {
	m := NewMapping()

	var merges []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.ShortTag() == mergeTag {
			merges = append(merges, v)
			continue
		}

		key, err := yamlKey(k)
		if err != nil {
			return nil, err
		}

		val, err := FromYAML(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		m.Set(key, val)
	}

	for _, src := range merges {
		if src.Kind == yaml.AliasNode {
			src = src.Alias
		}

		sources := []*yaml.Node{src}
		if src.Kind == yaml.SequenceNode {
			sources = src.Content
		}

		for _, s := range sources {
			err := mergeYAML(m, s)
			if err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// mergeYAML adds the keys of src that m does not already have.
func mergeYAML(m *Mapping, src *yaml.Node) error {
	if src.Kind == yaml.AliasNode {
		src = src.Alias
	}

	if src == nil || src.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: merge value must be a mapping", ErrUnsupportedValue)
	}

	merged, err := fromYAMLMapping(src)
	if err != nil {
		return err
	}

	for _, key := range merged.keys {
		if _, ok := m.values[key]; !ok {
			m.Set(key, merged.values[key])
		}
	}

	return nil
}

// yamlKey returns the text of a scalar mapping key.
func yamlKey(k *yaml.Node) (string, error) {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}

	if k.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: line %d: mapping key is not a scalar", ErrUnsupportedValue, k.Line)
	}

	return k.Value, nil
}
