// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// LevelMap maps property names to level IDs, keeping the order in which
// property names were first set. Encoded as a JSON or YAML object whose key
// order is the insertion order. Setting an existing key overwrites the value
// in place.
type LevelMap struct {
	keys   []string
	values map[string]string
}

// NewLevelMap returns a map with every property set to LevelNone.
func NewLevelMap(properties []string) *LevelMap {
	m := &LevelMap{values: make(map[string]string, len(properties))}
	for _, p := range properties {
		m.Set(p, LevelNone)
	}
	return m
}

// Set assigns level to property.
func (m *LevelMap) Set(property, level string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[property]; !ok {
		m.keys = append(m.keys, property)
	}
	m.values[property] = level
}

// Get returns the level for property and whether it was set.
func (m *LevelMap) Get(property string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[property]
	return v, ok
}

// Len returns the number of distinct properties.
func (m *LevelMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the property names in insertion order.
func (m *LevelMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// MarshalJSON encodes the map as an object in insertion order. Strings are
// written without HTML escaping.
func (m *LevelMap) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			out.WriteByte(',')
		}
		if err := writeJSONString(&out, k); err != nil {
			return nil, err
		}
		out.WriteByte(':')
		if err := writeJSONString(&out, m.values[k]); err != nil {
			return nil, err
		}
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}

func writeJSONString(out *bytes.Buffer, s string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding %q: %w", s, err)
	}
	out.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	return nil
}

// UnmarshalJSON decodes an object, keeping the document's key order.
func (m *LevelMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding levels: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decoding levels: expected object, got %v", tok)
	}

	*m = LevelMap{values: make(map[string]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding levels: %w", err)
		}
		key, _ := tok.(string)
		var level string
		if err := dec.Decode(&level); err != nil {
			return fmt.Errorf("decoding level for %q: %w", key, err)
		}
		m.Set(key, level)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding levels: %w", err)
	}
	return nil
}

// MarshalYAML encodes the map as a mapping node in insertion order.
func (m *LevelMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.values[k]},
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node, keeping the document's key order.
func (m *LevelMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("decoding levels: line %d: expected mapping", value.Line)
	}
	*m = LevelMap{values: make(map[string]string)}
	for i := 0; i+1 < len(value.Content); i += 2 {
		m.Set(value.Content[i].Value, value.Content[i+1].Value)
	}
	return nil
}
