// Package schemas provides JSON Schema validation and file encoding for CV records.
package schemas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/cv-genie/internal/types"
)

// Format is a record file encoding
type Format string

// Supported record encodings
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported record file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadRecord reads and decodes a record file.
func LoadRecord(path string) (types.Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return types.Record{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Record{}, fmt.Errorf("failed to read record file: %w", err)
	}
	r, err := DecodeRecord(data, format)
	if err != nil {
		return types.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// SaveRecord encodes r and writes it to path, replacing any existing file.
func SaveRecord(path string, r types.Record) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := EncodeRecord(r, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}
	return nil
}

// DecodeRecord parses a record document. The document is checked against
// the record schema first, so shape problems are reported per field.
// YAML scalars are always read as text: "2020" stays "2020". A field left
// blank (null) reads as "".
func DecodeRecord(data []byte, format Format) (types.Record, error) {
	data, err := DocumentJSON(data, format)
	if err != nil {
		return types.Record{}, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return types.DefaultRecord(), nil
	}
	if err := ValidateRecordJSON(data); err != nil {
		return types.Record{}, err
	}
	var r types.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return types.Record{}, err
	}
	return r, nil
}

// DocumentJSON returns a record document as JSON, converting YAML input.
// The document is not validated.
func DocumentJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		return yamlToJSON(data)
	default:
		return nil, fmt.Errorf("unsupported record format %q", format)
	}
}

// EncodeRecord writes r in the given format with sections in display order.
func EncodeRecord(r types.Record, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(recordNode(r)); err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported record format %q", format)
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	v, err := nodeValue(&doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}

func recordNode(r types.Record) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range types.Sections() {
		root.Content = append(root.Content, strNode(id.String()), valueNode(r.Section(id), id.Fields()))
	}
	return root
}

func valueNode(v types.Value, order []string) *yaml.Node {
	switch v := v.(type) {
	case types.Scalar:
		return strNode(string(v))
	case types.Object:
		return fieldsNode(v, order)
	case types.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v {
			seq.Content = append(seq.Content, fieldsNode(item, order))
		}
		return seq
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// fieldsNode emits declared fields first, then any extra keys sorted.
func fieldsNode(m map[string]string, order []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		if val, ok := m[k]; ok {
			node.Content = append(node.Content, strNode(k), strNode(val))
			seen[k] = true
		}
	}
	var extra []string
	for k := range m {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		node.Content = append(node.Content, strNode(k), strNode(m[k]))
	}
	return node
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
