package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
)

// Document is the decoded configuration. Credential holds the plain text.
type Document struct {
	Names      Names
	Sender     string
	Credential string
	Recipients []string
	Header     string
	Footer     string
}

// Names is the ordered chinese → english mapping of the roster.
// It encodes as a JSON/YAML object and keeps key order both ways.
type Names []attendance.NamePair

// MarshalJSON writes an object in slice order.
func (n Names) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(p.ChineseName)
		if err != nil {
			return nil, err
		}
		value, err := marshalString(p.EnglishName)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping key order. Values must be strings.
func (n *Names) UnmarshalJSON(data []byte) error {
	out := Names{}
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var english string
		if err := json.Unmarshal(raw, &english); err != nil {
			return fmt.Errorf("names[%q]: %w", key, err)
		}
		out = append(out, attendance.NamePair{ChineseName: key, EnglishName: english})
		return nil
	})
	if err != nil {
		return err
	}
	*n = out
	return nil
}

// MarshalYAML writes a mapping node in slice order.
func (n Names) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range n {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.ChineseName},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.EnglishName},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node keeping key order.
func (n *Names) UnmarshalYAML(value *yaml.Node) error {
	out := Names{}
	switch {
	case isYAMLNull(value):
	case value.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			var key, english string
			if err := value.Content[i].Decode(&key); err != nil {
				return err
			}
			if err := value.Content[i+1].Decode(&english); err != nil {
				return fmt.Errorf("names[%q]: %w", key, err)
			}
			out = append(out, attendance.NamePair{ChineseName: key, EnglishName: english})
		}
	default:
		return fmt.Errorf("names: expected a mapping, got %s", value.Tag)
	}
	*n = out
	return nil
}

// recipientList accepts an array of addresses or an object keyed by address.
type recipientList []string

func (r *recipientList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*r = recipientList{}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		out := recipientList{}
		err := decodeOrderedObject(trimmed, func(key string, _ json.RawMessage) error {
			out = append(out, key)
			return nil
		})
		if err != nil {
			return err
		}
		*r = out
		return nil
	default:
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("recipients: %w", err)
		}
		*r = append(recipientList{}, list...)
		return nil
	}
}

func (r *recipientList) UnmarshalYAML(value *yaml.Node) error {
	out := recipientList{}
	switch {
	case isYAMLNull(value):
	case value.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			var key string
			if err := value.Content[i].Decode(&key); err != nil {
				return err
			}
			out = append(out, key)
		}
	case value.Kind == yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return fmt.Errorf("recipients: %w", err)
		}
		out = append(out, list...)
	default:
		return fmt.Errorf("recipients: expected a sequence or mapping, got %s", value.Tag)
	}
	*r = out
	return nil
}

// wireDocument is the persisted shape. Keys are fixed.
type wireDocument struct {
	Names           Names         `json:"names" yaml:"names"`
	Sender          string        `json:"sender" yaml:"sender"`
	PasswordEncoded string        `json:"password_encoded" yaml:"password_encoded"`
	Recipients      recipientList `json:"recipients" yaml:"recipients"`
	Header          string        `json:"header" yaml:"header"`
	Footer          string        `json:"footer" yaml:"footer"`
}

func decodeOrderedObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("expected a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isYAMLNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
