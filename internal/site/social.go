package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SocialLink maps a platform name (github, discord, ...) to a URL.
type SocialLink struct {
	Platform string
	URL      string
}

// Social is an ordered platform -> URL mapping. It encodes as a YAML/JSON
// mapping and keeps declaration order in both directions.
type Social []SocialLink

// Get returns the URL for platform.
func (s Social) Get(platform string) (string, bool) {
	for _, l := range s {
		if l.Platform == platform {
			return l.URL, true
		}
	}
	return "", false
}

// MarshalYAML implements yaml.Marshaler.
func (s Social) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, l := range s {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: l.Platform},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: l.URL},
		)
	}
	return n, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Social) UnmarshalYAML(value *yaml.Node) error {
	if value.ShortTag() == "!!null" {
		*s = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("social: expected mapping, got %s", value.ShortTag())
	}
	out := make(Social, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var platform, url string
		if err := value.Content[i].Decode(&platform); err != nil {
			return fmt.Errorf("social key: %w", err)
		}
		if err := value.Content[i+1].Decode(&url); err != nil {
			return fmt.Errorf("social.%s: %w", platform, err)
		}
		out = append(out, SocialLink{Platform: platform, URL: url})
	}
	*s = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Social) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(l.Platform)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(l.URL)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Social) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("social: expected object")
	}
	var out Social
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := kt.(string)
		var url string
		if err := dec.Decode(&url); err != nil {
			return fmt.Errorf("social.%s: %w", key, err)
		}
		out = append(out, SocialLink{Platform: key, URL: url})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
