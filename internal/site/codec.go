package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeYAML serializes the configuration with two-space indentation.
func EncodeYAML(c *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("encode site yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode site yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses a configuration previously written by EncodeYAML (or
// hand-written in the same shape). Unknown keys are rejected.
func DecodeYAML(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode site yaml: %w", err)
	}
	return &c, nil
}

// EncodeJSON serializes the configuration as indented JSON.
func EncodeJSON(c *Config) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode site json: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeJSON parses a JSON configuration. Unknown keys are rejected.
func DecodeJSON(data []byte) (*Config, error) {
	var c Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode site json: %w", err)
	}
	return &c, nil
}
