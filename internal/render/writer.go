package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Format names.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatAstro = "astro"
	FormatHugo  = "hugo"
)

// Manifest file names.
const (
	ManifestJSON = "manifest.json"
	ManifestYAML = "manifest.yaml"
)

// Writer renders a manifest into files below an output directory.
type Writer interface {
	Format() string
	// Write returns the absolute paths of the files it wrote.
	Write(dir string, m *Manifest) ([]string, error)
}

var writers = map[string]Writer{
	FormatJSON:  jsonWriter{},
	FormatYAML:  yamlWriter{},
	FormatAstro: astroWriter{},
	FormatHugo:  hugoWriter{},
}

// Formats returns the supported output formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(writers))
	for f := range writers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriterFor returns the writer of format.
func WriterFor(format string) (Writer, error) {
	w, ok := writers[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (supported: %v)", format, Formats())
	}
	return w, nil
}

type jsonWriter struct{}

func (jsonWriter) Format() string { return FormatJSON }

func (jsonWriter) Write(dir string, m *Manifest) ([]string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	path, err := WriteFile(dir, ManifestJSON, append(data, '\n'))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

type yamlWriter struct{}

func (yamlWriter) Format() string { return FormatYAML }

func (yamlWriter) Write(dir string, m *Manifest) ([]string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	path, err := WriteFile(dir, ManifestYAML, buf.Bytes())
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// ReadManifestJSON decodes a manifest written by the json format.
func ReadManifestJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteAll runs the writer of every format in order and returns all written
// paths. It stops at the first failure.
func WriteAll(dir string, m *Manifest, formats []string) ([]string, error) {
	var written []string
	for _, f := range formats {
		w, err := WriterFor(f)
		if err != nil {
			return written, err
		}
		paths, err := w.Write(dir, m)
		written = append(written, paths...)
		if err != nil {
			return written, fmt.Errorf("%s output: %w", f, err)
		}
	}
	return written, nil
}
