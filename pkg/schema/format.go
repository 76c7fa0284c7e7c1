package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Decode parses data in the given format into an automaton.
func Decode(data []byte, format Format) (*domain.Automaton, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, err
	}
	return DecodeMap(raw)
}

// DecodeFile reads and decodes the document at path.
func DecodeFile(path string) (*domain.Automaton, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	a, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Encode renders a in the given format. Markdown output is the YAML document as front matter.
func Encode(a *domain.Automaton, format Format) ([]byte, error) {
	doc := FromAutomaton(a)
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatMarkdown:
		body, err := yaml.Marshal(doc)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString("---\n")
		buf.Write(body)
		buf.WriteString("---\n")
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func decodeRaw(data []byte, format Format) (map[string]any, error) {
	raw := make(map[string]any)
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid json document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid yaml document: %w", err)
		}
	case FormatMarkdown:
		front, ok := FrontMatter(data)
		if !ok {
			return nil, fmt.Errorf("markdown document has no front matter")
		}
		if err := yaml.Unmarshal(front, &raw); err != nil {
			return nil, fmt.Errorf("invalid front matter: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return raw, nil
}

// FrontMatter returns the YAML block between the leading "---" fences of a Markdown file.
func FrontMatter(data []byte) ([]byte, bool) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) == 0 || string(bytes.TrimSpace(lines[0])) != "---" {
		return nil, false
	}

	var front bytes.Buffer
	for _, line := range lines[1:] {
		if string(bytes.TrimSpace(line)) == "---" {
			return front.Bytes(), true
		}
		front.Write(line)
	}
	return nil, false
}
