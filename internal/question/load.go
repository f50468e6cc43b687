package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the decoder for a question document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// FormatForPath picks a format from the file extension. Unknown extensions are read as YAML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatYAML
	}
}

// Load reads, decodes and validates a question document.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read question set: %w", err)
	}
	return Parse(data, FormatForPath(path))
}

// Parse decodes and validates a question document held in memory.
func Parse(data []byte, format Format) (Catalog, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return Catalog{}, err
	}
	return Build(doc)
}

// Decode turns raw bytes into a Document without validating it.
func Decode(data []byte, format Format) (Document, error) {
	switch format {
	case FormatJSON:
		return parseJSONDocument(data)
	case FormatXLSX:
		return parseXLSXDocument(data)
	case FormatYAML, "":
		return parseYAMLDocument(data)
	default:
		return Document{}, fmt.Errorf("unsupported question set format %q", format)
	}
}

func parseJSONDocument(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []Record
		if err := decodeJSON(trimmed, &records); err != nil {
			return Document{}, err
		}
		return Document{Version: 1, Questions: records}, nil
	}
	var doc Document
	if err := decodeJSON(trimmed, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func decodeJSON(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse json: multiple documents are not supported")
		}
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

func parseYAMLDocument(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
		var records []Record
		if err := decodeYAML(data, &records); err != nil {
			return Document{}, err
		}
		return Document{Version: 1, Questions: records}, nil
	}
	var doc Document
	if err := decodeYAML(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func decodeYAML(data []byte, target any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}
