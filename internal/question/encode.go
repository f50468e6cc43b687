package question

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDocument reads and decodes a question document without validating it.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read question set: %w", err)
	}
	return Decode(data, FormatForPath(path))
}

// Encode writes doc in the given format. XLSX workbooks carry no version and
// always load as version 1.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatXLSX:
		return EncodeXLSX(doc.Questions)
	case FormatYAML, "":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported question set format %q", format)
	}
}
