package question

import (
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk question set. A bare list of records is accepted as well
// and treated as version 1.
type Document struct {
	Version   int      `json:"version" yaml:"version"`
	Questions []Record `json:"questions" yaml:"questions"`
}

// Record is one raw question as written in a question document.
type Record struct {
	ID        string        `json:"id,omitempty" yaml:"id,omitempty"`
	Type      string        `json:"type" yaml:"type"`
	Question  string        `json:"question" yaml:"question"`
	Options   []string      `json:"options,omitempty" yaml:"options,omitempty"`
	Answer    AnswerValue   `json:"answer,omitzero" yaml:"answer,omitempty"`
	RowHeader string        `json:"row_header,omitempty" yaml:"row_header,omitempty"`
	RowNames  []string      `json:"row_names,omitempty" yaml:"row_names,omitempty"`
	ColNames  []ColumnGroup `json:"col_names,omitempty" yaml:"col_names,omitempty"`
}

// ColumnGroup names the column header group of a cross table and its columns.
type ColumnGroup struct {
	Group string   `json:"group,omitempty" yaml:"group,omitempty"`
	Items []string `json:"items" yaml:"items"`
}

// AnswerValue holds the raw answer key. Its shape depends on the question type:
// an index, a list of indices, or a matrix of booleans (0/1 accepted).
type AnswerValue struct {
	raw any
	set bool
}

// NewAnswerValue wraps an already decoded answer key. Typed Go values ([]int, [][]bool)
// are converted to the generic shape produced by the decoders.
func NewAnswerValue(raw any) AnswerValue {
	switch typed := raw.(type) {
	case []int:
		values := make([]any, len(typed))
		for i, v := range typed {
			values[i] = v
		}
		raw = values
	case [][]bool:
		rows := make([]any, len(typed))
		for i, row := range typed {
			cells := make([]any, len(row))
			for j, v := range row {
				cells[j] = v
			}
			rows[i] = cells
		}
		raw = rows
	}
	return AnswerValue{raw: raw, set: raw != nil}
}

// IsSet reports whether the document provided an answer.
func (v AnswerValue) IsSet() bool { return v.set }

// UnmarshalJSON keeps the decoded value for type-aware validation.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = NewAnswerValue(raw)
	return nil
}

// MarshalJSON writes the raw value back out.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// UnmarshalYAML keeps the decoded value for type-aware validation.
func (v *AnswerValue) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*v = NewAnswerValue(raw)
	return nil
}

// MarshalYAML writes the raw value back out.
func (v AnswerValue) MarshalYAML() (any, error) {
	return v.raw, nil
}

// IsZero lets json omitzero and yaml omitempty drop unset answers.
func (v AnswerValue) IsZero() bool { return !v.set }

func (v AnswerValue) index() (int, bool) {
	return asInt(v.raw)
}

func (v AnswerValue) indices() ([]int, bool) {
	items, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		value, ok := asInt(item)
		if !ok {
			return nil, false
		}
		out = append(out, value)
	}
	return out, true
}

// matrix returns the rows of a boolean matrix. ok is false when the value is not a
// list of lists of booleans or 0/1 numbers.
func (v AnswerValue) matrix() ([][]bool, bool) {
	rows, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([][]bool, 0, len(rows))
	for _, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			return nil, false
		}
		parsed := make([]bool, 0, len(cells))
		for _, cell := range cells {
			value, ok := asCell(cell)
			if !ok {
				return nil, false
			}
			parsed = append(parsed, value)
		}
		out = append(out, parsed)
	}
	return out, true
}

func asInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case uint64:
		if typed > math.MaxInt32 {
			return 0, false
		}
		return int(typed), true
	case float64:
		if typed != math.Trunc(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		return int(typed), true
	default:
		return 0, false
	}
}

func asCell(value any) (bool, bool) {
	if b, ok := value.(bool); ok {
		return b, true
	}
	n, ok := asInt(value)
	if !ok {
		return false, false
	}
	switch n {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return false, false
	}
}
