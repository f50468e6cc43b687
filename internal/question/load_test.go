package question

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadJSONList verifies the original list-shaped documents load.
func TestLoadJSONList(t *testing.T) {
	path := writeFile(t, "questions.json", `[
  {"type": "single_choice", "question": " Pick B ", "options": ["A", "B", "C"], "answer": 1},
  {"type": "multi_choice", "question": "Pick evens", "options": ["0", "1", "2", "3"], "answer": [2, 0]},
  {
    "type": "cross_table",
    "question": "Match",
    "row_header": "Service",
    "row_names": ["r1", "r2"],
    "col_names": [{"group": "Capabilities", "items": ["c1", "c2"]}],
    "answer": [[1, 0], [0, 1]]
  },
  {"type": "drag_image", "question": "Drag it"}
]`)
	catalog, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if catalog.Len() != 4 {
		t.Fatalf("expected 4 questions, got %d", catalog.Len())
	}

	single, ok := catalog.At(0).Body.(SingleChoice)
	if !ok {
		t.Fatalf("expected single choice, got %T", catalog.At(0).Body)
	}
	if single.CorrectIndex != 1 || catalog.At(0).Prompt != "Pick B" {
		t.Fatalf("unexpected single choice: %+v prompt=%q", single, catalog.At(0).Prompt)
	}

	multi := catalog.At(1).Body.(MultiChoice)
	if len(multi.CorrectIndices) != 2 || multi.CorrectIndices[0] != 0 || multi.CorrectIndices[1] != 2 {
		t.Fatalf("expected sorted correct indices, got %v", multi.CorrectIndices)
	}

	table := catalog.At(2).Body.(CrossTable)
	if table.ColumnGroup != "Capabilities" || table.RowHeader != "Service" {
		t.Fatalf("unexpected headers: %+v", table)
	}
	if !table.Answer[0][0] || table.Answer[0][1] || !table.Answer[1][1] {
		t.Fatalf("unexpected answer matrix: %v", table.Answer)
	}

	if catalog.At(3).Kind() != KindDragImage {
		t.Fatalf("expected drag image, got %s", catalog.At(3).Kind())
	}
}

// TestLoadYAMLDocument verifies versioned YAML documents with boolean matrices load.
func TestLoadYAMLDocument(t *testing.T) {
	path := writeFile(t, "questions.yml", `version: 1
questions:
  - id: grid
    type: cross_table
    question: Which?
    row_names: [a, b]
    col_names:
      - group: G
        items: [x, y, z]
    answer:
      - [true, false, true]
      - [false, false, false]
`)
	catalog, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	q := catalog.At(0)
	if q.ID != "grid" {
		t.Fatalf("expected id grid, got %q", q.ID)
	}
	table := q.Body.(CrossTable)
	if table.Rows() != 2 || table.Cols() != 3 {
		t.Fatalf("unexpected dimensions %dx%d", table.Rows(), table.Cols())
	}
}

// TestLoadRejectsUnknownFields verifies strict decoding like the config loader.
func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "questions.yml", `- type: single_choice
  question: Q
  options: [a]
  answer: 0
  bogus: true
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

// TestBuildReportsMalformedQuestions verifies every invalid field is reported with its index.
func TestBuildReportsMalformedQuestions(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		index int
		field string
	}{
		{
			name:  "single choice index out of range",
			doc:   `[{"type": "single_choice", "question": "Q", "options": ["a", "b"], "answer": 2}]`,
			index: 0,
			field: "answer",
		},
		{
			name:  "single choice missing answer",
			doc:   `[{"type": "single_choice", "question": "Q", "options": ["a"]}]`,
			index: 0,
			field: "answer",
		},
		{
			name: "multi choice index out of range",
			doc: `[{"type": "drag_image", "question": "ok"},
			       {"type": "multi_choice", "question": "Q", "options": ["a", "b"], "answer": [0, 5]}]`,
			index: 1,
			field: "answer[1]",
		},
		{
			name:  "multi choice duplicate index",
			doc:   `[{"type": "multi_choice", "question": "Q", "options": ["a", "b"], "answer": [1, 1]}]`,
			index: 0,
			field: "answer[1]",
		},
		{
			name: "cross table row count mismatch",
			doc: `[{"type": "cross_table", "question": "Q", "row_names": ["r1", "r2"],
			        "col_names": [{"items": ["c1"]}], "answer": [[true]]}]`,
			index: 0,
			field: "answer",
		},
		{
			name: "cross table column count mismatch",
			doc: `[{"type": "cross_table", "question": "Q", "row_names": ["r1"],
			        "col_names": [{"items": ["c1", "c2"]}], "answer": [[true]]}]`,
			index: 0,
			field: "answer[0]",
		},
		{
			name: "cross table non boolean cell",
			doc: `[{"type": "cross_table", "question": "Q", "row_names": ["r1"],
			        "col_names": [{"items": ["c1"]}], "answer": [[2]]}]`,
			index: 0,
			field: "answer",
		},
		{
			name:  "cross table missing columns",
			doc:   `[{"type": "cross_table", "question": "Q", "row_names": ["r1"], "answer": [[true]]}]`,
			index: 0,
			field: "col_names",
		},
		{
			name:  "unknown type",
			doc:   `[{"type": "essay", "question": "Q"}]`,
			index: 0,
			field: "type",
		},
		{
			name:  "missing prompt",
			doc:   `[{"type": "drag_image", "question": "  "}]`,
			index: 0,
			field: "question",
		},
		{
			name:  "duplicate id",
			doc:   `[{"id": "a", "type": "drag_image", "question": "Q"}, {"id": "a", "type": "drag_image", "question": "Q"}]`,
			index: 1,
			field: "id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), FormatJSON)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var malformed *MalformedQuestionError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected malformed question error, got %v", err)
			}
			found := false
			for _, issue := range validationErr.Issues {
				if issue.Index == tc.index && issue.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected issue at questions[%d].%s, got %v", tc.index, tc.field, err)
			}
		})
	}
}

// TestBuildRejectsEmptyDocument verifies document-level issues use index -1.
func TestBuildRejectsEmptyDocument(t *testing.T) {
	_, err := Parse([]byte(`{"version": 1, "questions": []}`), FormatJSON)
	var malformed *MalformedQuestionError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected malformed question error, got %v", err)
	}
	if malformed.Index != -1 || malformed.Field != "questions" {
		t.Fatalf("unexpected issue: %+v", malformed)
	}
}

// TestCatalogIsImmutable verifies callers cannot mutate loaded questions.
func TestCatalogIsImmutable(t *testing.T) {
	catalog, err := Parse([]byte(`[{"type": "cross_table", "question": "Q", "row_names": ["r"],
		"col_names": [{"items": ["c"]}], "answer": [[true]]}]`), FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	table := catalog.At(0).Body.(CrossTable)
	table.Answer[0][0] = false
	table.RowNames[0] = "changed"
	again := catalog.At(0).Body.(CrossTable)
	if !again.Answer[0][0] || again.RowNames[0] != "r" {
		t.Fatalf("catalog was mutated through a returned question")
	}
}

// writeFile writes content into a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
