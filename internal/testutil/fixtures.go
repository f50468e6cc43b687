// Package testutil holds shared fixtures for quiz tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"quizrun/internal/question"
)

// SampleQuestionsJSON is a small question file in the list form, one question per kind.
const SampleQuestionsJSON = `[
  {"id": "capital", "type": "single_choice", "question": "Capital of France?", "options": ["Berlin", "Paris", "Rome"], "answer": 1},
  {"id": "primes", "type": "multi_choice", "question": "Which are prime?", "options": ["2", "4", "5", "9"], "answer": [0, 2]},
  {"id": "sounds", "type": "cross_table", "question": "Match animals to sounds",
   "row_header": "Animal", "row_names": ["cat", "dog"],
   "col_names": [{"group": "Sound", "items": ["meow", "woof"]}],
   "answer": [[1, 0], [0, 1]]},
  {"id": "map", "type": "drag_image", "question": "Drag the labels onto the map"}
]
`

// SampleQuestions returns the questions of SampleQuestionsJSON in document order.
func SampleQuestions() []question.Question {
	return []question.Question{
		{ID: "capital", Prompt: "Capital of France?", Body: question.SingleChoice{Options: []string{"Berlin", "Paris", "Rome"}, CorrectIndex: 1}},
		{ID: "primes", Prompt: "Which are prime?", Body: question.MultiChoice{Options: []string{"2", "4", "5", "9"}, CorrectIndices: []int{0, 2}}},
		{ID: "sounds", Prompt: "Match animals to sounds", Body: question.CrossTable{
			RowHeader:   "Animal",
			RowNames:    []string{"cat", "dog"},
			ColumnGroup: "Sound",
			ColumnNames: []string{"meow", "woof"},
			Answer:      [][]bool{{true, false}, {false, true}},
		}},
		{ID: "map", Prompt: "Drag the labels onto the map", Body: question.DragImage{}},
	}
}

// SampleCatalog wraps SampleQuestions.
func SampleCatalog() question.Catalog {
	return question.NewCatalog(SampleQuestions())
}

// WriteFile writes content under dir and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
