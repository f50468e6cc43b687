package question

import (
	"fmt"
	"slices"
	"strings"
)

// MalformedQuestionError names the question and field that failed validation.
// Index is -1 for problems with the document as a whole.
type MalformedQuestionError struct {
	Index   int
	Field   string
	Message string
}

// Error returns a readable message with a questions[i].field path.
func (err *MalformedQuestionError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return fmt.Sprintf("questions[%d].%s: %s", err.Index, err.Field, err.Message)
}

// ValidationError reports every malformed record found in one load attempt.
type ValidationError struct {
	Issues []*MalformedQuestionError
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, issue.Error())
	}
	return fmt.Sprintf("question set validation failed: %s", strings.Join(parts, "; "))
}

// Unwrap exposes each issue to errors.As.
func (err *ValidationError) Unwrap() []error {
	out := make([]error, 0, len(err.Issues))
	for _, issue := range err.Issues {
		out = append(out, issue)
	}
	return out
}

type issueCollector struct {
	issues []*MalformedQuestionError
}

func (collector *issueCollector) add(index int, field, message string) {
	collector.issues = append(collector.issues, &MalformedQuestionError{Index: index, Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Build validates a decoded document and converts it into a Catalog.
// Any invalid record fails the whole document.
func Build(doc Document) (Catalog, error) {
	collector := &issueCollector{}
	if doc.Version == 0 {
		collector.add(-1, "version", "is required")
	} else if doc.Version != 1 {
		collector.add(-1, "version", fmt.Sprintf("unsupported version %d", doc.Version))
	}
	if len(doc.Questions) == 0 {
		collector.add(-1, "questions", "must include at least one entry")
	}

	questions := make([]Question, 0, len(doc.Questions))
	seenIDs := map[string]int{}
	for i, record := range doc.Questions {
		q := Question{
			ID:     strings.TrimSpace(record.ID),
			Prompt: strings.TrimSpace(record.Question),
		}
		if q.ID != "" {
			if first, exists := seenIDs[q.ID]; exists {
				collector.add(i, "id", fmt.Sprintf("duplicate id %q (first used by questions[%d])", q.ID, first))
			} else {
				seenIDs[q.ID] = i
			}
		}
		if q.Prompt == "" {
			collector.add(i, "question", "is required")
		}

		switch Kind(strings.ToLower(strings.TrimSpace(record.Type))) {
		case KindSingleChoice:
			q.Body = buildSingleChoice(i, record, collector)
		case KindMultiChoice:
			q.Body = buildMultiChoice(i, record, collector)
		case KindCrossTable:
			q.Body = buildCrossTable(i, record, collector)
		case KindDragImage:
			q.Body = DragImage{}
		case "":
			collector.add(i, "type", "is required")
		default:
			collector.add(i, "type", fmt.Sprintf("unknown type %q (expected single_choice|multi_choice|cross_table|drag_image)", record.Type))
		}
		questions = append(questions, q)
	}

	if err := collector.result(); err != nil {
		return Catalog{}, err
	}
	return Catalog{questions: questions}, nil
}

func buildSingleChoice(index int, record Record, collector *issueCollector) Body {
	options := normalizeOptions(index, "options", record.Options, collector)
	if !record.Answer.IsSet() {
		collector.add(index, "answer", "is required")
		return nil
	}
	correct, ok := record.Answer.index()
	if !ok {
		collector.add(index, "answer", "must be an option index")
		return nil
	}
	if len(options) > 0 && (correct < 0 || correct >= len(options)) {
		collector.add(index, "answer", fmt.Sprintf("index %d out of range [0,%d)", correct, len(options)))
		return nil
	}
	return SingleChoice{Options: options, CorrectIndex: correct}
}

func buildMultiChoice(index int, record Record, collector *issueCollector) Body {
	options := normalizeOptions(index, "options", record.Options, collector)
	if !record.Answer.IsSet() {
		collector.add(index, "answer", "is required")
		return nil
	}
	correct, ok := record.Answer.indices()
	if !ok {
		collector.add(index, "answer", "must be a list of option indices")
		return nil
	}
	seen := map[int]struct{}{}
	for position, value := range correct {
		field := fmt.Sprintf("answer[%d]", position)
		if value < 0 || (len(options) > 0 && value >= len(options)) {
			collector.add(index, field, fmt.Sprintf("index %d out of range [0,%d)", value, len(options)))
			continue
		}
		if _, dup := seen[value]; dup {
			collector.add(index, field, fmt.Sprintf("duplicate index %d", value))
			continue
		}
		seen[value] = struct{}{}
	}
	sorted := make([]int, 0, len(seen))
	for value := range seen {
		sorted = append(sorted, value)
	}
	slices.Sort(sorted)
	return MultiChoice{Options: options, CorrectIndices: sorted}
}

func buildCrossTable(index int, record Record, collector *issueCollector) Body {
	rowNames := normalizeOptions(index, "row_names", record.RowNames, collector)
	var group ColumnGroup
	var colNames []string
	switch len(record.ColNames) {
	case 0:
		collector.add(index, "col_names", "must include one column group")
	case 1:
		group = record.ColNames[0]
		colNames = normalizeOptions(index, "col_names[0].items", group.Items, collector)
	default:
		collector.add(index, "col_names", fmt.Sprintf("must include exactly one column group, got %d", len(record.ColNames)))
	}
	if !record.Answer.IsSet() {
		collector.add(index, "answer", "is required")
		return nil
	}
	if rowNames == nil || colNames == nil {
		return nil
	}
	matrix, ok := record.Answer.matrix()
	if !ok {
		collector.add(index, "answer", "must be a matrix of booleans or 0/1")
		return nil
	}
	if len(matrix) != len(rowNames) {
		collector.add(index, "answer", fmt.Sprintf("has %d rows, expected %d (row_names)", len(matrix), len(rowNames)))
		return nil
	}
	for r, row := range matrix {
		if len(row) != len(colNames) {
			collector.add(index, fmt.Sprintf("answer[%d]", r), fmt.Sprintf("has %d columns, expected %d (col_names)", len(row), len(colNames)))
		}
	}
	return CrossTable{
		RowHeader:   strings.TrimSpace(record.RowHeader),
		RowNames:    rowNames,
		ColumnGroup: strings.TrimSpace(group.Group),
		ColumnNames: colNames,
		Answer:      matrix,
	}
}

func normalizeOptions(index int, field string, values []string, collector *issueCollector) []string {
	if len(values) == 0 {
		collector.add(index, field, "must include at least one entry")
		return nil
	}
	normalized := make([]string, 0, len(values))
	for i, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			collector.add(index, fmt.Sprintf("%s[%d]", field, i), "is required")
		}
		normalized = append(normalized, value)
	}
	return normalized
}
