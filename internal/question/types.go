package question

// Kind identifies the variant of a question.
type Kind string

const (
	KindSingleChoice Kind = "single_choice"
	KindMultiChoice  Kind = "multi_choice"
	KindCrossTable   Kind = "cross_table"
	KindDragImage    Kind = "drag_image"
)

// Question is one loaded question. Body holds the type-specific payload.
type Question struct {
	ID     string
	Prompt string
	Body   Body
}

// Kind returns the kind of the question body.
func (q Question) Kind() Kind {
	if q.Body == nil {
		return ""
	}
	return q.Body.Kind()
}

// Body is implemented by SingleChoice, MultiChoice, CrossTable and DragImage only.
type Body interface {
	Kind() Kind
	isBody()
}

// SingleChoice has exactly one correct option.
type SingleChoice struct {
	Options      []string
	CorrectIndex int
}

// MultiChoice has a set of correct options. CorrectIndices is sorted and free of duplicates.
type MultiChoice struct {
	Options        []string
	CorrectIndices []int
}

// CrossTable is a matrix question: the user checks cells of a rows x columns grid.
type CrossTable struct {
	RowHeader   string
	RowNames    []string
	ColumnGroup string
	ColumnNames []string
	// Answer is indexed [row][column] in canonical order.
	Answer [][]bool
}

// DragImage is a placeholder for the image drag question type. It has no answer shape.
type DragImage struct{}

func (SingleChoice) Kind() Kind { return KindSingleChoice }
func (MultiChoice) Kind() Kind  { return KindMultiChoice }
func (CrossTable) Kind() Kind   { return KindCrossTable }
func (DragImage) Kind() Kind    { return KindDragImage }

func (SingleChoice) isBody() {}
func (MultiChoice) isBody()  {}
func (CrossTable) isBody()   {}
func (DragImage) isBody()    {}

// Rows returns the number of matrix rows.
func (c CrossTable) Rows() int { return len(c.RowNames) }

// Cols returns the number of matrix columns.
func (c CrossTable) Cols() int { return len(c.ColumnNames) }

// IsCorrect reports whether index is in the correct set.
func (m MultiChoice) IsCorrect(index int) bool {
	for _, correct := range m.CorrectIndices {
		if correct == index {
			return true
		}
	}
	return false
}

// Catalog is an immutable, validated question set in document order.
type Catalog struct {
	questions []Question
}

// NewCatalog wraps already validated questions.
func NewCatalog(questions []Question) Catalog {
	return Catalog{questions: cloneQuestions(questions)}
}

// Len returns the number of questions.
func (c Catalog) Len() int { return len(c.questions) }

// At returns a copy of the question at index.
func (c Catalog) At(index int) Question {
	return cloneQuestion(c.questions[index])
}

// Questions returns a copy of all questions.
func (c Catalog) Questions() []Question {
	return cloneQuestions(c.questions)
}

// CountByKind returns how many questions of each kind the catalog holds.
func (c Catalog) CountByKind() map[Kind]int {
	counts := map[Kind]int{}
	for _, q := range c.questions {
		counts[q.Kind()]++
	}
	return counts
}

func cloneQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

func cloneQuestion(q Question) Question {
	switch body := q.Body.(type) {
	case SingleChoice:
		body.Options = append([]string(nil), body.Options...)
		q.Body = body
	case MultiChoice:
		body.Options = append([]string(nil), body.Options...)
		body.CorrectIndices = append([]int(nil), body.CorrectIndices...)
		q.Body = body
	case CrossTable:
		body.RowNames = append([]string(nil), body.RowNames...)
		body.ColumnNames = append([]string(nil), body.ColumnNames...)
		body.Answer = CloneMatrix(body.Answer)
		q.Body = body
	}
	return q
}

// CloneMatrix deep-copies a boolean matrix.
func CloneMatrix(m [][]bool) [][]bool {
	if m == nil {
		return nil
	}
	out := make([][]bool, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}
	return out
}
