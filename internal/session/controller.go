// Package session drives one quiz run: question order, reveal mode and the
// save, navigate, commit and finish transitions.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizrun/internal/answer"
	"quizrun/internal/grade"
	"quizrun/internal/permute"
	"quizrun/internal/question"
)

var (
	// ErrAlreadyRevealed is returned when committing a question that is already revealed.
	ErrAlreadyRevealed = errors.New("question already revealed")
	// ErrAnswerLocked is returned for answer changes to a revealed question under ReanswerLock.
	ErrAnswerLocked = errors.New("answer locked after reveal")
	// ErrEmptyCatalog is returned when a session is started without questions.
	ErrEmptyCatalog = errors.New("question set is empty")
)

// Flusher hands over edits an adapter has not reported yet. ok=false means nothing is pending.
type Flusher interface {
	Flush() (state answer.State, ok bool)
}

// Controller owns the session state. Calls must come from a single goroutine.
type Controller struct {
	id        string
	order     []int
	questions []question.Question
	store     *answer.Store
	current   int
	mode      Mode
	result    *grade.Result
	report    *grade.Report

	// table is the display rendering of the current cross table question.
	table   *TableView
	layouts map[int]permute.Layout

	opts    Options
	rng     *rand.Rand
	logger  *zap.Logger
	flusher Flusher
}

// New starts a session on a shuffled copy of the catalog, answering question 0.
func New(catalog question.Catalog, opts Options) (*Controller, error) {
	if catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}

	order := permute.Identity(catalog.Len())
	if !opts.KeepOrder {
		order = permute.Generate(opts.Rand, catalog.Len())
	}
	questions := make([]question.Question, len(order))
	for i, source := range order {
		questions[i] = catalog.At(source)
	}

	c := &Controller{
		id:        opts.ID,
		order:     order,
		questions: questions,
		store:     answer.NewStore(questions),
		layouts:   map[int]permute.Layout{},
		opts:      opts,
		rng:       opts.Rand,
		logger:    opts.Logger.With(zap.String("session_id", opts.ID)),
	}
	if err := c.render(); err != nil {
		return nil, err
	}
	c.logger.Info("session started",
		zap.Int("questions", len(questions)),
		zap.Ints("order", order),
		zap.String("matrix_shuffle", string(opts.MatrixShuffle)),
		zap.String("reanswer", string(opts.Reanswer)))
	return c, nil
}

// ID returns the session id.
func (c *Controller) ID() string { return c.id }

// SetFlusher registers the adapter that may hold unsaved edits for the current question.
func (c *Controller) SetFlusher(f Flusher) { c.flusher = f }

// Questions returns the questions in session order.
func (c *Controller) Questions() []question.Question {
	return question.NewCatalog(c.questions).Questions()
}

// SourceIndex returns the document position of the question shown at index.
func (c *Controller) SourceIndex(index int) int { return c.order[index] }

// Answers returns the current answers in session order.
func (c *Controller) Answers() []answer.State { return c.store.All() }

// Snapshot returns the current view without changing anything.
func (c *Controller) Snapshot() Snapshot {
	state, _ := c.store.Get(c.current)
	snap := Snapshot{
		SessionID: c.id,
		Index:     c.current,
		Count:     len(c.questions),
		Mode:      c.mode,
		Question:  question.NewCatalog(c.questions[c.current : c.current+1]).At(0),
		Answer:    state,
	}
	if c.table != nil {
		table := *c.table
		table.Layout = c.table.Layout.Clone()
		table.RowLabels = append([]string(nil), c.table.RowLabels...)
		table.ColumnLabels = append([]string(nil), c.table.ColumnLabels...)
		table.Checked = question.CloneMatrix(c.table.Checked)
		table.Key = question.CloneMatrix(c.table.Key)
		snap.Table = &table
	}
	if c.result != nil {
		result := *c.result
		snap.Result = &result
	}
	if c.report != nil {
		report := *c.report
		report.Results = append([]grade.Result(nil), c.report.Results...)
		snap.Report = &report
	}
	return snap
}

// ReportAnswerChange replaces the answer for question index.
func (c *Controller) ReportAnswerChange(index int, state answer.State) (Snapshot, error) {
	if index == c.current && c.mode == Revealed && c.opts.Reanswer == ReanswerLock {
		return c.Snapshot(), fmt.Errorf("change answer %d: %w", index+1, ErrAnswerLocked)
	}
	if err := c.store.Update(index, state); err != nil {
		return c.Snapshot(), err
	}
	if index == c.current {
		if err := c.refreshTable(); err != nil {
			return c.Snapshot(), err
		}
	}
	c.logger.Debug("answer changed", zap.Int("index", index), zap.String("kind", string(state.Kind())))
	return c.Snapshot(), nil
}

// Navigate saves pending edits, moves by delta (clamped to the question range)
// and leaves reveal mode.
func (c *Controller) Navigate(delta int) (Snapshot, error) {
	if err := c.flush(); err != nil {
		return c.Snapshot(), err
	}
	next := c.current + delta
	if next < 0 {
		next = 0
	}
	if next > len(c.questions)-1 {
		next = len(c.questions) - 1
	}
	from := c.current
	c.current = next
	c.mode = Answering
	c.result = nil
	c.report = nil
	if err := c.render(); err != nil {
		return c.Snapshot(), err
	}
	c.logger.Debug("navigate", zap.Int("from", from), zap.Int("to", next))
	return c.Snapshot(), nil
}

// Commit grades the current question and reveals it. A revealed question cannot
// be committed again until the user navigates away and back.
func (c *Controller) Commit() (Snapshot, grade.Result, error) {
	if c.mode == Revealed {
		return c.Snapshot(), grade.Result{}, fmt.Errorf("commit question %d: %w", c.current+1, ErrAlreadyRevealed)
	}
	if err := c.flush(); err != nil {
		return c.Snapshot(), grade.Result{}, err
	}
	state, err := c.store.Get(c.current)
	if err != nil {
		return c.Snapshot(), grade.Result{}, err
	}
	result, err := grade.Question(c.questions[c.current], state)
	if err != nil {
		return c.Snapshot(), grade.Result{}, fmt.Errorf("commit question %d: %w", c.current+1, err)
	}
	result.Index = c.current
	c.result = &result
	c.mode = Revealed
	if err := c.render(); err != nil {
		return c.Snapshot(), result, err
	}
	c.logger.Info("question committed",
		zap.Int("index", c.current),
		zap.String("kind", string(result.Kind)),
		zap.Bool("graded", result.Graded),
		zap.Int("correct", result.Correct),
		zap.Int("total", result.Total),
		zap.Int("missed", result.Missed),
		zap.Int("over", result.Over))
	return c.Snapshot(), result, nil
}

// Finish grades every question, committed or not, and reveals the current one.
// The session stays usable afterwards.
func (c *Controller) Finish() (Snapshot, grade.Report, error) {
	if err := c.flush(); err != nil {
		return c.Snapshot(), grade.Report{}, err
	}
	report, err := grade.Session(c.questions, c.store.All())
	if err != nil {
		return c.Snapshot(), grade.Report{}, err
	}
	c.report = &report
	c.mode = Revealed
	if err := c.render(); err != nil {
		return c.Snapshot(), report, err
	}
	c.logger.Info("session finished",
		zap.Int("correct", report.Correct),
		zap.Int("total", report.Total),
		zap.Int("ungraded", report.Ungraded))
	return c.Snapshot(), report, nil
}

func (c *Controller) flush() error {
	if c.flusher == nil {
		return nil
	}
	state, ok := c.flusher.Flush()
	if !ok {
		return nil
	}
	_, err := c.ReportAnswerChange(c.current, state)
	if errors.Is(err, ErrAnswerLocked) {
		c.logger.Debug("dropped edits to locked question", zap.Int("index", c.current))
		return nil
	}
	return err
}

// render rebuilds the display data of the current question, drawing a new matrix
// layout when the shuffle policy asks for it.
func (c *Controller) render() error {
	body, ok := c.questions[c.current].Body.(question.CrossTable)
	if !ok {
		c.table = nil
		return nil
	}
	var layout permute.Layout
	switch c.opts.MatrixShuffle {
	case ShuffleNone:
		layout = permute.IdentityLayout(body.Rows(), body.Cols())
	case ShufflePerSession:
		cached, found := c.layouts[c.current]
		if !found {
			cached = permute.NewLayout(c.rng, body.Rows(), body.Cols())
			c.layouts[c.current] = cached
		}
		layout = cached
	default:
		layout = permute.NewLayout(c.rng, body.Rows(), body.Cols())
	}
	return c.buildTable(body, layout)
}

// refreshTable redraws the current table with its existing layout.
func (c *Controller) refreshTable() error {
	if c.table == nil {
		return nil
	}
	body := c.questions[c.current].Body.(question.CrossTable)
	return c.buildTable(body, c.table.Layout)
}

func (c *Controller) buildTable(body question.CrossTable, layout permute.Layout) error {
	state, err := c.store.Get(c.current)
	if err != nil {
		return err
	}
	table, err := newTableView(body, state.(answer.CrossTable), layout)
	if err != nil {
		return fmt.Errorf("render question %d: %w", c.current+1, err)
	}
	c.table = table
	return nil
}
