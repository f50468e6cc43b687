package answer

import (
	"fmt"

	"quizrun/internal/question"
)

// Store keeps one answer per question. Values are copied on the way in and out so
// no caller holds a handle into the store. Not safe for concurrent use.
type Store struct {
	questions []question.Question
	states    []State
}

// NewStore creates a store with the initial answer for every question.
func NewStore(questions []question.Question) *Store {
	store := &Store{
		questions: questions,
		states:    make([]State, len(questions)),
	}
	for i, q := range questions {
		store.states[i] = Initial(q)
	}
	return store
}

// Len returns the number of questions tracked.
func (s *Store) Len() int { return len(s.states) }

// Get returns a copy of the answer for question index.
func (s *Store) Get(index int) (State, error) {
	if index < 0 || index >= len(s.states) {
		return nil, fmt.Errorf("get answer %d: %w", index, ErrIndexOutOfRange)
	}
	return Clone(s.states[index]), nil
}

// All returns copies of every answer in question order.
func (s *Store) All() []State {
	out := make([]State, len(s.states))
	for i, state := range s.states {
		out[i] = Clone(state)
	}
	return out
}

// Update replaces the whole answer for question index. The previous answer is kept
// when state does not fit the question.
func (s *Store) Update(index int, state State) error {
	if index < 0 || index >= len(s.states) {
		return fmt.Errorf("update answer %d: %w", index, ErrIndexOutOfRange)
	}
	q := s.questions[index]
	if err := Check(q, state); err != nil {
		return &ShapeError{Index: index, Kind: q.Kind(), Message: err.Error()}
	}
	s.states[index] = Clone(state)
	return nil
}
