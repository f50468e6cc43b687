package live

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quizrun/internal/session"
)

// Model renders a quiz session using Bubble Tea.
type Model struct {
	ctrl    *session.Controller
	state   State
	draft   *draftBox
	matrix  table.Model
	keys    KeyMap
	help    help.Model
	policy  session.ReanswerPolicy
	logger  *zap.Logger
	noColor bool
}

// Options configures the live UI model.
type Options struct {
	NoColor bool
	// Reanswer must match the policy the controller was built with.
	Reanswer session.ReanswerPolicy
	Logger   *zap.Logger
}

// NewModel constructs a live UI model for a session and registers it as the
// session's flusher.
func NewModel(ctrl *session.Controller, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	draft := &draftBox{}
	ctrl.SetFlusher(draft)
	m := Model{
		ctrl:    ctrl,
		state:   NewState(ctrl.Snapshot(), opts.Reanswer),
		draft:   draft,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		policy:  opts.Reanswer,
		logger:  logger,
		noColor: opts.NoColor,
	}
	return m.refresh()
}

// State returns the current screen state.
func (m Model) State() State { return m.state }

// Init has no startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update consumes key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		return m.navigate(-1), nil
	case key.Matches(msg, m.keys.Next):
		return m.navigate(1), nil
	case key.Matches(msg, m.keys.Commit):
		return m.commit(), nil
	case key.Matches(msg, m.keys.Finish):
		return m.finish(), nil
	case key.Matches(msg, m.keys.Up):
		return m.apply(Action{Kind: ActionCursorUp}), nil
	case key.Matches(msg, m.keys.Down):
		return m.apply(Action{Kind: ActionCursorDown}), nil
	case key.Matches(msg, m.keys.ColNext):
		return m.apply(Action{Kind: ActionColumnNext}), nil
	case key.Matches(msg, m.keys.ColPrev):
		return m.apply(Action{Kind: ActionColumnPrev}), nil
	case key.Matches(msg, m.keys.Toggle):
		return m.apply(Action{Kind: ActionToggle}), nil
	}
	if digit, ok := digitKey(msg); ok && !m.state.Locked {
		return m.apply(Action{Kind: ActionPick, Index: digit - 1}), nil
	}
	return m, nil
}

// apply runs a local edit and stages the draft for the next flush.
func (m Model) apply(action Action) Model {
	m.state = Reduce(m.state, action)
	m.draft.state = m.state.Draft
	return m.refresh()
}

func (m Model) navigate(delta int) Model {
	snap, err := m.ctrl.Navigate(delta)
	return m.afterTransition(snap, err, "")
}

func (m Model) commit() Model {
	snap, result, err := m.ctrl.Commit()
	message := ""
	if err == nil {
		message = "Committed: " + result.Summary()
	}
	return m.afterTransition(snap, err, message)
}

func (m Model) finish() Model {
	snap, report, err := m.ctrl.Finish()
	message := ""
	if err == nil {
		message = "Graded " + fmtInt(len(report.Results)) + " questions"
	}
	return m.afterTransition(snap, err, message)
}

// afterTransition adopts the controller's snapshot. The draft was flushed by the
// controller, so it is dropped here.
func (m Model) afterTransition(snap session.Snapshot, err error, message string) Model {
	if err != nil {
		m.logger.Debug("transition rejected", zap.Error(err))
		m.state.Message = err.Error()
		if errors.Is(err, session.ErrAlreadyRevealed) {
			m.state.Message = "already revealed; move to another question first"
		}
		return m.refresh()
	}
	m.draft.state = nil
	m.state = withSnapshot(m.state, snap, m.policy)
	m.state.Message = message
	return m.refresh()
}

// refresh rebuilds derived widgets from state.
func (m Model) refresh() Model {
	m.keys.syncEnabled(m.state)
	if m.state.Snapshot.Table != nil {
		m.matrix = newMatrixTable(m.state, m.noColor)
	}
	return m
}

// View renders the quiz screen.
func (m Model) View() string {
	body := renderOptions(m.state, m.noColor)
	if m.state.Snapshot.Table != nil {
		body = joinBlocks(renderGroupBanner(m.state, m.noColor), m.matrix.View())
	}
	return joinBlocks(
		renderHeader(m.state, m.noColor),
		renderPrompt(m.state, m.noColor),
		body,
		renderResult(m.state, m.noColor),
		renderFooter(m.state, m.noColor),
		m.help.View(m.keys),
	) + "\n"
}

func digitKey(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}
