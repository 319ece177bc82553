package picker

import (
	tea "github.com/charmbracelet/bubbletea"
)

// outcome is how the input loop ended.
type outcome int

const (
	outcomePending outcome = iota
	outcomeCommit
	outcomeCancel
	outcomeBack
)

// model is the bubbletea model driving one session. It dispatches key
// events to the session state and quits once the session settles.
type model[T any] struct {
	st        *state[T]
	view      renderer[T]
	allowBack bool
	width     int
	outcome   outcome
}

func newModel[T any](st *state[T], cfg Config[T]) model[T] {
	return model[T]{
		st:        st,
		view:      newRenderer(cfg),
		allowBack: cfg.AllowBack,
	}
}

// Init implements tea.Model.
func (m model[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.outcome != outcomePending {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m = m.handle(ParseKey(msg))
		m.st.assert()
		if m.outcome != outcomePending {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handle applies one semantic event.
func (m model[T]) handle(ev Event) model[T] {
	switch ev.Kind {
	case EventCancel:
		m.outcome = outcomeCancel
	case EventEscape:
		if m.allowBack {
			m.outcome = outcomeBack
			break
		}
		m.st.clearQuery()
	case EventEnter:
		m.outcome = outcomeCommit
	case EventUp:
		m.st.moveCursor(-1)
	case EventDown:
		m.st.moveCursor(1)
	case EventLeft:
		m.st.moveAction(-1)
	case EventRight:
		m.st.moveAction(1)
	case EventBackspace:
		m.st.backspace()
	case EventCharacter:
		m.st.appendText(ev.Text)
	}
	return m
}

// View implements tea.Model. Once settled the frame is cleared so the
// picker leaves nothing behind on the terminal.
func (m model[T]) View() string {
	if m.outcome != outcomePending {
		return ""
	}
	return m.view.frame(m.st, m.width)
}
