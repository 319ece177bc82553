package commands

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd866")).Bold(true)
	confirmHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#727072"))
)

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes: key.NewBinding(key.WithKeys("y", "Y")),
	No:  key.NewBinding(key.WithKeys("n", "N", "enter", "esc", "ctrl+c", "q")),
}

// confirmModel is a one-line yes/no prompt. Anything but y answers no once
// the user presses a key bound to No.
type confirmModel struct {
	prompt string
	answer bool
	done   bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, confirmKeys.Yes):
		m.answer, m.done = true, true
		return m, tea.Quit
	case key.Matches(k, confirmKeys.No):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return confirmPromptStyle.Render(m.prompt) + " " + confirmHintStyle.Render("[y/N]") + " "
}

// TeaConfirmer asks on the terminal.
type TeaConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer.
func (c *TeaConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	p := tea.NewProgram(confirmModel{prompt: prompt},
		tea.WithContext(ctx),
		tea.WithInput(c.In),
		tea.WithOutput(c.Out),
	)
	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, err
	}
	m, ok := final.(confirmModel)
	return ok && m.answer, nil
}
