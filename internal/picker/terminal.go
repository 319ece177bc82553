package picker

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNotInteractive is returned by OpenTerminal when input is not a terminal.
var ErrNotInteractive = errors.New("input is not an interactive terminal")

// Terminal is the exclusive keyboard and screen resource held by a session.
// Run drives the model until it quits; Release returns the terminal to the
// state it was in when acquired and must be safe to call more than once.
type Terminal interface {
	Run(ctx context.Context, m tea.Model) (tea.Model, error)
	Release() error
}

// ttyTerminal is a Terminal backed by a real TTY.
type ttyTerminal struct {
	in    *os.File
	out   io.Writer
	fd    int
	saved *term.State
	once  sync.Once
}

// OpenTerminal acquires the terminal behind in, recording its mode so that
// Release can restore it whatever happens during the session.
func OpenTerminal(in io.Reader, out io.Writer) (Terminal, error) {
	f, ok := in.(*os.File)
	if !ok {
		return nil, ErrNotInteractive
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotInteractive
	}
	saved, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}
	return &ttyTerminal{in: f, out: out, fd: fd, saved: saved}, nil
}

// Run implements Terminal.
func (t *ttyTerminal) Run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	return p.Run()
}

// Release implements Terminal.
func (t *ttyTerminal) Release() error {
	var err error
	t.once.Do(func() {
		err = term.Restore(t.fd, t.saved)
	})
	return err
}

// interactive reports whether the environment allows an input loop at all.
func interactive(getenv func(string) string) bool {
	if getenv("CI") != "" {
		return false
	}
	if getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
