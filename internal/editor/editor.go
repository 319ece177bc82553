// Package editor opens files in the user's editor.
package editor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// fallback is used when neither the configuration nor the environment names
// an editor.
const fallback = "vi"

// Runner starts the editor process attached to the terminal.
type Runner func(ctx context.Context, name string, args ...string) error

// Editor launches the configured editor.
type Editor struct {
	command string
	getenv  func(string) string
	run     Runner
}

// New returns an Editor. command is the configured editor and may include
// arguments, e.g. "code --wait"; when empty $VISUAL, then $EDITOR, then vi
// are used.
func New(command string) *Editor {
	return &Editor{command: command, getenv: os.Getenv, run: runAttached}
}

// SetRunner allows setting a custom runner (for testing).
func (e *Editor) SetRunner(r Runner) {
	e.run = r
}

// Command returns the resolved editor command line.
func (e *Editor) Command() []string {
	for _, candidate := range []string{e.command, e.getenv("VISUAL"), e.getenv("EDITOR")} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}
	return []string{fallback}
}

// Open edits path and waits for the editor to exit.
func (e *Editor) Open(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("no file to edit")
	}
	argv := e.Command()
	return e.run(ctx, argv[0], append(argv[1:], path)...)
}

func runAttached(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
