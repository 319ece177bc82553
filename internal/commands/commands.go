// Package commands implements the gitpick pickers: one per kind of git
// object, each offering the actions that make sense for it, plus the menu
// that ties them together.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/gerunddev/gitpick/internal/config"
	"github.com/gerunddev/gitpick/internal/git"
	"github.com/gerunddev/gitpick/internal/history"
	"github.com/gerunddev/gitpick/internal/log"
	"github.com/gerunddev/gitpick/internal/picker"
)

var (
	// ErrDeclined is returned when the user settled on an action that did
	// not complete, e.g. a refused confirmation or an item action with
	// nothing selected.
	ErrDeclined = errors.New("action not completed")
	// ErrBack is returned by a picker opened from the menu when the user
	// pressed escape to return to it.
	ErrBack = errors.New("back to menu")
)

// Git is the git client used by the commands.
type Git interface {
	CurrentBranch(ctx context.Context) (string, error)
	Branches(ctx context.Context, includeRemote bool) ([]git.Branch, error)
	Commits(ctx context.Context, limit int) ([]git.Commit, error)
	Tags(ctx context.Context) ([]git.Tag, error)
	Remotes(ctx context.Context) ([]git.Remote, error)
	Checkout(ctx context.Context, branch string) error
	CheckoutTracking(ctx context.Context, remoteBranch string) error
	CheckoutDetached(ctx context.Context, rev string) error
	DeleteBranch(ctx context.Context, name string, force bool) error
	ResetHard(ctx context.Context, rev string) error
	Fetch(ctx context.Context, remote string) error
	CherryPick(ctx context.Context, rev string) error
	Revert(ctx context.Context, rev string) error
	DeleteTag(ctx context.Context, name string) error
	PushTag(ctx context.Context, remote, name string) error
	RemoveRemote(ctx context.Context, name string) error
	Show(ctx context.Context, rev string) error
}

// History stores the actions run from the pickers.
type History interface {
	Record(e *history.Entry) error
	LastAction(command, repo string) (string, error)
	Recent(limit int) ([]*history.Entry, error)
	Delete(id string) error
	Clear() (int64, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Env carries the collaborators shared by all commands.
type Env struct {
	Config *config.Config
	Git    Git
	// History is optional; nil disables recording.
	History History
	// Repo identifies the repository in history entries.
	Repo string

	Confirm   Confirmer
	Clipboard func(text string) error
	Out       io.Writer

	// Input, Output and Getenv are handed to every picker session.
	Input  io.Reader
	Output io.Writer
	Getenv func(string) string
	// Terminal, when set, supplies the terminal for each picker session.
	Terminal func() picker.Terminal
}

// NewEnv returns an Env wired to the real terminal and system clipboard.
func NewEnv(cfg *config.Config, g Git, h History, repo string) *Env {
	e := &Env{
		Config:  cfg,
		Git:     g,
		History: h,
		Repo:    repo,
		Confirm: &TeaConfirmer{In: os.Stdin, Out: os.Stderr},
		Out:     os.Stdout,
		Input:   os.Stdin,
		Output:  os.Stderr,
		Getenv:  os.Getenv,
	}
	// No xclip, xsel or wl-copy on this system.
	if !clipboard.Unsupported {
		e.Clipboard = clipboard.WriteAll
	}
	return e
}

// run opens a picker for command, preselecting the action used last, and
// records the action when it succeeds. A nil name disables recording.
func run[T any](ctx context.Context, e *Env, command string, cfg picker.Config[T], name func(T) string) (picker.Result[T], error) {
	cfg.ViewportSize = e.Config.ViewportSize
	cfg.DefaultAction = e.lastAction(command)
	cfg.Input = e.Input
	cfg.Output = e.Output
	cfg.Getenv = e.Getenv
	if e.Terminal != nil {
		cfg.Terminal = e.Terminal()
	}

	res, err := picker.Run(ctx, cfg)
	if err != nil {
		return res, err
	}
	if res.Success && res.Action != nil && name != nil {
		item := ""
		if res.HasItem {
			item = name(res.Item)
		}
		e.record(command, res.Action.Key, item)
	}
	return res, nil
}

// settle converts a picker result into the command's error.
func settle[T any](res picker.Result[T]) error {
	switch {
	case res.Back:
		return ErrBack
	case res.Success:
		return nil
	default:
		return ErrDeclined
	}
}

func (e *Env) lastAction(command string) string {
	if e.History == nil {
		return ""
	}
	action, err := e.History.LastAction(command, e.Repo)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			log.Warn("failed to read history", "command", command, "error", err)
		}
		return ""
	}
	return action
}

func (e *Env) record(command, action, item string) {
	if e.History == nil {
		return
	}
	entry := &history.Entry{Command: command, Action: action, Item: item, Repo: e.Repo}
	if err := e.History.Record(entry); err != nil {
		log.Warn("failed to record history", "command", command, "action", action, "error", err)
	}
}

// confirm asks prompt; a missing Confirmer answers no.
func (e *Env) confirm(ctx context.Context, prompt string) (bool, error) {
	if e.Confirm == nil {
		return false, nil
	}
	return e.Confirm.Confirm(ctx, prompt)
}

// copy writes text to the clipboard and reports it.
func (e *Env) copy(text string) error {
	if e.Clipboard == nil {
		return errors.New("clipboard is not available")
	}
	if err := e.Clipboard(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	e.printf("Copied %s\n", text)
	return nil
}

func (e *Env) printf(format string, args ...any) {
	if e.Out == nil {
		return
	}
	fmt.Fprintf(e.Out, format, args...)
}
