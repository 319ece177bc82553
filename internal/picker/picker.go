// Package picker implements an interactive fuzzy picker: type to filter a
// list, move with the arrow keys, choose a contextual action and settle on a
// single result.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gerunddev/gitpick/internal/log"
)

// ErrCancelled is returned by Run when the user aborts with ctrl+c. Callers
// should treat it as a normal, user-initiated exit.
var ErrCancelled = errors.New("selection cancelled")

// Config describes one picker session.
type Config[T any] struct {
	// Items is the full, ordered list. Earlier items win ties.
	Items []T
	// Render returns the text drawn for an item. Required.
	Render func(T) string
	// SearchText returns the text matched against the query. Defaults to Render.
	SearchText func(T) string
	// Actions offers per-selection actions. Optional.
	Actions ActionSource[T]

	Header string
	// DefaultAction is the key of the action highlighted first.
	DefaultAction string
	// AllowBack makes escape settle with Result.Back instead of clearing
	// the query.
	AllowBack bool
	// InitialQuery pre-fills the search term.
	InitialQuery string
	// ViewportSize is the number of rows drawn. Defaults to DefaultViewportSize.
	ViewportSize int

	Input  io.Reader
	Output io.Writer
	// Terminal overrides terminal acquisition, mainly for tests.
	Terminal Terminal
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Result is the settled outcome of a session.
type Result[T any] struct {
	Item    T
	HasItem bool
	// Action is the chosen action, nil when none was offered.
	Action  *Action[T]
	Success bool
	// Back is set when the user left with escape and AllowBack was on.
	Back bool
}

func (c Config[T]) withDefaults() Config[T] {
	if c.SearchText == nil {
		c.SearchText = c.Render
	}
	if c.ViewportSize <= 0 {
		c.ViewportSize = DefaultViewportSize
	}
	if c.Input == nil {
		c.Input = os.Stdin
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Getenv == nil {
		c.Getenv = os.Getenv
	}
	return c
}

// selection is what the input loop settled on before any action runs.
type selection[T any] struct {
	item   T
	ok     bool
	action *Action[T]
}

// Run shows the picker and blocks until the user settles it. The chosen
// action, if any, runs after the terminal has been released; its error is
// returned unchanged. ctrl+c yields ErrCancelled.
func Run[T any](ctx context.Context, cfg Config[T]) (Result[T], error) {
	if cfg.Render == nil {
		return Result[T]{}, errors.New("picker: Render is required")
	}
	if len(cfg.Items) == 0 {
		return Result[T]{}, nil
	}
	cfg = cfg.withDefaults()

	if cfg.Terminal == nil {
		if !interactive(cfg.Getenv) {
			return preview(cfg)
		}
		t, err := OpenTerminal(cfg.Input, cfg.Output)
		if errors.Is(err, ErrNotInteractive) {
			return preview(cfg)
		}
		if err != nil {
			return Result[T]{}, fmt.Errorf("failed to acquire terminal: %w", err)
		}
		cfg.Terminal = t
	}

	sel, back, err := session(ctx, cfg)
	if err != nil {
		return Result[T]{}, err
	}
	if back {
		return Result[T]{Back: true}, nil
	}
	return execute(ctx, sel)
}

// session runs the input loop. The terminal is released on every path out
// of here, before any action handler runs.
func session[T any](ctx context.Context, cfg Config[T]) (sel selection[T], back bool, err error) {
	term := cfg.Terminal
	defer func() {
		if relErr := term.Release(); relErr != nil {
			log.Warn("failed to restore terminal", "error", relErr)
		}
	}()

	st := newState(cfg.Items, cfg.SearchText, cfg.Actions, cfg.InitialQuery, cfg.DefaultAction)
	final, err := term.Run(ctx, newModel(st, cfg))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sel, false, ctxErr
		}
		return sel, false, fmt.Errorf("picker: %w", err)
	}

	m, ok := final.(model[T])
	if !ok {
		return sel, false, fmt.Errorf("picker: unexpected model %T", final)
	}
	switch m.outcome {
	case outcomeCancel:
		return sel, false, ErrCancelled
	case outcomeBack:
		return sel, true, nil
	case outcomeCommit:
		sel.item, sel.ok = m.st.current()
		if a, ok := m.st.currentAction(); ok {
			sel.action = &a
		}
		return sel, false, nil
	default:
		// The program quit without settling, e.g. on SIGINT outside raw mode
		// or because ctx was done.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sel, false, ctxErr
		}
		return sel, false, ErrCancelled
	}
}

// execute applies the commit protocol to a settled selection.
func execute[T any](ctx context.Context, sel selection[T]) (Result[T], error) {
	res := Result[T]{Item: sel.item, HasItem: sel.ok, Action: sel.action}
	if sel.action == nil {
		res.Success = sel.ok
		return res, nil
	}
	if sel.action.NeedsItem() && !sel.ok {
		return res, nil
	}

	log.Debug("running action", "action", sel.action.Key)
	ok, err := sel.action.invoke(ctx, sel.item)
	if err != nil {
		return Result[T]{}, err
	}
	res.Success = ok
	return res, nil
}
