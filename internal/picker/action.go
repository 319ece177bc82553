package picker

import "context"

// actionScope says whether an action operates on the selected item.
type actionScope int

const (
	scopeItem actionScope = iota
	scopeGlobal
)

// ItemHandler runs an item action. Returning false reports a domain-level
// decline (for example a refused confirmation); errors are propagated to the
// caller of Run unchanged.
type ItemHandler[T any] func(ctx context.Context, item T) (bool, error)

// GlobalHandler runs a global action.
type GlobalHandler func(ctx context.Context) (bool, error)

// Action is an operation offered in the action bar. Build one with
// ItemAction or GlobalAction.
type Action[T any] struct {
	Key         string
	Label       string
	Description string

	scope  actionScope
	item   ItemHandler[T]
	global GlobalHandler
}

// ItemAction returns an action bound to the selected item.
func ItemAction[T any](key, label string, fn ItemHandler[T]) Action[T] {
	return Action[T]{Key: key, Label: label, scope: scopeItem, item: fn}
}

// GlobalAction returns an action that runs without a selected item.
func GlobalAction[T any](key, label string, fn GlobalHandler) Action[T] {
	return Action[T]{Key: key, Label: label, scope: scopeGlobal, global: fn}
}

// Void adapts a handler with no explicit outcome: it succeeds unless it
// returns an error.
func Void[T any](fn func(ctx context.Context, item T) error) ItemHandler[T] {
	return func(ctx context.Context, item T) (bool, error) {
		if err := fn(ctx, item); err != nil {
			return false, err
		}
		return true, nil
	}
}

// VoidGlobal is Void for global handlers.
func VoidGlobal(fn func(ctx context.Context) error) GlobalHandler {
	return func(ctx context.Context) (bool, error) {
		if err := fn(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
}

// WithDescription returns a copy of a with its description set.
func (a Action[T]) WithDescription(desc string) Action[T] {
	a.Description = desc
	return a
}

// NeedsItem reports whether the action can only run with a selected item.
func (a Action[T]) NeedsItem() bool {
	return a.scope == scopeItem
}

// invoke runs the handler. A nil handler is a no-op success.
func (a Action[T]) invoke(ctx context.Context, item T) (bool, error) {
	switch a.scope {
	case scopeItem:
		if a.item == nil {
			return true, nil
		}
		return a.item(ctx, item)
	default:
		if a.global == nil {
			return true, nil
		}
		return a.global(ctx)
	}
}

// ActionSource yields the actions offered for the current selection.
// ok is false when nothing is selected.
type ActionSource[T any] interface {
	Resolve(item T, ok bool) []Action[T]
}

// StaticActions offers the same actions regardless of selection.
type StaticActions[T any] []Action[T]

// Resolve implements ActionSource.
func (s StaticActions[T]) Resolve(T, bool) []Action[T] {
	return s
}

// ActionsFunc computes actions from the current selection. It is called
// again every time the selected item changes.
type ActionsFunc[T any] func(item T, ok bool) []Action[T]

// Resolve implements ActionSource.
func (f ActionsFunc[T]) Resolve(item T, ok bool) []Action[T] {
	return f(item, ok)
}

// resolveActions returns the active action list for the selection.
func resolveActions[T any](src ActionSource[T], item T, ok bool) []Action[T] {
	if src == nil {
		return nil
	}
	return src.Resolve(item, ok)
}
