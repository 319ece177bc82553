package picker

import (
	"fmt"

	"github.com/gerunddev/gitpick/internal/search"
)

// state is the mutable session state. Only the model's event handlers
// mutate it, one key press at a time.
type state[T any] struct {
	items      []T
	searchText func(T) string
	source     ActionSource[T]

	query       string
	filtered    []search.Entry[T]
	cursor      int
	actionIndex int
	actions     []Action[T]
}

func newState[T any](items []T, searchText func(T) string, source ActionSource[T], query, defaultAction string) *state[T] {
	s := &state[T]{
		items:      items,
		searchText: searchText,
		source:     source,
		query:      query,
	}
	s.refilter()
	if defaultAction != "" {
		for i, a := range s.actions {
			if a.Key == defaultAction {
				s.actionIndex = i
				break
			}
		}
	}
	s.assert()
	return s
}

// current returns the selected item.
func (s *state[T]) current() (T, bool) {
	if s.cursor < 0 {
		var zero T
		return zero, false
	}
	return s.filtered[s.cursor].Item, true
}

// currentAction returns the highlighted action.
func (s *state[T]) currentAction() (Action[T], bool) {
	if len(s.actions) == 0 {
		return Action[T]{}, false
	}
	return s.actions[s.actionIndex], true
}

// appendText adds text to the query and re-ranks once.
func (s *state[T]) appendText(text string) {
	if text == "" {
		return
	}
	s.query += text
	s.refilter()
}

// backspace drops the last rune of the query. It reports whether anything
// changed.
func (s *state[T]) backspace() bool {
	if s.query == "" {
		return false
	}
	rs := []rune(s.query)
	s.query = string(rs[:len(rs)-1])
	s.refilter()
	return true
}

// clearQuery resets the query and shows the full list.
func (s *state[T]) clearQuery() {
	s.query = ""
	s.refilter()
}

// refilter recomputes the filtered list from scratch and moves the cursor to
// the best match.
func (s *state[T]) refilter() {
	s.filtered = search.Rank(s.items, s.query, s.searchText)
	if len(s.filtered) > 0 {
		s.cursor = 0
	} else {
		s.cursor = -1
	}
	s.refreshActions()
}

// moveCursor moves the selection by delta, clamped to the list.
func (s *state[T]) moveCursor(delta int) {
	if len(s.filtered) == 0 {
		return
	}
	next := clamp(s.cursor+delta, 0, len(s.filtered)-1)
	if next == s.cursor {
		return
	}
	s.cursor = next
	s.refreshActions()
}

// moveAction moves the highlighted action by delta, clamped to the bar.
func (s *state[T]) moveAction(delta int) {
	if len(s.actions) == 0 {
		return
	}
	s.actionIndex = clamp(s.actionIndex+delta, 0, len(s.actions)-1)
}

// refreshActions re-resolves the action list for the current selection and
// pulls actionIndex back in range.
func (s *state[T]) refreshActions() {
	item, ok := s.current()
	s.actions = resolveActions(s.source, item, ok)
	if len(s.actions) == 0 {
		s.actionIndex = 0
		return
	}
	s.actionIndex = clamp(s.actionIndex, 0, len(s.actions)-1)
}

// assert panics when the session state is inconsistent. Such a state can
// only come from a bug in this package.
func (s *state[T]) assert() {
	switch {
	case len(s.filtered) == 0 && s.cursor != -1:
		panic(fmt.Sprintf("picker: cursor %d with empty list", s.cursor))
	case len(s.filtered) > 0 && (s.cursor < 0 || s.cursor >= len(s.filtered)):
		panic(fmt.Sprintf("picker: cursor %d out of range [0,%d)", s.cursor, len(s.filtered)))
	case len(s.actions) > 0 && (s.actionIndex < 0 || s.actionIndex >= len(s.actions)):
		panic(fmt.Sprintf("picker: action index %d out of range [0,%d)", s.actionIndex, len(s.actions)))
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
