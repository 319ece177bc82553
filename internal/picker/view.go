package picker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/gitpick/internal/search"
)

const (
	// DefaultViewportSize is the number of list rows drawn at once.
	DefaultViewportSize = 7

	// defaultWidth is used until the terminal reports its size.
	defaultWidth = 80

	// rowIndent is the gutter in front of unselected rows; the selected row
	// draws its cursor there.
	rowIndent    = "  "
	cursorMarker = "> "

	defaultHeader = "Select an item"
	noMatches     = "No matches"
)

// renderer draws frames for one session.
type renderer[T any] struct {
	render     func(T) string
	searchText func(T) string
	header     string
	size       int
	keys       KeyMap
	help       help.Model
}

func newRenderer[T any](cfg Config[T]) renderer[T] {
	keys := DefaultKeyMap()
	if cfg.AllowBack {
		keys.Escape.SetHelp("esc", "back")
	}
	h := help.New()
	h.ShortSeparator = " • "
	return renderer[T]{
		render:     cfg.Render,
		searchText: cfg.SearchText,
		header:     cfg.Header,
		size:       cfg.ViewportSize,
		keys:       keys,
		help:       h,
	}
}

// window returns the [start, end) range of rows visible around cursor.
func window(cursor, total, size int) (int, int) {
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

// frame renders the whole picker for the given state and terminal width.
func (r renderer[T]) frame(s *state[T], width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	var b strings.Builder

	header := r.header
	if header == "" {
		header = defaultHeader
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	b.WriteString(promptStyle.Render("Search: "))
	b.WriteString(queryStyle.Render(s.query))
	b.WriteString(countStyle.Render(fmt.Sprintf("  (%d/%d)", len(s.filtered), len(s.items))))
	b.WriteString("\n")

	keys := r.keys
	keys.Left.SetEnabled(len(s.actions) > 1)
	b.WriteString(r.help.ShortHelpView(keys.ShortHelp()))
	b.WriteString("\n\n")

	if len(s.filtered) == 0 {
		b.WriteString(emptyStyle.Render(noMatches))
		b.WriteString("\n")
		return b.String()
	}

	start, end := window(s.cursor, len(s.filtered), r.size)
	for i := start; i < end; i++ {
		b.WriteString(r.row(s.filtered[i].Item, s.query, i == s.cursor, width))
		b.WriteString("\n")
	}

	if len(s.actions) > 0 {
		b.WriteString("\n")
		b.WriteString(r.actionBar(s.actions, s.actionIndex))
		b.WriteString("\n")
		if desc := s.actions[s.actionIndex].Description; desc != "" {
			b.WriteString(descriptionStyle.Render(desc))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// row renders one list entry. The selected row is filled to the terminal
// width so the highlight bar is continuous.
func (r renderer[T]) row(item T, query string, selected bool, width int) string {
	display := r.render(item)
	marks := matchMarks(display, r.searchText(item), query)

	if !selected {
		return rowIndent + styleRunes(display, marks, rowStyle, matchStyle)
	}

	line := cursorStyle.Render(cursorMarker) + styleRunes(display, marks, selectedRowStyle, selectedMatchStyle)
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += selectedRowStyle.Render(strings.Repeat(" ", pad))
	}
	return line
}

// actionBar renders the action labels with the active one marked.
func (r renderer[T]) actionBar(actions []Action[T], active int) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		if i == active {
			parts[i] = activeActionStyle.Render("● [" + a.Label + "]")
		} else {
			parts[i] = actionStyle.Render("○ " + a.Label)
		}
	}
	return strings.Join(parts, "  ")
}

// matchMarks returns, per rune of display, whether it is part of the match.
// Highlighting is confined to the part of display that equals searchText;
// when searchText does not occur in display the whole string is used.
func matchMarks(display, searchText, query string) []bool {
	if query == "" {
		return nil
	}
	marks := make([]bool, utf8.RuneCountInString(display))

	target, offset := display, 0
	if searchText != "" {
		if i := strings.Index(display, searchText); i >= 0 {
			target = searchText
			offset = utf8.RuneCountInString(display[:i])
		}
	}
	for _, p := range search.Highlight(target, query) {
		marks[offset+p] = true
	}
	return marks
}

// styleRunes renders s, styling each maximal run of marked runes with hl and
// every other run with base.
func styleRunes(s string, marks []bool, base, hl lipgloss.Style) string {
	if len(marks) == 0 {
		return base.Render(s)
	}
	rs := []rune(s)
	var b strings.Builder
	start := 0
	for i := 1; i <= len(rs); i++ {
		if i < len(rs) && marks[i] == marks[start] {
			continue
		}
		style := base
		if marks[start] {
			style = hl
		}
		b.WriteString(style.Render(string(rs[start:i])))
		start = i
	}
	return b.String()
}
