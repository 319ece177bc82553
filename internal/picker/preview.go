package picker

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gerunddev/gitpick/internal/log"
	"github.com/gerunddev/gitpick/internal/search"
)

// previewLimit is the number of items listed when there is no terminal.
const previewLimit = 5

// preview is the non-interactive fallback: it prints a static list and
// settles on the first (best ranked) item without running any action.
func preview[T any](cfg Config[T]) (Result[T], error) {
	ranked := search.Rank(cfg.Items, cfg.InitialQuery, cfg.SearchText)
	log.Debug("no interactive terminal, printing preview", "items", len(ranked))

	width := terminalWidth(cfg.Output)
	var b strings.Builder
	if cfg.Header != "" {
		b.WriteString(runewidth.Truncate(cfg.Header, width, "…"))
		b.WriteString("\n")
	}
	if len(ranked) == 0 {
		b.WriteString(noMatches)
		b.WriteString("\n")
	}
	for i, e := range ranked {
		if i == previewLimit {
			fmt.Fprintf(&b, "%s… and %d more\n", rowIndent, len(ranked)-previewLimit)
			break
		}
		prefix := rowIndent
		if i == 0 {
			prefix = cursorMarker
		}
		b.WriteString(runewidth.Truncate(prefix+cfg.Render(e.Item), width, "…"))
		b.WriteString("\n")
	}
	if _, err := fmt.Fprint(cfg.Output, b.String()); err != nil {
		return Result[T]{}, err
	}

	if len(ranked) == 0 {
		return Result[T]{}, nil
	}
	return Result[T]{Item: ranked[0].Item, HasItem: true, Success: true}, nil
}
