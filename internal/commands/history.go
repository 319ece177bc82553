package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerunddev/gitpick/internal/history"
	"github.com/gerunddev/gitpick/internal/picker"
)

// ErrHistoryDisabled is returned by History when no store is configured.
var ErrHistoryDisabled = errors.New("history is disabled")

// HistoryOptions configures the history picker.
type HistoryOptions struct {
	Query     string
	AllowBack bool
}

// ShowHistory lets the user browse the recorded actions.
func (e *Env) ShowHistory(ctx context.Context, opts HistoryOptions) error {
	if e.History == nil {
		return ErrHistoryDisabled
	}
	entries, err := e.History.Recent(0)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		e.printf("History is empty\n")
		return nil
	}

	res, err := run(ctx, e, "history", picker.Config[*history.Entry]{
		Items:        entries,
		Render:       renderEntry,
		SearchText:   entrySearchText,
		Actions:      picker.StaticActions[*history.Entry](e.historyActions()),
		Header:       "History",
		AllowBack:    opts.AllowBack,
		InitialQuery: opts.Query,
	}, nil)
	if err != nil {
		return err
	}
	return settle(res)
}

func entrySearchText(h *history.Entry) string {
	return h.Command + " " + h.Action + " " + h.Item
}

func renderEntry(h *history.Entry) string {
	return fmt.Sprintf("%s  %s", entrySearchText(h), h.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func (e *Env) historyActions() []picker.Action[*history.Entry] {
	return []picker.Action[*history.Entry]{
		picker.ItemAction("copy", "Copy", func(ctx context.Context, h *history.Entry) (bool, error) {
			if h.Item == "" {
				return false, nil
			}
			return true, e.copy(h.Item)
		}).WithDescription("Copy the item to the clipboard"),
		picker.ItemAction("remove", "Remove", func(ctx context.Context, h *history.Entry) (bool, error) {
			if err := e.History.Delete(h.ID); err != nil {
				return false, fmt.Errorf("failed to remove history entry: %w", err)
			}
			e.printf("Removed %s %s\n", h.Action, h.Item)
			return true, nil
		}).WithDescription("Remove this entry from the history"),
		picker.GlobalAction[*history.Entry]("clear", "Clear all", func(ctx context.Context) (bool, error) {
			ok, err := e.confirm(ctx, "Clear the whole history?")
			if err != nil || !ok {
				return false, err
			}
			n, err := e.History.Clear()
			if err != nil {
				return false, err
			}
			e.printf("Removed %d entries\n", n)
			return true, nil
		}).WithDescription("Delete every recorded entry"),
	}
}
