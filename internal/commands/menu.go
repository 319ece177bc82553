package commands

import (
	"context"
	"errors"

	"github.com/gerunddev/gitpick/internal/log"
	"github.com/gerunddev/gitpick/internal/picker"
)

// menuEntry is one command offered by the menu.
type menuEntry struct {
	name        string
	description string
	open        func(ctx context.Context) error
}

func (e *Env) menuEntries() []menuEntry {
	entries := []menuEntry{
		{"branch", "Switch, delete or copy branches", func(ctx context.Context) error {
			return e.Branch(ctx, BranchOptions{IncludeRemote: e.Config.IncludeRemote, AllowBack: true})
		}},
		{"log", "Browse commits of the current branch", func(ctx context.Context) error {
			return e.Log(ctx, LogOptions{AllowBack: true})
		}},
		{"tag", "Check out, push or delete tags", func(ctx context.Context) error {
			return e.Tag(ctx, TagOptions{AllowBack: true})
		}},
		{"remote", "Fetch or remove remotes", func(ctx context.Context) error {
			return e.Remote(ctx, RemoteOptions{AllowBack: true})
		}},
	}
	if e.History != nil {
		entries = append(entries, menuEntry{"history", "Recently used actions", func(ctx context.Context) error {
			return e.ShowHistory(ctx, HistoryOptions{AllowBack: true})
		}})
	}
	return entries
}

// Menu lets the user pick one of the commands. Escape inside a command
// returns here.
func (e *Env) Menu(ctx context.Context) error {
	entries := e.menuEntries()
	for {
		res, err := run(ctx, e, "menu", picker.Config[menuEntry]{
			Items:      entries,
			Render:     func(m menuEntry) string { return m.name + "  " + m.description },
			SearchText: func(m menuEntry) string { return m.name },
			Header:     "gitpick",
		}, nil)
		if err != nil {
			return err
		}
		if !res.HasItem {
			return settle(res)
		}

		log.Debug("opening from menu", "command", res.Item.name)
		err = res.Item.open(ctx)
		if errors.Is(err, ErrBack) {
			continue
		}
		return err
	}
}
