package commands

import (
	"context"
	"fmt"

	"github.com/gerunddev/gitpick/internal/git"
	"github.com/gerunddev/gitpick/internal/picker"
)

// LogOptions configures the commit picker.
type LogOptions struct {
	Query string
	// Limit caps the number of commits listed; zero uses the configured limit.
	Limit     int
	AllowBack bool
}

// Log lets the user pick a commit from the history of HEAD.
func (e *Env) Log(ctx context.Context, opts LogOptions) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = e.Config.CommitLimit
	}
	commits, err := e.Git.Commits(ctx, limit)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		e.printf("No commits yet\n")
		return nil
	}

	res, err := run(ctx, e, "log", picker.Config[git.Commit]{
		Items:        commits,
		Render:       renderCommit,
		SearchText:   commitSearchText,
		Actions:      picker.StaticActions[git.Commit](e.commitActions()),
		Header:       "Commits",
		AllowBack:    opts.AllowBack,
		InitialQuery: opts.Query,
	}, func(c git.Commit) string { return c.ShortHash })
	if err != nil {
		return err
	}
	return settle(res)
}

func commitSearchText(c git.Commit) string {
	return c.ShortHash + " " + c.Subject
}

func renderCommit(c git.Commit) string {
	return fmt.Sprintf("%s  (%s, %s)", commitSearchText(c), c.Author, c.Date)
}

func (e *Env) commitActions() []picker.Action[git.Commit] {
	return []picker.Action[git.Commit]{
		picker.ItemAction("show", "Show", picker.Void(func(ctx context.Context, c git.Commit) error {
			return e.Git.Show(ctx, c.Hash)
		})).WithDescription("Show the commit and its diff"),
		picker.ItemAction("checkout", "Checkout", picker.Void(func(ctx context.Context, c git.Commit) error {
			if err := e.Git.CheckoutDetached(ctx, c.Hash); err != nil {
				return err
			}
			e.printf("HEAD is now at %s %s\n", c.ShortHash, c.Subject)
			return nil
		})).WithDescription("Check out the commit with a detached HEAD"),
		picker.ItemAction("copy", "Copy hash", picker.Void(func(ctx context.Context, c git.Commit) error {
			return e.copy(c.Hash)
		})).WithDescription("Copy the full commit hash to the clipboard"),
		picker.ItemAction("cherry-pick", "Cherry-pick", picker.Void(func(ctx context.Context, c git.Commit) error {
			if err := e.Git.CherryPick(ctx, c.Hash); err != nil {
				return err
			}
			e.printf("Cherry-picked %s\n", c.ShortHash)
			return nil
		})).WithDescription("Apply the commit on top of HEAD"),
		picker.ItemAction("revert", "Revert", func(ctx context.Context, c git.Commit) (bool, error) {
			ok, err := e.confirm(ctx, fmt.Sprintf("Revert %s %q?", c.ShortHash, c.Subject))
			if err != nil || !ok {
				return false, err
			}
			if err := e.Git.Revert(ctx, c.Hash); err != nil {
				return false, err
			}
			e.printf("Reverted %s\n", c.ShortHash)
			return true, nil
		}).WithDescription("Create a commit undoing this one"),
	}
}
