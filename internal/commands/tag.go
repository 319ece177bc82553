package commands

import (
	"context"
	"fmt"

	"github.com/gerunddev/gitpick/internal/git"
	"github.com/gerunddev/gitpick/internal/picker"
)

// TagOptions configures the tag picker.
type TagOptions struct {
	Query     string
	AllowBack bool
}

// Tag lets the user pick a tag and act on it.
func (e *Env) Tag(ctx context.Context, opts TagOptions) error {
	tags, err := e.Git.Tags(ctx)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		e.printf("No tags found\n")
		return nil
	}

	res, err := run(ctx, e, "tag", picker.Config[git.Tag]{
		Items:        tags,
		Render:       renderTag,
		SearchText:   func(t git.Tag) string { return t.Name },
		Actions:      picker.StaticActions[git.Tag](e.tagActions()),
		Header:       "Tags",
		AllowBack:    opts.AllowBack,
		InitialQuery: opts.Query,
	}, func(t git.Tag) string { return t.Name })
	if err != nil {
		return err
	}
	return settle(res)
}

func renderTag(t git.Tag) string {
	if t.Subject == "" {
		return t.Name
	}
	return t.Name + "  " + t.Subject
}

func (e *Env) tagActions() []picker.Action[git.Tag] {
	return []picker.Action[git.Tag]{
		picker.ItemAction("checkout", "Checkout", picker.Void(func(ctx context.Context, t git.Tag) error {
			if err := e.Git.CheckoutDetached(ctx, t.Name); err != nil {
				return err
			}
			e.printf("HEAD is now at %s\n", t.Name)
			return nil
		})).WithDescription("Check out the tag with a detached HEAD"),
		picker.ItemAction("copy", "Copy", picker.Void(func(ctx context.Context, t git.Tag) error {
			return e.copy(t.Name)
		})).WithDescription("Copy the tag name to the clipboard"),
		picker.ItemAction("push", "Push", picker.Void(func(ctx context.Context, t git.Tag) error {
			if err := e.Git.PushTag(ctx, e.Config.Remote, t.Name); err != nil {
				return err
			}
			e.printf("Pushed %s to %s\n", t.Name, e.Config.Remote)
			return nil
		})).WithDescription("Push the tag to " + e.Config.Remote),
		picker.ItemAction("delete", "Delete", func(ctx context.Context, t git.Tag) (bool, error) {
			ok, err := e.confirm(ctx, fmt.Sprintf("Delete tag %s?", t.Name))
			if err != nil || !ok {
				return false, err
			}
			if err := e.Git.DeleteTag(ctx, t.Name); err != nil {
				return false, err
			}
			e.printf("Deleted tag %s\n", t.Name)
			return true, nil
		}).WithDescription("Delete the local tag"),
	}
}
