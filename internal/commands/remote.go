package commands

import (
	"context"
	"fmt"

	"github.com/gerunddev/gitpick/internal/git"
	"github.com/gerunddev/gitpick/internal/picker"
)

// RemoteOptions configures the remote picker.
type RemoteOptions struct {
	Query     string
	AllowBack bool
}

// Remote lets the user pick a configured remote and act on it.
func (e *Env) Remote(ctx context.Context, opts RemoteOptions) error {
	remotes, err := e.Git.Remotes(ctx)
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		e.printf("No remotes configured\n")
		return nil
	}

	res, err := run(ctx, e, "remote", picker.Config[git.Remote]{
		Items:        remotes,
		Render:       func(r git.Remote) string { return r.Name + "  " + r.URL },
		SearchText:   func(r git.Remote) string { return r.Name },
		Actions:      picker.StaticActions[git.Remote](e.remoteActions()),
		Header:       "Remotes",
		AllowBack:    opts.AllowBack,
		InitialQuery: opts.Query,
	}, func(r git.Remote) string { return r.Name })
	if err != nil {
		return err
	}
	return settle(res)
}

func (e *Env) remoteActions() []picker.Action[git.Remote] {
	return []picker.Action[git.Remote]{
		picker.ItemAction("fetch", "Fetch", picker.Void(func(ctx context.Context, r git.Remote) error {
			if err := e.Git.Fetch(ctx, r.Name); err != nil {
				return err
			}
			e.printf("Fetched %s\n", r.Name)
			return nil
		})).WithDescription("Fetch and prune this remote"),
		picker.ItemAction("copy", "Copy URL", picker.Void(func(ctx context.Context, r git.Remote) error {
			return e.copy(r.URL)
		})).WithDescription("Copy the fetch URL to the clipboard"),
		picker.ItemAction("remove", "Remove", func(ctx context.Context, r git.Remote) (bool, error) {
			ok, err := e.confirm(ctx, fmt.Sprintf("Remove remote %s and its remote-tracking branches?", r.Name))
			if err != nil || !ok {
				return false, err
			}
			if err := e.Git.RemoveRemote(ctx, r.Name); err != nil {
				return false, err
			}
			e.printf("Removed remote %s\n", r.Name)
			return true, nil
		}).WithDescription("Remove the remote"),
	}
}
