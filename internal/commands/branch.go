package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/gerunddev/gitpick/internal/git"
	"github.com/gerunddev/gitpick/internal/log"
	"github.com/gerunddev/gitpick/internal/picker"
)

// BranchOptions configures the branch picker.
type BranchOptions struct {
	Query         string
	IncludeRemote bool
	AllowBack     bool
}

// Branch lets the user pick a branch and act on it.
func (e *Env) Branch(ctx context.Context, opts BranchOptions) error {
	branches, err := e.Git.Branches(ctx, opts.IncludeRemote)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		e.printf("No branches found\n")
		return nil
	}

	res, err := run(ctx, e, "branch", picker.Config[git.Branch]{
		Items:        branches,
		Render:       renderBranch,
		SearchText:   func(b git.Branch) string { return b.Name },
		Actions:      picker.ActionsFunc[git.Branch](e.branchActions),
		Header:       "Branches",
		AllowBack:    opts.AllowBack,
		InitialQuery: opts.Query,
	}, func(b git.Branch) string { return b.Name })
	if err != nil {
		return err
	}
	return settle(res)
}

func renderBranch(b git.Branch) string {
	marker := "  "
	if b.Current {
		marker = "* "
	}
	var meta []string
	if b.Date != "" {
		meta = append(meta, b.Date)
	}
	if b.Subject != "" {
		meta = append(meta, b.Subject)
	}
	if len(meta) == 0 {
		return marker + b.Name
	}
	return marker + b.Name + "  " + strings.Join(meta, " · ")
}

func (e *Env) branchActions(b git.Branch, ok bool) []picker.Action[git.Branch] {
	fetch := picker.GlobalAction[git.Branch]("fetch", "Fetch all", picker.VoidGlobal(e.fetchAll)).
		WithDescription("Fetch and prune every remote")
	if !ok {
		return []picker.Action[git.Branch]{fetch}
	}

	copyName := picker.ItemAction("copy", "Copy", picker.Void(func(ctx context.Context, b git.Branch) error {
		return e.copy(b.Name)
	})).WithDescription("Copy the branch name to the clipboard")

	if b.Remote {
		return []picker.Action[git.Branch]{
			picker.ItemAction("checkout", "Checkout", picker.Void(e.checkoutTracking)).
				WithDescription("Create a local branch tracking " + b.Name),
			picker.ItemAction("reset", "Reset", e.resetToBranch).
				WithDescription("Hard reset the current branch to " + b.Name),
			copyName,
			fetch,
		}
	}

	if b.Current {
		return []picker.Action[git.Branch]{copyName, fetch}
	}
	return []picker.Action[git.Branch]{
		picker.ItemAction("checkout", "Checkout", picker.Void(e.checkoutBranch)).
			WithDescription("Switch to " + b.Name),
		copyName,
		picker.ItemAction("delete", "Delete", e.deleteBranch).
			WithDescription("Delete the local branch " + b.Name),
		fetch,
	}
}

func (e *Env) checkoutBranch(ctx context.Context, b git.Branch) error {
	if err := e.Git.Checkout(ctx, b.Name); err != nil {
		return err
	}
	e.printf("Switched to branch %s\n", b.Name)
	return nil
}

func (e *Env) checkoutTracking(ctx context.Context, b git.Branch) error {
	if err := e.Git.CheckoutTracking(ctx, b.Name); err != nil {
		return err
	}
	e.printf("Switched to a new branch tracking %s\n", b.Name)
	return nil
}

func (e *Env) deleteBranch(ctx context.Context, b git.Branch) (bool, error) {
	ok, err := e.confirm(ctx, fmt.Sprintf("Delete branch %s?", b.Name))
	if err != nil || !ok {
		return false, err
	}

	err = e.Git.DeleteBranch(ctx, b.Name, false)
	if err != nil && strings.Contains(err.Error(), "not fully merged") {
		log.Debug("branch not merged, asking to force", "branch", b.Name)
		ok, err = e.confirm(ctx, fmt.Sprintf("%s is not fully merged. Delete anyway?", b.Name))
		if err != nil || !ok {
			return false, err
		}
		err = e.Git.DeleteBranch(ctx, b.Name, true)
	}
	if err != nil {
		return false, err
	}
	e.printf("Deleted branch %s\n", b.Name)
	return true, nil
}

func (e *Env) resetToBranch(ctx context.Context, b git.Branch) (bool, error) {
	current, err := e.Git.CurrentBranch(ctx)
	if err != nil {
		return false, err
	}
	if current == "" {
		current = "HEAD"
	}
	ok, err := e.confirm(ctx, fmt.Sprintf("Reset %s to %s? Uncommitted changes will be lost.", current, b.Name))
	if err != nil || !ok {
		return false, err
	}
	if err := e.Git.ResetHard(ctx, b.Name); err != nil {
		return false, err
	}
	e.printf("Reset %s to %s\n", current, b.Name)
	return true, nil
}

func (e *Env) fetchAll(ctx context.Context) error {
	if err := e.Git.Fetch(ctx, ""); err != nil {
		return err
	}
	e.printf("Fetched all remotes\n")
	return nil
}
