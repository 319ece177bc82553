package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerunddev/gitpick/internal/commands"
)

// query joins positional arguments into the initial search term.
func query(args []string) string {
	return strings.Join(args, " ")
}

func branchCmd(c *cli) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "branch [query]",
		Short: "Pick a branch to check out, copy or delete",
		RunE: func(cmd *cobra.Command, args []string) error {
			includeRemote := c.cfg.IncludeRemote
			if cmd.Flags().Changed("all") {
				includeRemote = all
			}
			return c.runner.Branch(cmd.Context(), commands.BranchOptions{
				Query:         query(args),
				IncludeRemote: includeRemote,
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Include remote-tracking branches")
	return cmd
}

func logCmd(c *cli) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log [query]",
		Short: "Pick a commit to show, check out, cherry-pick or revert",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New("--limit cannot be negative")
			}
			return c.runner.Log(cmd.Context(), commands.LogOptions{
				Query: query(args),
				Limit: limit,
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0,
		"Number of commits to list (default from config)")
	return cmd
}

func tagCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tag [query]",
		Short: "Pick a tag to check out, push or delete",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runner.Tag(cmd.Context(), commands.TagOptions{Query: query(args)})
		},
	}
}

func remoteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remote [query]",
		Short: "Pick a remote to fetch, copy or remove",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runner.Remote(cmd.Context(), commands.RemoteOptions{Query: query(args)})
		},
	}
}

func historyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "history [query]",
		Short: "Browse recently used actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runner.ShowHistory(cmd.Context(), commands.HistoryOptions{Query: query(args)})
		},
	}
}
