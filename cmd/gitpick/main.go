// Package main is the entry point for the gitpick CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gerunddev/gitpick/internal/commands"
	"github.com/gerunddev/gitpick/internal/config"
	"github.com/gerunddev/gitpick/internal/git"
	"github.com/gerunddev/gitpick/internal/history"
	"github.com/gerunddev/gitpick/internal/log"
	"github.com/gerunddev/gitpick/internal/picker"
)

// Runner is the set of pickers the CLI dispatches to.
type Runner interface {
	Menu(ctx context.Context) error
	Branch(ctx context.Context, opts commands.BranchOptions) error
	Log(ctx context.Context, opts commands.LogOptions) error
	Tag(ctx context.Context, opts commands.TagOptions) error
	Remote(ctx context.Context, opts commands.RemoteOptions) error
	ShowHistory(ctx context.Context, opts commands.HistoryOptions) error
}

// repoValidator returns the root of the repository containing workDir.
// It can be replaced in tests to mock git.
var repoValidator = defaultRepoValidator

// runnerFactory builds the Runner for a repository.
// It can be replaced in tests to mock the pickers.
var runnerFactory = defaultRunnerFactory

func defaultRepoValidator(ctx context.Context, workDir string) (string, error) {
	return git.NewClient(workDir).RepoRoot(ctx)
}

func defaultRunnerFactory(cfg *config.Config, workDir, repo string) (Runner, func(), error) {
	var store commands.History
	cleanup := func() {}
	if cfg.HistoryEnabled {
		s, err := history.New(cfg.HistoryPath)
		if err != nil {
			// History is a convenience; the pickers work without it.
			log.Warn("history unavailable", "path", cfg.HistoryPath, "error", err)
		} else {
			store = s
			cleanup = func() { log.CloseError("history database", s.Close()) }
		}
	}
	return commands.NewEnv(cfg, git.NewClient(workDir), store, repo), cleanup, nil
}

func main() {
	code, msg := exitStatus(run(os.Args[1:]))
	if msg != "" {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// exitStatus maps the result of run to a process exit code and the message
// to print, if any. Cancelling a picker is a normal exit.
func exitStatus(err error) (int, string) {
	switch {
	case err == nil, errors.Is(err, picker.ErrCancelled), errors.Is(err, commands.ErrBack):
		return 0, ""
	case errors.Is(err, commands.ErrDeclined):
		return 1, ""
	default:
		return 1, err.Error()
	}
}

func run(args []string) error {
	c := &cli{}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// globalFlags are the flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
}

// cli holds what the commands share once flags are parsed.
type cli struct {
	flags   globalFlags
	cfg     *config.Config
	runner  Runner
	cleanup []func()
}

// loadConfig applies logging flags and loads the configuration.
func (c *cli) loadConfig() error {
	if c.flags.debug {
		log.SetLevel(charmlog.DebugLevel)
	}

	path, err := c.configPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if cfg.LogFile != "" {
		if err := log.ToFile(cfg.LogFile); err != nil {
			return err
		}
		c.cleanup = append(c.cleanup, log.Close)
	}
	log.Debug("loaded config", "path", path)
	return nil
}

func (c *cli) configPath() (string, error) {
	if c.flags.configPath != "" {
		return c.flags.configPath, nil
	}
	return config.DefaultPath()
}

// open loads the configuration and prepares the pickers for the repository
// containing the working directory.
func (c *cli) open(ctx context.Context) error {
	if err := c.loadConfig(); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	repo, err := repoValidator(ctx, workDir)
	if errors.Is(err, git.ErrNotRepo) {
		return fmt.Errorf("not a git repository (run from within a git work tree)")
	}
	if errors.Is(err, git.ErrCommandNotFound) {
		return fmt.Errorf("git command not found (install git: https://git-scm.com)")
	}
	if err != nil {
		return fmt.Errorf("failed to verify git repository: %w", err)
	}

	runner, cleanup, err := runnerFactory(c.cfg, workDir, repo)
	if err != nil {
		return err
	}
	c.runner = runner
	c.cleanup = append(c.cleanup, cleanup)
	return nil
}

// close releases resources in reverse order of acquisition.
func (c *cli) close() {
	for i := len(c.cleanup) - 1; i >= 0; i-- {
		c.cleanup[i]()
	}
	c.cleanup = nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "gitpick",
		Short: "Fuzzy pick git branches, commits, tags and remotes",
		Long: `gitpick lists git objects in an interactive fuzzy picker. Type to filter,
move with the arrow keys, pick an action with left/right and press enter.

Examples:
  gitpick                 # Choose what to pick from a menu
  gitpick branch feat     # Pick a branch, starting with the query "feat"
  gitpick branch -a       # Include remote-tracking branches
  gitpick log -n 200      # Pick one of the last 200 commits`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runner.Menu(cmd.Context())
		},
	}

	root.PersistentFlags().BoolVar(&c.flags.debug, "debug", false,
		"Enable debug logging")
	root.PersistentFlags().StringVar(&c.flags.configPath, "config", "",
		"Path to the config file (.json or .toml)")

	root.AddCommand(
		branchCmd(c),
		logCmd(c),
		tagCmd(c),
		remoteCmd(c),
		historyCmd(c),
		configCmd(c),
	)
	return root
}
