package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/gitpick/internal/config"
	"github.com/gerunddev/gitpick/internal/editor"
	"github.com/gerunddev/gitpick/internal/log"
)

// Opener opens a file for editing.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// editorFactory returns the editor for the configured command.
// It can be replaced in tests.
var editorFactory = func(command string) Opener {
	return editor.New(command)
}

func configCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the configuration file",
		// The config commands work outside a repository.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	cmd.AddCommand(configPathCmd(c), configEditCmd(c))
	return cmd
}

func configPathCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func configEditCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration file in your editor",
		Long: `Open the configuration file in the editor named by the "editor" setting,
$VISUAL or $EDITOR. A file with the default settings is created first if
none exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}

			// A broken file is what the user wants to fix, so fall back to
			// the defaults to find an editor.
			command := ""
			if cfg, err := config.LoadFromPath(path); err == nil {
				command = cfg.Editor
			} else {
				log.Warn("config is invalid, using default editor", "error", err)
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}
			return editorFactory(command).Open(cmd.Context(), path)
		},
	}
}
