package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/crossfs/pkg/crossfs/walk"
)

// newTreeCommands returns the commands that read or change the filesystem.
func newTreeCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newFindCommand(a),
		newRemoveCommand(a),
		newCopyCommand(a),
		newMkdirCommand(a),
		newTouchCommand(a),
	}
}

func newFindCommand(a *app) *cobra.Command {
	var (
		strategy  string
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "find <dir>",
		Short: "List the entries below a directory",
		Long: `List the entries below a directory in walk order.

Strategies: children-first (pre-order), siblings-first (level order) and
deepest-first (post-order, safe for deletion).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.Walk(a.logger)
			if cmd.Flags().Changed("strategy") {
				s, err := walk.ParseStrategy(strategy)
				if err != nil {
					return err
				}
				opts.Strategy = s
			}
			if cmd.Flags().Changed("recursive") {
				opts.Recursive = recursive
			}

			for _, p := range a.fs.Find(args[0], opts.Strategy, opts.Recursive) {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "walk strategy (default from config, children-first)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "descend into subdirectories")
	return cmd
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>...",
		Short: "Remove files and directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				if err := a.fs.Remove(p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCopyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cp <src> <dst>",
		Short: "Copy a file or directory tree",
		Long:  "Copy a file or directory tree. When dst is a directory the source is copied into it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fs.Copy(args[0], args[1])
		},
	}
}

func newMkdirCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <dir>...",
		Short: "Create directories and their parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, dir := range args {
				if err := a.fs.Mkdir(dir); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newTouchCommand(a *app) *cobra.Command {
	var atimeStr, mtimeStr string

	cmd := &cobra.Command{
		Use:   "touch <file>...",
		Short: "Create files or update their times",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			atime, err := parseTime(atimeStr)
			if err != nil {
				return fmt.Errorf("--atime: %w", err)
			}
			mtime, err := parseTime(mtimeStr)
			if err != nil {
				return fmt.Errorf("--mtime: %w", err)
			}
			for _, file := range args {
				if err := a.fs.Touch(file, atime, mtime); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&atimeStr, "atime", "", "access time, RFC 3339 (default now)")
	cmd.Flags().StringVar(&mtimeStr, "mtime", "", "modification time, RFC 3339 (default now)")
	return cmd
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
