package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

// newPathCommands returns the lexical path commands. Apart from realpath
// they never touch the filesystem.
func newPathCommands(a *app) []*cobra.Command {
	perArg := func(use, short string, fn func(string) string) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <path>...",
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, p := range args {
					fmt.Fprintln(cmd.OutOrStdout(), fn(p))
				}
				return nil
			},
		}
	}

	normalize := perArg("normalize", "Normalize paths lexically", func(p string) string {
		return a.fs.Normalize(p)
	})
	realpath := perArg("realpath", "Print absolute paths with symbolic links resolved", func(p string) string {
		return a.fs.Realpath(p)
	})
	dirname := perArg("dirname", "Print the directory part of paths", path.Dirname)

	var suffix string
	basename := perArg("basename", "Print the last component of paths", func(p string) string {
		return path.Basename(p, suffix)
	})
	basename.Flags().StringVarP(&suffix, "suffix", "s", "", "remove this suffix from the name")

	var noDot bool
	extname := perArg("extname", "Print the extension of paths", func(p string) string {
		if noDot {
			return path.ExtnameNoDot(p)
		}
		return path.Extname(p)
	})
	extname.Flags().BoolVar(&noDot, "no-dot", false, "omit the leading dot")

	tokenize := &cobra.Command{
		Use:   "tokenize <path>",
		Short: "Print the tokens of a path, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tok := range path.Tokens(args[0]) {
				sep := ""
				if tok.Sep != path.NoSep {
					sep = string(tok.Sep)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%q %q\n", tok.Text, sep)
			}
			return nil
		},
	}

	return []*cobra.Command{normalize, realpath, dirname, basename, extname, tokenize}
}
