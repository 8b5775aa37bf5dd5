package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/crossfs/pkg/crossfs/env"
)

func newEnvCommand() *cobra.Command {
	var homeOf string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the host environment as seen by crossfs",
		Long: `Print the system root, current user, home and temporary directories,
working directory, preferred separator and mounted drives, one key=value per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if homeOf != "" {
				home := env.HomeOf(homeOf)
				if home == "" {
					return fmt.Errorf("unknown user %q", homeOf)
				}
				fmt.Fprintln(out, home)
				return nil
			}

			fmt.Fprintf(out, "root=%s\n", env.Root())
			fmt.Fprintf(out, "user=%s\n", env.User())
			fmt.Fprintf(out, "home=%s\n", env.Home())
			fmt.Fprintf(out, "tmp=%s\n", env.Tmp())
			fmt.Fprintf(out, "cwd=%s\n", env.Cwd())
			fmt.Fprintf(out, "sep=%s\n", env.Sep())
			fmt.Fprintf(out, "drives=%s\n", strings.Join(env.Drives(), ","))
			return nil
		},
	}
	cmd.Flags().StringVar(&homeOf, "home-of", "", "print the home directory of this user instead")

	cmd.AddCommand(&cobra.Command{
		Use:   "uuid",
		Short: "Print a new random UUID",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), env.UUID())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "tempname [prefix]",
		Short: "Print an unused path in the temporary directory",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prefix := "crossfs-"
			if len(args) == 1 {
				prefix = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), env.TempPath(prefix))
		},
	})
	return cmd
}
