package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/turret/internal/core/domain"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	var pathOnly bool

	cmd := &cobra.Command{
		Use:   "resolve <query>...",
		Short: "Resolve queries to filesystem paths",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}

			results, err := c.app.ResolveAll(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if pathOnly {
					_, _ = fmt.Fprintln(out, r.Path)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s -> %s\n", r.Query, r.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pathOnly, "path-only", "p", false, "Print only the resolved paths")
	return cmd
}

func (c *CLI) newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <query>",
		Short: "Report whether a query resolves to a real path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists := c.app.Exists(args[0])
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), exists)
			if !exists {
				return domain.ErrQueryNotFound
			}
			return nil
		},
	}
}

func (c *CLI) newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>...",
		Short: "Report whether paths use the tank: query scheme",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range args {
				_, _ = fmt.Fprintf(out, "%s %t\n", p, c.app.Matches(p))
			}
			return nil
		},
	}
}
