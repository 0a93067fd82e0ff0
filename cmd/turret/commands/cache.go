package commands

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the query cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the snapshot saved for this client and session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.Snapshot()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "# %s (%d queries)\n", c.app.SnapshotPath(), len(entries))

			queries := make([]string, 0, len(entries))
			for q := range entries {
				queries = append(queries, q)
			}
			slices.Sort(queries)

			for _, q := range queries {
				e := entries[q]
				_, _ = fmt.Fprintf(out, "%s -> %s (%s)\n", q, e.ResolvedPath, e.ResolvedAt().UTC().Format(time.RFC3339))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the in-memory cache; with disk caching enabled the emptied cache is saved on exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			c.app.ClearCache()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		},
	})

	return cmd
}
