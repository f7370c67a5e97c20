package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
)

func newCountsCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Show how many notes each category holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.LoadAll(ctx, false); err != nil {
				return failed("Failed to fetch notes", err)
			}
			counts := app.Store.CountsByCategory()

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(counts); err != nil {
					return failed("Error encoding JSON", err)
				}
				return nil
			}

			fmt.Fprintf(out, "%-9s %d\n", core.CategoryAll, counts[string(core.CategoryAll)])
			for _, cat := range core.Categories() {
				fmt.Fprintf(out, "%-9s %d\n", cat, counts[string(cat)])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
